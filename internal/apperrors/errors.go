package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the closed set of failure classes the API can produce. Handlers
// translate kinds to transport status; nothing matches on message text.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthRequired
	KindPermissionDenied
	KindNotFound
	KindConflict
	KindInvalidState
	KindExpired
	KindInternal
)

func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindInvalidState, KindExpired:
		return http.StatusBadRequest
	case KindAuthRequired:
		return http.StatusUnauthorized
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a tagged failure with a stable machine code. The wrapped cause
// is for logs only and never leaks to API responses.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches by code so sentinel values survive wrapping.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Wrap(err error, kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

func Validation(message string) *Error {
	return New(KindValidation, "VALIDATION_ERROR", message)
}

func Internal(err error) *Error {
	return Wrap(err, KindInternal, "INTERNAL_ERROR", "Something went wrong")
}

// Fixed business failures. Services return these directly; tests and
// handlers compare with errors.Is.
var (
	ErrAuthRequired     = New(KindAuthRequired, "AUTH_REQUIRED", "Authentication required")
	ErrPermissionDenied = New(KindPermissionDenied, "PERMISSION_DENIED", "Permission denied")

	ErrCampaignNotFound  = New(KindNotFound, "CAMPAIGN_NOT_FOUND", "Campaign not found")
	ErrClaimNotFound     = New(KindNotFound, "CLAIM_NOT_FOUND", "Claim not found")
	ErrUserNotFound      = New(KindNotFound, "USER_NOT_FOUND", "User not found")
	ErrEmailExists       = New(KindConflict, "EMAIL_EXISTS", "Email already exists")
	ErrAlreadyClaimed    = New(KindConflict, "ALREADY_CLAIMED", "This email has already claimed this campaign")
	ErrAlreadyVerified   = New(KindConflict, "ALREADY_VERIFIED", "Claim has already been verified")
	ErrCampaignNotActive = New(KindInvalidState, "CAMPAIGN_NOT_ACTIVE", "Campaign is not currently accepting claims")
	ErrMaxClaimsReached  = New(KindInvalidState, "MAX_CLAIMS_REACHED", "Campaign has reached maximum number of claims")
	ErrClaimNotCompleted = New(KindInvalidState, "CLAIM_NOT_COMPLETED", "Claim verification not completed")
	ErrTicketUnavailable = New(KindInvalidState, "TICKET_NOT_AVAILABLE", "Ticket not yet generated")
	ErrInvalidToken      = New(KindValidation, "INVALID_VERIFICATION_TOKEN", "Invalid verification token")
	ErrTokenExpired      = New(KindExpired, "TOKEN_EXPIRED", "Verification token has expired")
	ErrTxConflict        = New(KindConflict, "TX_CONFLICT", "Operation conflicted with concurrent requests, please retry")
)

// FromError normalizes any error into a tagged one. Unknown errors become
// opaque internal failures.
func FromError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

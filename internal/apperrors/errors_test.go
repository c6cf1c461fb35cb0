package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, KindValidation.HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, KindInvalidState.HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, KindExpired.HTTPStatus())
	assert.Equal(t, http.StatusUnauthorized, KindAuthRequired.HTTPStatus())
	assert.Equal(t, http.StatusForbidden, KindPermissionDenied.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, KindNotFound.HTTPStatus())
	assert.Equal(t, http.StatusConflict, KindConflict.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, KindInternal.HTTPStatus())
}

func TestSentinelMatchingSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("admitting claim: %w", ErrMaxClaimsReached)
	assert.ErrorIs(t, wrapped, ErrMaxClaimsReached)
	assert.NotErrorIs(t, wrapped, ErrAlreadyClaimed)
}

func TestFromError(t *testing.T) {
	t.Run("passes tagged errors through", func(t *testing.T) {
		assert.Equal(t, ErrCampaignNotFound, FromError(ErrCampaignNotFound))
	})

	t.Run("unwraps nested tagged errors", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", ErrInvalidToken)
		assert.Equal(t, "INVALID_VERIFICATION_TOKEN", FromError(wrapped).Code)
	})

	t.Run("unknown errors become opaque internal failures", func(t *testing.T) {
		got := FromError(errors.New("connection reset by peer"))
		assert.Equal(t, KindInternal, got.Kind)
		assert.Equal(t, "Something went wrong", got.Message)
		assert.NotContains(t, got.Message, "connection reset")
	})
}

func TestAlreadyVerifiedIsConflict(t *testing.T) {
	assert.Equal(t, http.StatusConflict, ErrAlreadyVerified.Kind.HTTPStatus())
}

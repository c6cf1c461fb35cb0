package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"lazymint/internal/apperrors"
	"lazymint/internal/utils"
	"lazymint/pkg/auth"
)

const (
	ContextUserUID   = "user_uid"
	ContextUserEmail = "user_email"
)

// AuthRequired validates the bearer credential against the identity
// provider and sets the caller identity on the request context.
func AuthRequired(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := identityFromRequest(c, verifier)
		if err != nil {
			utils.AppErrorResponse(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserUID, identity.UID)
		c.Set(ContextUserEmail, identity.Email)

		c.Next()
	}
}

// OptionalAuth resolves the caller identity when a credential is present
// but lets anonymous requests through. Used on reads where visibility
// depends on who is asking.
func OptionalAuth(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if identity, err := identityFromRequest(c, verifier); err == nil {
				c.Set(ContextUserUID, identity.UID)
				c.Set(ContextUserEmail, identity.Email)
			}
		}

		c.Next()
	}
}

func identityFromRequest(c *gin.Context, verifier auth.Verifier) (*auth.Identity, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, apperrors.ErrAuthRequired
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader || token == "" {
		return nil, apperrors.New(apperrors.KindAuthRequired, "AUTH_REQUIRED", "Bearer token required")
	}

	identity, err := verifier.VerifyToken(c.Request.Context(), token)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindAuthRequired, "INVALID_CREDENTIAL", "Invalid or expired credential")
	}

	return identity, nil
}

// CallerUID returns the authenticated caller's UID, or empty when the
// request is anonymous.
func CallerUID(c *gin.Context) string {
	if uid, exists := c.Get(ContextUserUID); exists {
		if s, ok := uid.(string); ok {
			return s
		}
	}
	return ""
}

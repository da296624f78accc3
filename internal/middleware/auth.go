package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wardline/roster-api/internal/constants"
	apierrors "github.com/wardline/roster-api/internal/errors"
	"github.com/wardline/roster-api/internal/identity"
)

// RequireAuth verifies the bearer token on every request and attaches the
// resolved identity to the gin context.
func RequireAuth(verifier identity.Verifier, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apierrors.Unauthorized(c, "Missing or malformed bearer token")
			c.Abort()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		user, err := verifier.VerifyToken(ctx, token)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, *user)
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// GetUser retrieves the authenticated identity from context.
func GetUser(c *gin.Context) (identity.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return identity.User{}, false
	}
	user, ok := value.(identity.User)
	return user, ok
}

// GetUserID retrieves the current user ID from context.
func GetUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

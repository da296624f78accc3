package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wardline/roster-api/internal/dto"
	apierrors "github.com/wardline/roster-api/internal/errors"
	"github.com/wardline/roster-api/internal/middleware"
)

// AuthHandler exposes the caller's resolved identity. Token issuance and
// revocation live with the external provider.
type AuthHandler struct{}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Me returns the authenticated caller's identity profile.
func (h *AuthHandler) Me(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(user))
}

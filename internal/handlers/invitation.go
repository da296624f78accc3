package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/wardline/roster-api/internal/errors"
	"github.com/wardline/roster-api/internal/middleware"
	"github.com/wardline/roster-api/internal/services"
)

// InvitationHandler coordinates invitation endpoints.
type InvitationHandler struct {
	inviteService *services.InvitationService
}

// NewInvitationHandler creates a new InvitationHandler.
func NewInvitationHandler(inviteService *services.InvitationService) *InvitationHandler {
	return &InvitationHandler{
		inviteService: inviteService,
	}
}

// CreateInvitation invites an email address to a workspace. Owner only.
func (h *InvitationHandler) CreateInvitation(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type InviteRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	invitation, err := h.inviteService.CreateInvitation(c.Request.Context(), c.Param("id"), req.Email, userID)
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invitation)
}

// ListMyInvitations returns pending invitations addressed to the caller.
func (h *InvitationHandler) ListMyInvitations(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	invitations, err := h.inviteService.ListMyInvitations(user.Email)
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invitations": invitations,
	})
}

// AcceptInvitation enrolls the caller via a pending invitation.
func (h *InvitationHandler) AcceptInvitation(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	enrollment, err := h.inviteService.AcceptInvitation(c.Param("id"), user.ID, user.Email)
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"enrollment": enrollment,
	})
}

// RejectInvitation declines a pending invitation addressed to the caller.
func (h *InvitationHandler) RejectInvitation(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	invitation, err := h.inviteService.RejectInvitation(c.Param("id"), user.Email)
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invitation": invitation,
	})
}

// CancelInvitation hard-deletes an invitation. Owner only.
func (h *InvitationHandler) CancelInvitation(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.inviteService.CancelInvitation(c.Param("id"), userID); err != nil {
		respondInvitationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invitation cancelled",
	})
}

func respondInvitationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrWorkspaceNotFound),
		errors.Is(err, services.ErrInvitationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotWorkspaceOwner),
		errors.Is(err, services.ErrInvitationEmailMismatch):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrSelfInvitation),
		errors.Is(err, services.ErrInvitationNotPending):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInviteeAlreadyEnrolled),
		errors.Is(err, services.ErrDuplicateInvitation),
		errors.Is(err, services.ErrAlreadyEnrolled):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

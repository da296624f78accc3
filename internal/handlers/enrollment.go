package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/wardline/roster-api/internal/errors"
	"github.com/wardline/roster-api/internal/middleware"
	"github.com/wardline/roster-api/internal/services"
)

// EnrollmentHandler coordinates membership endpoints.
type EnrollmentHandler struct {
	enrollService *services.EnrollmentService
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(enrollService *services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollService: enrollService,
	}
}

// RequestEnrollment asks to join a workspace; owners self-enroll immediately.
func (h *EnrollmentHandler) RequestEnrollment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type EnrollRequest struct {
		WorkspaceID string `json:"workspace_id" binding:"required,uuid"`
	}

	var req EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	outcome, err := h.enrollService.RequestEnrollment(req.WorkspaceID, userID)
	if err != nil {
		respondEnrollmentError(c, err)
		return
	}

	body := gin.H{"request": outcome.Request}
	if outcome.Enrollment != nil {
		body["enrollment"] = outcome.Enrollment
	}
	c.JSON(http.StatusCreated, body)
}

// ApproveRequest approves a pending enrollment request. Owner only.
func (h *EnrollmentHandler) ApproveRequest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	enrollment, err := h.enrollService.ApproveRequest(c.Param("id"), userID)
	if err != nil {
		respondEnrollmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"enrollment": enrollment,
	})
}

// RejectRequest rejects a pending enrollment request. Owner only.
func (h *EnrollmentHandler) RejectRequest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	request, err := h.enrollService.RejectRequest(c.Param("id"), userID)
	if err != nil {
		respondEnrollmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"request": request,
	})
}

// Unenroll removes the caller's own membership and request history.
func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.enrollService.Unenroll(c.Param("workspaceId"), userID); err != nil {
		respondEnrollmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Unenrolled successfully",
	})
}

// RemoveUser removes a member from a workspace. Owner only; not on themselves.
func (h *EnrollmentHandler) RemoveUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.enrollService.RemoveUser(c.Param("id"), c.Param("userId"), userID); err != nil {
		respondEnrollmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed",
	})
}

func respondEnrollmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrWorkspaceNotFound),
		errors.Is(err, services.ErrEnrollmentRequestNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyEnrolled),
		errors.Is(err, services.ErrEnrollmentRequestPending):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotWorkspaceOwner),
		errors.Is(err, services.ErrNotEnrolled):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrEnrollmentRequestDecided),
		errors.Is(err, services.ErrCannotRemoveSelfFromOwned):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

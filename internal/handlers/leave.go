package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/wardline/roster-api/internal/errors"
	"github.com/wardline/roster-api/internal/middleware"
	"github.com/wardline/roster-api/internal/services"
)

const leaveDateLayout = "2006-01-02"

// LeaveHandler coordinates leave-request endpoints.
type LeaveHandler struct {
	leaveService *services.LeaveService
}

// NewLeaveHandler creates a new LeaveHandler.
func NewLeaveHandler(leaveService *services.LeaveService) *LeaveHandler {
	return &LeaveHandler{
		leaveService: leaveService,
	}
}

// RequestLeave creates a pending leave request for an enrolled member.
func (h *LeaveHandler) RequestLeave(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type LeaveRequestBody struct {
		WorkspaceID string `json:"workspace_id" binding:"required,uuid"`
		StartDate   string `json:"start_date" binding:"required,datetime=2006-01-02"`
		EndDate     string `json:"end_date" binding:"required,datetime=2006-01-02"`
		Reason      string `json:"reason" binding:"max=500"`
	}

	var req LeaveRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	start, _ := time.Parse(leaveDateLayout, req.StartDate)
	end, _ := time.Parse(leaveDateLayout, req.EndDate)

	request, err := h.leaveService.RequestLeave(services.RequestLeaveInput{
		WorkspaceID: req.WorkspaceID,
		StartDate:   start,
		EndDate:     end,
		Reason:      req.Reason,
		UserID:      userID,
	})
	if err != nil {
		respondLeaveError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

// MyLeaveRequests returns the caller's leave requests across workspaces.
func (h *LeaveHandler) MyLeaveRequests(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	requests, err := h.leaveService.MyLeaveRequests(userID)
	if err != nil {
		respondLeaveError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leave_requests": requests,
	})
}

// WorkspaceLeaveRequests is the owner's view, enriched with requester emails.
func (h *LeaveHandler) WorkspaceLeaveRequests(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	requests, err := h.leaveService.WorkspaceLeaveRequests(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondLeaveError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leave_requests": requests,
	})
}

// ApproveLeaveRequest approves a pending request. Owner only.
func (h *LeaveHandler) ApproveLeaveRequest(c *gin.Context) {
	h.decide(c, true)
}

// RejectLeaveRequest rejects a pending request. Owner only.
func (h *LeaveHandler) RejectLeaveRequest(c *gin.Context) {
	h.decide(c, false)
}

func (h *LeaveHandler) decide(c *gin.Context, approve bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var (
		request interface{}
		err     error
	)
	if approve {
		request, err = h.leaveService.ApproveLeaveRequest(c.Param("id"), userID)
	} else {
		request, err = h.leaveService.RejectLeaveRequest(c.Param("id"), userID)
	}
	if err != nil {
		respondLeaveError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leave_request": request,
	})
}

// CancelLeaveRequest hard-deletes the caller's own pending request.
func (h *LeaveHandler) CancelLeaveRequest(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.leaveService.CancelLeaveRequest(c.Param("id"), userID); err != nil {
		respondLeaveError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Leave request cancelled",
	})
}

func respondLeaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrWorkspaceNotFound),
		errors.Is(err, services.ErrLeaveRequestNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotWorkspaceOwner),
		errors.Is(err, services.ErrNotEnrolled),
		errors.Is(err, services.ErrNotLeaveRequester):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidLeaveRange),
		errors.Is(err, services.ErrLeaveNotPending):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrLeaveOverlap):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

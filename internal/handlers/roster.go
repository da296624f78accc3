package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/wardline/roster-api/internal/errors"
	"github.com/wardline/roster-api/internal/middleware"
	"github.com/wardline/roster-api/internal/models"
	"github.com/wardline/roster-api/internal/services"
)

// RosterHandler coordinates roster endpoints.
type RosterHandler struct {
	rosterService *services.RosterService
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(rosterService *services.RosterService) *RosterHandler {
	return &RosterHandler{
		rosterService: rosterService,
	}
}

// SaveRoster upserts the roster for a period and replaces its assignments.
func (h *RosterHandler) SaveRoster(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type AssignmentRequest struct {
		UserID      string `json:"user_id" binding:"required,uuid"`
		Day         int    `json:"day" binding:"required,min=1,max=31"`
		ShiftPeriod string `json:"shift_period" binding:"required,oneof=M E N"`
		DutyType    string `json:"duty_type" binding:"omitempty,oneof=M E N DO SD VL"`
		IsOvertime  bool   `json:"is_overtime"`
	}

	type SaveRosterRequest struct {
		WorkspaceID string              `json:"workspace_id" binding:"required,uuid"`
		Month       int                 `json:"month" binding:"required,min=1,max=12"`
		Year        int                 `json:"year" binding:"required,min=2000"`
		Assignments []AssignmentRequest `json:"assignments"`
	}

	var req SaveRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assignments := make([]services.AssignmentInput, len(req.Assignments))
	for i, a := range req.Assignments {
		assignments[i] = services.AssignmentInput{
			UserID:      a.UserID,
			Day:         a.Day,
			ShiftPeriod: models.ShiftPeriod(a.ShiftPeriod),
			DutyType:    models.DutyType(a.DutyType),
			IsOvertime:  a.IsOvertime,
		}
	}

	roster, saved, err := h.rosterService.SaveRoster(services.SaveRosterInput{
		WorkspaceID: req.WorkspaceID,
		Month:       req.Month,
		Year:        req.Year,
		Assignments: assignments,
		UserID:      userID,
	})
	if err != nil {
		respondRosterError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"roster":      roster,
		"assignments": saved,
	})
}

// PublishRoster makes a roster visible to members.
func (h *RosterHandler) PublishRoster(c *gin.Context) {
	h.togglePublish(c, true)
}

// UnpublishRoster reverts a roster to draft.
func (h *RosterHandler) UnpublishRoster(c *gin.Context) {
	h.togglePublish(c, false)
}

func (h *RosterHandler) togglePublish(c *gin.Context, publish bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var (
		roster *models.Roster
		err    error
	)
	if publish {
		roster, err = h.rosterService.PublishRoster(c.Param("id"), userID)
	} else {
		roster, err = h.rosterService.UnpublishRoster(c.Param("id"), userID)
	}
	if err != nil {
		respondRosterError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"roster": roster,
	})
}

// GetRoster fetches the roster for a workspace period. Absence is a valid
// empty state.
func (h *RosterHandler) GetRoster(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	month, year, ok := parsePeriod(c)
	if !ok {
		return
	}

	roster, assignments, err := h.rosterService.GetRoster(c.Param("workspaceId"), month, year, userID)
	if err != nil {
		respondRosterError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"roster":      roster,
		"assignments": assignments,
	})
}

// GetMyRosters is the caller's cross-workspace published view for a period.
func (h *RosterHandler) GetMyRosters(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	month, year, ok := parsePeriod(c)
	if !ok {
		return
	}

	views, err := h.rosterService.GetUserPublishedRosters(userID, month, year)
	if err != nil {
		respondRosterError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rosters": views,
	})
}

// DeleteRoster removes a roster and its assignments. Owner only.
func (h *RosterHandler) DeleteRoster(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.rosterService.DeleteRoster(c.Param("id"), userID); err != nil {
		respondRosterError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Roster deleted successfully",
	})
}

func parsePeriod(c *gin.Context) (month, year int, ok bool) {
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		apierrors.BadRequest(c, "Invalid month")
		return 0, 0, false
	}
	year, err = strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		apierrors.BadRequest(c, "Invalid year")
		return 0, 0, false
	}
	return month, year, true
}

func respondRosterError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrWorkspaceNotFound),
		errors.Is(err, services.ErrRosterNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotWorkspaceOwner),
		errors.Is(err, services.ErrNotWorkspaceMember):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidRosterPeriod),
		errors.Is(err, services.ErrInvalidAssignment):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wardline/roster-api/internal/dto"
	apierrors "github.com/wardline/roster-api/internal/errors"
	"github.com/wardline/roster-api/internal/middleware"
	"github.com/wardline/roster-api/internal/services"
)

// WorkspaceHandler coordinates workspace lifecycle and favorite endpoints.
type WorkspaceHandler struct {
	wsService *services.WorkspaceService
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(wsService *services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{
		wsService: wsService,
	}
}

// CreateWorkspace creates a workspace owned by the caller.
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateWorkspaceRequest struct {
		Name string `json:"name" binding:"required,max=255"`
	}

	var req CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	workspace, err := h.wsService.CreateWorkspace(services.CreateWorkspaceInput{
		Name:    req.Name,
		OwnerID: userID,
	})
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkspaceDTO(*workspace))
}

// SearchWorkspaces finds workspaces by exact ID or name substring.
func (h *WorkspaceHandler) SearchWorkspaces(c *gin.Context) {
	workspaces, err := h.wsService.Search(c.Query("query"))
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"workspaces": dto.ToWorkspaceDTOs(workspaces),
	})
}

// ListEnrolled returns the caller's memberships with workspaces attached.
func (h *WorkspaceHandler) ListEnrolled(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	enrollments, err := h.wsService.ListEnrolled(userID)
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	workspaces := make([]dto.EnrolledWorkspaceDTO, len(enrollments))
	for i, enrollment := range enrollments {
		workspaces[i] = dto.ToEnrolledWorkspaceDTO(enrollment)
	}

	c.JSON(http.StatusOK, gin.H{
		"workspaces": workspaces,
	})
}

// GetWorkspace is the owner-only fetch.
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	workspace, err := h.wsService.GetWorkspace(c.Param("id"), userID)
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceDTO(*workspace))
}

// GetWorkspaceDetails returns a workspace plus the caller's ownership and
// membership standing.
func (h *WorkspaceHandler) GetWorkspaceDetails(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	details, err := h.wsService.GetWorkspaceDetails(c.Param("id"), userID)
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceDetailsDTO(details))
}

// UpdateWorkspace renames a workspace. Owner only.
func (h *WorkspaceHandler) UpdateWorkspace(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateWorkspaceRequest struct {
		Name string `json:"name" binding:"required,max=255"`
	}

	var req UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	workspace, err := h.wsService.UpdateWorkspace(c.Param("id"), req.Name, userID)
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceDTO(*workspace))
}

// DeleteWorkspace removes a workspace and its membership data. Owner only.
func (h *WorkspaceHandler) DeleteWorkspace(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.wsService.DeleteWorkspace(c.Param("id"), userID); err != nil {
		respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Workspace deleted successfully",
	})
}

// ListMembers returns a workspace's members. Owner or member.
func (h *WorkspaceHandler) ListMembers(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	members, err := h.wsService.ListMembers(c.Param("id"), userID)
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	memberDTOs := make([]dto.MemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = dto.ToMemberDTO(member)
	}

	c.JSON(http.StatusOK, gin.H{
		"members": memberDTOs,
	})
}

// SetFavorite pins a workspace as the caller's favorite.
func (h *WorkspaceHandler) SetFavorite(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type SetFavoriteRequest struct {
		WorkspaceID string `json:"workspace_id" binding:"required,uuid"`
	}

	var req SetFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	favorite, err := h.wsService.SetFavorite(userID, req.WorkspaceID)
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusOK, favorite)
}

// GetFavorite returns the caller's favorite workspace.
func (h *WorkspaceHandler) GetFavorite(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	favorite, err := h.wsService.GetFavorite(userID)
	if err != nil {
		respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusOK, favorite)
}

// ClearFavorite removes the caller's favorite.
func (h *WorkspaceHandler) ClearFavorite(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.wsService.ClearFavorite(userID); err != nil {
		respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Favorite removed",
	})
}

func respondWorkspaceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrWorkspaceNotFound),
		errors.Is(err, services.ErrFavoriteNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotWorkspaceOwner),
		errors.Is(err, services.ErrNotWorkspaceMember),
		errors.Is(err, services.ErrNotEnrolled):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidWorkspaceName):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

package dto

import (
	"time"

	"github.com/wardline/roster-api/internal/models"
	"github.com/wardline/roster-api/internal/services"
)

// WorkspaceDTO is the public representation of a workspace.
type WorkspaceDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// EnrolledWorkspaceDTO is a workspace seen through the caller's enrollment.
type EnrolledWorkspaceDTO struct {
	WorkspaceDTO
	Role       models.EnrollmentRole `json:"role"`
	EnrolledAt time.Time             `json:"enrolled_at"`
}

// WorkspaceDetailsDTO carries the two independent standing facts alongside
// the workspace itself.
type WorkspaceDetailsDTO struct {
	WorkspaceDTO
	IsOwner  bool `json:"is_owner"`
	IsMember bool `json:"is_member"`
}

// MemberDTO is one member row in a workspace listing.
type MemberDTO struct {
	UserID     string                `json:"user_id"`
	Role       models.EnrollmentRole `json:"role"`
	EnrolledAt time.Time             `json:"enrolled_at"`
}

// ToWorkspaceDTO converts a workspace model.
func ToWorkspaceDTO(workspace models.Workspace) WorkspaceDTO {
	return WorkspaceDTO{
		ID:        workspace.ID,
		Name:      workspace.Name,
		OwnerID:   workspace.OwnerID,
		CreatedAt: workspace.CreatedAt,
	}
}

// ToWorkspaceDTOs converts a slice of workspace models.
func ToWorkspaceDTOs(workspaces []models.Workspace) []WorkspaceDTO {
	dtos := make([]WorkspaceDTO, len(workspaces))
	for i, workspace := range workspaces {
		dtos[i] = ToWorkspaceDTO(workspace)
	}
	return dtos
}

// ToEnrolledWorkspaceDTO converts an enrollment with its workspace attached.
func ToEnrolledWorkspaceDTO(enrollment models.Enrollment) EnrolledWorkspaceDTO {
	return EnrolledWorkspaceDTO{
		WorkspaceDTO: ToWorkspaceDTO(enrollment.Workspace),
		Role:         enrollment.Role,
		EnrolledAt:   enrollment.EnrolledAt,
	}
}

// ToWorkspaceDetailsDTO converts resolved workspace details.
func ToWorkspaceDetailsDTO(details *services.WorkspaceDetails) WorkspaceDetailsDTO {
	return WorkspaceDetailsDTO{
		WorkspaceDTO: ToWorkspaceDTO(*details.Workspace),
		IsOwner:      details.IsOwner,
		IsMember:     details.IsMember,
	}
}

// ToMemberDTO converts an enrollment to a member row.
func ToMemberDTO(enrollment models.Enrollment) MemberDTO {
	return MemberDTO{
		UserID:     enrollment.UserID,
		Role:       enrollment.Role,
		EnrolledAt: enrollment.EnrolledAt,
	}
}

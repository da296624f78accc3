package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnrollmentRole string

const (
	RoleOwner  EnrollmentRole = "owner"
	RoleMember EnrollmentRole = "member"
)

// Enrollment is active membership of a user in a workspace. Ownership of the
// workspace is tracked separately on Workspace.OwnerID; an owner who wants to
// appear on rosters enrolls like anyone else.
type Enrollment struct {
	ID          string         `gorm:"type:uuid;primarykey" json:"id"`
	WorkspaceID string         `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_workspace_user" json:"workspace_id"`
	UserID      string         `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_workspace_user;index" json:"user_id"`
	Role        EnrollmentRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	EnrolledAt  time.Time      `json:"enrolled_at"`

	// Relations
	Workspace Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRejected InvitationStatus = "rejected"
)

// Invitation is an owner-issued, email-targeted offer to join a workspace.
// The invitee does not need an account at the time of creation.
type Invitation struct {
	ID           string           `gorm:"type:uuid;primarykey" json:"id"`
	WorkspaceID  string           `gorm:"type:uuid;not null;index" json:"workspace_id"`
	InviterID    string           `gorm:"type:uuid;not null" json:"inviter_id"`
	InviteeEmail string           `gorm:"type:varchar(255);not null;index" json:"invitee_email"`
	Status       InvitationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`

	// Relations
	Workspace Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
}

func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnrollmentRequestStatus string

const (
	RequestPending  EnrollmentRequestStatus = "pending"
	RequestApproved EnrollmentRequestStatus = "approved"
	RequestRejected EnrollmentRequestStatus = "rejected"
)

type EnrollmentRequest struct {
	ID          string                  `gorm:"type:uuid;primarykey" json:"id"`
	WorkspaceID string                  `gorm:"type:uuid;not null;index" json:"workspace_id"`
	UserID      string                  `gorm:"type:uuid;not null;index" json:"user_id"`
	Status      EnrollmentRequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`

	// Relations
	Workspace Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
}

func (r *EnrollmentRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveRequestStatus string

const (
	LeavePending  LeaveRequestStatus = "pending"
	LeaveApproved LeaveRequestStatus = "approved"
	LeaveRejected LeaveRequestStatus = "rejected"
)

// LeaveRequest is a member's ask for time off. The date range is inclusive on
// both ends.
type LeaveRequest struct {
	ID          string             `gorm:"type:uuid;primarykey" json:"id"`
	WorkspaceID string             `gorm:"type:uuid;not null;index" json:"workspace_id"`
	UserID      string             `gorm:"type:uuid;not null;index" json:"user_id"`
	StartDate   time.Time          `gorm:"not null" json:"start_date"`
	EndDate     time.Time          `gorm:"not null" json:"end_date"`
	Reason      string             `gorm:"type:text" json:"reason"`
	Status      LeaveRequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`

	// Relations
	Workspace Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
}

func (l *LeaveRequest) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

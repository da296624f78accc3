package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RosterStatus string

const (
	RosterDraft     RosterStatus = "draft"
	RosterPublished RosterStatus = "published"
)

// Roster is the shift schedule of one workspace for one calendar month.
type Roster struct {
	ID          string       `gorm:"type:uuid;primarykey" json:"id"`
	WorkspaceID string       `gorm:"type:uuid;not null;uniqueIndex:idx_rosters_workspace_period" json:"workspace_id"`
	Month       int          `gorm:"not null;uniqueIndex:idx_rosters_workspace_period" json:"month"`
	Year        int          `gorm:"not null;uniqueIndex:idx_rosters_workspace_period" json:"year"`
	Status      RosterStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	PublishedAt *time.Time   `json:"published_at"`
	PublishedBy *string      `gorm:"type:uuid" json:"published_by"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	Workspace   Workspace          `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	Assignments []RosterAssignment `gorm:"foreignKey:RosterID;constraint:OnDelete:CASCADE" json:"assignments,omitempty"`
}

func (r *Roster) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

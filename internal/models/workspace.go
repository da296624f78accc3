package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Workspace struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	OwnerID   string    `gorm:"type:uuid;not null;index" json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Enrollments []Enrollment        `gorm:"foreignKey:WorkspaceID" json:"enrollments,omitempty"`
	Requests    []EnrollmentRequest `gorm:"foreignKey:WorkspaceID" json:"requests,omitempty"`
	Rosters     []Roster            `gorm:"foreignKey:WorkspaceID" json:"rosters,omitempty"`
}

func (w *Workspace) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

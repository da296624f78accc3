package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserFavorite pins one workspace per user as their default. The unique index
// on user_id enforces the at-most-one invariant at the storage level.
type UserFavorite struct {
	ID          string    `gorm:"type:uuid;primarykey" json:"id"`
	UserID      string    `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	WorkspaceID string    `gorm:"type:uuid;not null" json:"workspace_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Workspace Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
}

func (f *UserFavorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

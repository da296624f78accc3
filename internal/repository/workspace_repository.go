package repository

import (
	"github.com/wardline/roster-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWorkspaceRepository is a GORM implementation of WorkspaceRepository
type GormWorkspaceRepository struct {
	db *gorm.DB
}

// NewWorkspaceRepository creates a new WorkspaceRepository
func NewWorkspaceRepository(db *gorm.DB) WorkspaceRepository {
	return &GormWorkspaceRepository{db: db}
}

// Create creates a new workspace
func (r *GormWorkspaceRepository) Create(workspace *models.Workspace) error {
	return r.db.Create(workspace).Error
}

// FindByID finds a workspace by ID
func (r *GormWorkspaceRepository) FindByID(id string) (*models.Workspace, error) {
	var workspace models.Workspace
	if err := r.db.Where("id = ?", id).First(&workspace).Error; err != nil {
		return nil, err
	}
	return &workspace, nil
}

// Update updates a workspace
func (r *GormWorkspaceRepository) Update(workspace *models.Workspace) error {
	return r.db.Save(workspace).Error
}

// Delete deletes a workspace and all related membership data in a transaction
func (r *GormWorkspaceRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workspace_id = ?", id).Delete(&models.EnrollmentRequest{}).Error; err != nil {
			return err
		}

		if err := tx.Where("workspace_id = ?", id).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.Workspace{}).Error
	})
}

// SearchByName finds workspaces whose name contains the query, case-insensitively
func (r *GormWorkspaceRepository) SearchByName(query string, limit int) ([]models.Workspace, error) {
	var workspaces []models.Workspace
	pattern := "%" + query + "%"
	if err := r.db.Where("LOWER(name) LIKE LOWER(?)", pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&workspaces).Error; err != nil {
		return nil, err
	}
	return workspaces, nil
}

// FindFavoriteByUser finds a user's favorite, if any
func (r *GormWorkspaceRepository) FindFavoriteByUser(userID string) (*models.UserFavorite, error) {
	var favorite models.UserFavorite
	if err := r.db.Preload("Workspace").
		Where("user_id = ?", userID).
		First(&favorite).Error; err != nil {
		return nil, err
	}
	return &favorite, nil
}

// SaveFavorite inserts or updates the user's single favorite row. Associations
// are omitted so a preloaded Workspace cannot write its stale ID back over a
// repointed WorkspaceID.
func (r *GormWorkspaceRepository) SaveFavorite(favorite *models.UserFavorite) error {
	return r.db.
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"workspace_id", "updated_at"}),
		}).
		Create(favorite).Error
}

// DeleteFavoriteByUser removes a user's favorite
func (r *GormWorkspaceRepository) DeleteFavoriteByUser(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.UserFavorite{}).Error
}

package repository

import (
	"github.com/wardline/roster-api/internal/models"
	"gorm.io/gorm"
)

// GormRosterRepository is a GORM implementation of RosterRepository
type GormRosterRepository struct {
	db *gorm.DB
}

// NewRosterRepository creates a new RosterRepository
func NewRosterRepository(db *gorm.DB) RosterRepository {
	return &GormRosterRepository{db: db}
}

// FindByID finds a roster by ID
func (r *GormRosterRepository) FindByID(id string) (*models.Roster, error) {
	var roster models.Roster
	if err := r.db.Preload("Workspace").Where("id = ?", id).First(&roster).Error; err != nil {
		return nil, err
	}
	return &roster, nil
}

// FindByPeriod finds the roster for a workspace and calendar month
func (r *GormRosterRepository) FindByPeriod(workspaceID string, month, year int) (*models.Roster, error) {
	var roster models.Roster
	if err := r.db.Where("workspace_id = ? AND month = ? AND year = ?", workspaceID, month, year).
		First(&roster).Error; err != nil {
		return nil, err
	}
	return &roster, nil
}

// Create creates a new roster
func (r *GormRosterRepository) Create(roster *models.Roster) error {
	return r.db.Create(roster).Error
}

// Update updates a roster
func (r *GormRosterRepository) Update(roster *models.Roster) error {
	return r.db.Save(roster).Error
}

// Delete deletes a roster and its assignments in a transaction
func (r *GormRosterRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("roster_id = ?", id).Delete(&models.RosterAssignment{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.Roster{}).Error
	})
}

// ReplaceAssignments wholesale-replaces a roster's assignment rows
func (r *GormRosterRepository) ReplaceAssignments(rosterID string, assignments []models.RosterAssignment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("roster_id = ?", rosterID).Delete(&models.RosterAssignment{}).Error; err != nil {
			return err
		}

		if len(assignments) == 0 {
			return nil
		}

		for i := range assignments {
			assignments[i].RosterID = rosterID
		}

		return tx.Create(&assignments).Error
	})
}

// ListAssignments lists all assignments of a roster
func (r *GormRosterRepository) ListAssignments(rosterID string) ([]models.RosterAssignment, error) {
	var assignments []models.RosterAssignment
	if err := r.db.Where("roster_id = ?", rosterID).
		Order("day ASC, shift_period ASC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListUserAssignments lists one user's assignments within a roster
func (r *GormRosterRepository) ListUserAssignments(rosterID, userID string) ([]models.RosterAssignment, error) {
	var assignments []models.RosterAssignment
	if err := r.db.Where("roster_id = ? AND user_id = ?", rosterID, userID).
		Order("day ASC, shift_period ASC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

package repository

import (
	"time"

	"github.com/wardline/roster-api/internal/models"
	"gorm.io/gorm"
)

// GormLeaveRepository is a GORM implementation of LeaveRepository
type GormLeaveRepository struct {
	db *gorm.DB
}

// NewLeaveRepository creates a new LeaveRepository
func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &GormLeaveRepository{db: db}
}

// Create creates a new leave request
func (r *GormLeaveRepository) Create(request *models.LeaveRequest) error {
	return r.db.Create(request).Error
}

// FindByID finds a leave request by ID
func (r *GormLeaveRepository) FindByID(id string) (*models.LeaveRequest, error) {
	var request models.LeaveRequest
	if err := r.db.Preload("Workspace").Where("id = ?", id).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// Update updates a leave request
func (r *GormLeaveRepository) Update(request *models.LeaveRequest) error {
	return r.db.Save(request).Error
}

// Delete hard-deletes a leave request
func (r *GormLeaveRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.LeaveRequest{}).Error
}

// ListByUser lists a user's leave requests, newest first
func (r *GormLeaveRepository) ListByUser(userID string) ([]models.LeaveRequest, error) {
	var requests []models.LeaveRequest
	if err := r.db.Preload("Workspace").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ListByWorkspace lists a workspace's leave requests, newest first
func (r *GormLeaveRepository) ListByWorkspace(workspaceID string) ([]models.LeaveRequest, error) {
	var requests []models.LeaveRequest
	if err := r.db.Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// HasPendingOverlap reports whether the user has a pending request whose
// inclusive range overlaps [start, end]
func (r *GormLeaveRepository) HasPendingOverlap(workspaceID, userID string, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.LeaveRequest{}).
		Where("workspace_id = ? AND user_id = ? AND status = ?", workspaceID, userID, models.LeavePending).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

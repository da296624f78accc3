package repository

import (
	"github.com/wardline/roster-api/internal/models"
	"gorm.io/gorm"
)

// GormEnrollmentRepository is a GORM implementation of EnrollmentRepository
type GormEnrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &GormEnrollmentRepository{db: db}
}

// Create creates a new enrollment
func (r *GormEnrollmentRepository) Create(enrollment *models.Enrollment) error {
	return r.db.Create(enrollment).Error
}

// Find finds the enrollment for a (workspace, user) pair
func (r *GormEnrollmentRepository) Find(workspaceID, userID string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.db.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// ListByWorkspace lists all enrollments in a workspace
func (r *GormEnrollmentRepository) ListByWorkspace(workspaceID string) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	if err := r.db.Where("workspace_id = ?", workspaceID).
		Order("enrolled_at ASC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

// ListByUser lists a user's enrollments, oldest first
func (r *GormEnrollmentRepository) ListByUser(userID string) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	if err := r.db.Preload("Workspace").
		Where("user_id = ?", userID).
		Order("enrolled_at ASC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

// DeleteWithHistory removes the enrollment and all request history for the pair
func (r *GormEnrollmentRepository) DeleteWithHistory(workspaceID, userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
			Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}

		return tx.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
			Delete(&models.EnrollmentRequest{}).Error
	})
}

// CreateRequest creates a new enrollment request
func (r *GormEnrollmentRepository) CreateRequest(request *models.EnrollmentRequest) error {
	return r.db.Create(request).Error
}

// FindRequestByID finds an enrollment request by ID
func (r *GormEnrollmentRepository) FindRequestByID(id string) (*models.EnrollmentRequest, error) {
	var request models.EnrollmentRequest
	if err := r.db.Preload("Workspace").Where("id = ?", id).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// FindPendingRequest finds a pending request for a (workspace, user) pair
func (r *GormEnrollmentRepository) FindPendingRequest(workspaceID, userID string) (*models.EnrollmentRequest, error) {
	var request models.EnrollmentRequest
	if err := r.db.Where("workspace_id = ? AND user_id = ? AND status = ?",
		workspaceID, userID, models.RequestPending).
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// UpdateRequest updates an enrollment request
func (r *GormEnrollmentRepository) UpdateRequest(request *models.EnrollmentRequest) error {
	return r.db.Save(request).Error
}

package repository

import (
	"github.com/wardline/roster-api/internal/models"
	"gorm.io/gorm"
)

// GormInvitationRepository is a GORM implementation of InvitationRepository
type GormInvitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &GormInvitationRepository{db: db}
}

// Create creates a new invitation
func (r *GormInvitationRepository) Create(invitation *models.Invitation) error {
	return r.db.Create(invitation).Error
}

// FindByID finds an invitation by ID
func (r *GormInvitationRepository) FindByID(id string) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := r.db.Preload("Workspace").Where("id = ?", id).First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// FindPendingByEmail finds a pending invitation for an email in a workspace
func (r *GormInvitationRepository) FindPendingByEmail(workspaceID, email string) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := r.db.Where("workspace_id = ? AND invitee_email = ? AND status = ?",
		workspaceID, email, models.InvitationPending).
		First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// ListPendingByEmail lists pending invitations addressed to an email
func (r *GormInvitationRepository) ListPendingByEmail(email string) ([]models.Invitation, error) {
	var invitations []models.Invitation
	if err := r.db.Preload("Workspace").
		Where("invitee_email = ? AND status = ?", email, models.InvitationPending).
		Order("created_at DESC").
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

// Update updates an invitation
func (r *GormInvitationRepository) Update(invitation *models.Invitation) error {
	return r.db.Save(invitation).Error
}

// Delete hard-deletes an invitation
func (r *GormInvitationRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Invitation{}).Error
}

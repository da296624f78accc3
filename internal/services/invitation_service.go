package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/wardline/roster-api/internal/identity"
	"github.com/wardline/roster-api/internal/models"
	"github.com/wardline/roster-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvitationNotFound      = errors.New("invitation not found")
	ErrInvitationNotPending    = errors.New("invitation has already been decided")
	ErrInvitationEmailMismatch = errors.New("invitation is addressed to a different email")
	ErrSelfInvitation          = errors.New("cannot invite yourself")
	ErrInviteeAlreadyEnrolled  = errors.New("invitee is already enrolled in this workspace")
	ErrDuplicateInvitation     = errors.New("a pending invitation for this email already exists")
)

// InvitationService manages owner-issued, email-targeted invitations.
type InvitationService struct {
	wsRepo     repository.WorkspaceRepository
	enrollRepo repository.EnrollmentRepository
	inviteRepo repository.InvitationRepository
	wsService  *WorkspaceService
	verifier   identity.Verifier
	logger     zerolog.Logger
}

// NewInvitationService creates a new InvitationService.
func NewInvitationService(
	wsRepo repository.WorkspaceRepository,
	enrollRepo repository.EnrollmentRepository,
	inviteRepo repository.InvitationRepository,
	wsService *WorkspaceService,
	verifier identity.Verifier,
	logger zerolog.Logger,
) *InvitationService {
	return &InvitationService{
		wsRepo:     wsRepo,
		enrollRepo: enrollRepo,
		inviteRepo: inviteRepo,
		wsService:  wsService,
		verifier:   verifier,
		logger:     logger,
	}
}

// NormalizeEmail lowercases and trims an email address for comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateInvitation invites an email address to a workspace. Owner only. The
// identity lookups are best effort: when the provider cannot answer, the
// invitation proceeds rather than failing.
func (s *InvitationService) CreateInvitation(ctx context.Context, workspaceID, email, inviterID string) (*models.Invitation, error) {
	workspace, err := s.wsRepo.FindByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	if workspace.OwnerID != inviterID {
		return nil, ErrNotWorkspaceOwner
	}

	email = NormalizeEmail(email)

	if inviter, err := s.verifier.UserByID(ctx, inviterID); err != nil {
		s.logger.Warn().Err(err).Str("inviter_id", inviterID).Msg("self-invite check skipped: inviter lookup failed")
	} else if NormalizeEmail(inviter.Email) == email {
		return nil, ErrSelfInvitation
	}

	if invitee, outcome := s.verifier.UserByEmail(ctx, email); outcome == identity.LookupFound {
		if _, err := s.enrollRepo.Find(workspaceID, invitee.ID); err == nil {
			return nil, ErrInviteeAlreadyEnrolled
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to verify enrollment: %w", err)
		}
	} else if outcome == identity.LookupUnknown {
		s.logger.Warn().Str("email", email).Msg("enrollment check skipped: invitee lookup failed")
	}

	if _, err := s.inviteRepo.FindPendingByEmail(workspaceID, email); err == nil {
		return nil, ErrDuplicateInvitation
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check pending invitation: %w", err)
	}

	invitation := &models.Invitation{
		WorkspaceID:  workspaceID,
		InviterID:    inviterID,
		InviteeEmail: email,
		Status:       models.InvitationPending,
	}
	if err := s.inviteRepo.Create(invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	return invitation, nil
}

// ListMyInvitations returns pending invitations addressed to the caller's email.
func (s *InvitationService) ListMyInvitations(email string) ([]models.Invitation, error) {
	invitations, err := s.inviteRepo.ListPendingByEmail(NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}

// AcceptInvitation enrolls the invitee and marks the invitation accepted.
func (s *InvitationService) AcceptInvitation(id, userID, userEmail string) (*models.Enrollment, error) {
	invitation, err := s.findAddressedInvitation(id, userEmail)
	if err != nil {
		return nil, err
	}

	if _, err := s.enrollRepo.Find(invitation.WorkspaceID, userID); err == nil {
		return nil, ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify enrollment: %w", err)
	}

	enrollment := &models.Enrollment{
		WorkspaceID: invitation.WorkspaceID,
		UserID:      userID,
		Role:        models.RoleMember,
		EnrolledAt:  time.Now(),
	}
	if err := s.enrollRepo.Create(enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	invitation.Status = models.InvitationAccepted
	if err := s.inviteRepo.Update(invitation); err != nil {
		return nil, fmt.Errorf("failed to update invitation: %w", err)
	}

	if err := s.wsService.AutoSetFirstFavorite(userID); err != nil {
		return nil, err
	}

	return enrollment, nil
}

// RejectInvitation marks a pending invitation rejected. Terminal.
func (s *InvitationService) RejectInvitation(id, userEmail string) (*models.Invitation, error) {
	invitation, err := s.findAddressedInvitation(id, userEmail)
	if err != nil {
		return nil, err
	}

	invitation.Status = models.InvitationRejected
	if err := s.inviteRepo.Update(invitation); err != nil {
		return nil, fmt.Errorf("failed to update invitation: %w", err)
	}
	return invitation, nil
}

// CancelInvitation hard-deletes an invitation. Owner only; no cancelled state
// is retained.
func (s *InvitationService) CancelInvitation(id, callerID string) error {
	invitation, err := s.inviteRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvitationNotFound
		}
		return fmt.Errorf("failed to find invitation: %w", err)
	}

	if invitation.Workspace.OwnerID != callerID {
		return ErrNotWorkspaceOwner
	}

	if err := s.inviteRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete invitation: %w", err)
	}
	return nil
}

func (s *InvitationService) findAddressedInvitation(id, userEmail string) (*models.Invitation, error) {
	invitation, err := s.inviteRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}

	if invitation.Status != models.InvitationPending {
		return nil, ErrInvitationNotPending
	}
	if NormalizeEmail(userEmail) != invitation.InviteeEmail {
		return nil, ErrInvitationEmailMismatch
	}
	return invitation, nil
}

package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/wardline/roster-api/internal/models"
	"github.com/wardline/roster-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAlreadyEnrolled           = errors.New("user is already enrolled in this workspace")
	ErrEnrollmentRequestPending  = errors.New("an enrollment request is already pending")
	ErrEnrollmentRequestNotFound = errors.New("enrollment request not found")
	ErrEnrollmentRequestDecided  = errors.New("enrollment request has already been decided")
	ErrCannotRemoveSelfFromOwned = errors.New("owners cannot remove themselves; unenroll instead")
)

// EnrollmentService drives the per-(workspace, user) membership state machine.
type EnrollmentService struct {
	wsRepo     repository.WorkspaceRepository
	enrollRepo repository.EnrollmentRepository
	wsService  *WorkspaceService
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(wsRepo repository.WorkspaceRepository, enrollRepo repository.EnrollmentRepository, wsService *WorkspaceService) *EnrollmentService {
	return &EnrollmentService{
		wsRepo:     wsRepo,
		enrollRepo: enrollRepo,
		wsService:  wsService,
	}
}

// EnrollmentOutcome reports what a RequestEnrollment call produced. Enrollment
// is non-nil only on the owner self-service path.
type EnrollmentOutcome struct {
	Request    *models.EnrollmentRequest
	Enrollment *models.Enrollment
}

// RequestEnrollment asks to join a workspace. Owners are enrolled immediately
// with an already-approved request record; everyone else gets a pending
// request.
func (s *EnrollmentService) RequestEnrollment(workspaceID, userID string) (*EnrollmentOutcome, error) {
	workspace, err := s.wsRepo.FindByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	if _, err := s.enrollRepo.Find(workspaceID, userID); err == nil {
		return nil, ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify enrollment: %w", err)
	}

	if _, err := s.enrollRepo.FindPendingRequest(workspaceID, userID); err == nil {
		return nil, ErrEnrollmentRequestPending
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check pending request: %w", err)
	}

	if workspace.OwnerID == userID {
		return s.enrollOwner(workspaceID, userID)
	}

	request := &models.EnrollmentRequest{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Status:      models.RequestPending,
	}
	if err := s.enrollRepo.CreateRequest(request); err != nil {
		return nil, fmt.Errorf("failed to create enrollment request: %w", err)
	}

	return &EnrollmentOutcome{Request: request}, nil
}

// enrollOwner is the self-service shortcut: an enrollment plus a request that
// never passes through the pending state.
func (s *EnrollmentService) enrollOwner(workspaceID, userID string) (*EnrollmentOutcome, error) {
	enrollment := &models.Enrollment{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        models.RoleOwner,
		EnrolledAt:  time.Now(),
	}
	if err := s.enrollRepo.Create(enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	request := &models.EnrollmentRequest{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Status:      models.RequestApproved,
	}
	if err := s.enrollRepo.CreateRequest(request); err != nil {
		return nil, fmt.Errorf("failed to record approved request: %w", err)
	}

	if err := s.wsService.AutoSetFirstFavorite(userID); err != nil {
		return nil, err
	}

	return &EnrollmentOutcome{Request: request, Enrollment: enrollment}, nil
}

// ApproveRequest approves a pending enrollment request. Approval is idempotent
// with respect to an enrollment that already exists.
func (s *EnrollmentService) ApproveRequest(requestID, callerID string) (*models.Enrollment, error) {
	request, err := s.findDecidableRequest(requestID, callerID)
	if err != nil {
		return nil, err
	}

	enrollment, err := s.enrollRepo.Find(request.WorkspaceID, request.UserID)
	if err == nil {
		// Duplicate approval race: keep the existing enrollment, still mark
		// the request approved and run the favorite trigger.
		if err := s.markRequest(request, models.RequestApproved); err != nil {
			return nil, err
		}
		if err := s.wsService.AutoSetFirstFavorite(request.UserID); err != nil {
			return nil, err
		}
		return enrollment, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify enrollment: %w", err)
	}

	enrollment = &models.Enrollment{
		WorkspaceID: request.WorkspaceID,
		UserID:      request.UserID,
		Role:        models.RoleMember,
		EnrolledAt:  time.Now(),
	}
	if err := s.enrollRepo.Create(enrollment); err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to create enrollment: %w", err)
		}
		if enrollment, err = s.enrollRepo.Find(request.WorkspaceID, request.UserID); err != nil {
			return nil, fmt.Errorf("failed to load existing enrollment: %w", err)
		}
	}

	if err := s.markRequest(request, models.RequestApproved); err != nil {
		return nil, err
	}

	if err := s.wsService.AutoSetFirstFavorite(request.UserID); err != nil {
		return nil, err
	}

	return enrollment, nil
}

// RejectRequest rejects a pending enrollment request. Terminal.
func (s *EnrollmentService) RejectRequest(requestID, callerID string) (*models.EnrollmentRequest, error) {
	request, err := s.findDecidableRequest(requestID, callerID)
	if err != nil {
		return nil, err
	}

	if err := s.markRequest(request, models.RequestRejected); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *EnrollmentService) findDecidableRequest(requestID, callerID string) (*models.EnrollmentRequest, error) {
	request, err := s.enrollRepo.FindRequestByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentRequestNotFound
		}
		return nil, fmt.Errorf("failed to find enrollment request: %w", err)
	}

	if request.Workspace.OwnerID != callerID {
		return nil, ErrNotWorkspaceOwner
	}
	if request.Status != models.RequestPending {
		return nil, ErrEnrollmentRequestDecided
	}
	return request, nil
}

func (s *EnrollmentService) markRequest(request *models.EnrollmentRequest, status models.EnrollmentRequestStatus) error {
	request.Status = status
	if err := s.enrollRepo.UpdateRequest(request); err != nil {
		return fmt.Errorf("failed to update enrollment request: %w", err)
	}
	return nil
}

// Unenroll removes the caller's own membership along with their request
// history, so a later request starts from a clean slate.
func (s *EnrollmentService) Unenroll(workspaceID, userID string) error {
	if _, err := s.wsRepo.FindByID(workspaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkspaceNotFound
		}
		return fmt.Errorf("failed to find workspace: %w", err)
	}

	if _, err := s.enrollRepo.Find(workspaceID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotEnrolled
		}
		return fmt.Errorf("failed to find enrollment: %w", err)
	}

	if err := s.wsService.ShiftFavoriteAway(userID, workspaceID); err != nil {
		return err
	}

	if err := s.enrollRepo.DeleteWithHistory(workspaceID, userID); err != nil {
		return fmt.Errorf("failed to remove enrollment: %w", err)
	}
	return nil
}

// RemoveUser is the owner's admin path for removing a member. Owners must use
// Unenroll for themselves.
func (s *EnrollmentService) RemoveUser(workspaceID, targetID, callerID string) error {
	workspace, err := s.wsRepo.FindByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkspaceNotFound
		}
		return fmt.Errorf("failed to find workspace: %w", err)
	}

	if workspace.OwnerID != callerID {
		return ErrNotWorkspaceOwner
	}
	if targetID == callerID {
		return ErrCannotRemoveSelfFromOwned
	}

	if _, err := s.enrollRepo.Find(workspaceID, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotEnrolled
		}
		return fmt.Errorf("failed to find enrollment: %w", err)
	}

	if err := s.wsService.ShiftFavoriteAway(targetID, workspaceID); err != nil {
		return err
	}

	if err := s.enrollRepo.DeleteWithHistory(workspaceID, targetID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

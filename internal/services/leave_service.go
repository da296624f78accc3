package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/wardline/roster-api/internal/identity"
	"github.com/wardline/roster-api/internal/models"
	"github.com/wardline/roster-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrInvalidLeaveRange    = errors.New("end date must not be before start date")
	ErrLeaveOverlap         = errors.New("an overlapping pending leave request already exists")
	ErrLeaveNotPending      = errors.New("leave request has already been decided")
	ErrNotLeaveRequester    = errors.New("only the requester can cancel a leave request")
)

// LeaveService manages the leave-request lifecycle.
type LeaveService struct {
	wsRepo     repository.WorkspaceRepository
	enrollRepo repository.EnrollmentRepository
	leaveRepo  repository.LeaveRepository
	verifier   identity.Verifier
	logger     zerolog.Logger
}

// NewLeaveService creates a new LeaveService.
func NewLeaveService(
	wsRepo repository.WorkspaceRepository,
	enrollRepo repository.EnrollmentRepository,
	leaveRepo repository.LeaveRepository,
	verifier identity.Verifier,
	logger zerolog.Logger,
) *LeaveService {
	return &LeaveService{
		wsRepo:     wsRepo,
		enrollRepo: enrollRepo,
		leaveRepo:  leaveRepo,
		verifier:   verifier,
		logger:     logger,
	}
}

// RequestLeaveInput represents a member's ask for time off. Dates are
// inclusive on both ends.
type RequestLeaveInput struct {
	WorkspaceID string
	StartDate   time.Time
	EndDate     time.Time
	Reason      string
	UserID      string
}

// RequestLeave creates a pending leave request. Requires enrollment, not
// ownership. Overlap is checked against the user's other pending requests in
// the workspace; approved requests do not block.
func (s *LeaveService) RequestLeave(input RequestLeaveInput) (*models.LeaveRequest, error) {
	if _, err := s.wsRepo.FindByID(input.WorkspaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	if _, err := s.enrollRepo.Find(input.WorkspaceID, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, fmt.Errorf("failed to verify enrollment: %w", err)
	}

	if input.EndDate.Before(input.StartDate) {
		return nil, ErrInvalidLeaveRange
	}

	overlaps, err := s.leaveRepo.HasPendingOverlap(input.WorkspaceID, input.UserID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check overlap: %w", err)
	}
	if overlaps {
		return nil, ErrLeaveOverlap
	}

	request := &models.LeaveRequest{
		WorkspaceID: input.WorkspaceID,
		UserID:      input.UserID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Reason:      input.Reason,
		Status:      models.LeavePending,
	}
	if err := s.leaveRepo.Create(request); err != nil {
		return nil, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

// ApproveLeaveRequest approves a pending leave request. Owner only.
func (s *LeaveService) ApproveLeaveRequest(id, callerID string) (*models.LeaveRequest, error) {
	return s.decide(id, callerID, models.LeaveApproved)
}

// RejectLeaveRequest rejects a pending leave request. Owner only.
func (s *LeaveService) RejectLeaveRequest(id, callerID string) (*models.LeaveRequest, error) {
	return s.decide(id, callerID, models.LeaveRejected)
}

func (s *LeaveService) decide(id, callerID string, status models.LeaveRequestStatus) (*models.LeaveRequest, error) {
	request, err := s.leaveRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaveRequestNotFound
		}
		return nil, fmt.Errorf("failed to find leave request: %w", err)
	}

	if request.Workspace.OwnerID != callerID {
		return nil, ErrNotWorkspaceOwner
	}
	if request.Status != models.LeavePending {
		return nil, ErrLeaveNotPending
	}

	request.Status = status
	if err := s.leaveRepo.Update(request); err != nil {
		return nil, fmt.Errorf("failed to update leave request: %w", err)
	}
	return request, nil
}

// CancelLeaveRequest hard-deletes a pending request. Requester only; even the
// workspace owner cannot cancel on a member's behalf.
func (s *LeaveService) CancelLeaveRequest(id, callerID string) error {
	request, err := s.leaveRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLeaveRequestNotFound
		}
		return fmt.Errorf("failed to find leave request: %w", err)
	}

	if request.UserID != callerID {
		return ErrNotLeaveRequester
	}
	if request.Status != models.LeavePending {
		return ErrLeaveNotPending
	}

	if err := s.leaveRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	return nil
}

// MyLeaveRequests returns the caller's leave requests across workspaces.
func (s *LeaveService) MyLeaveRequests(userID string) ([]models.LeaveRequest, error) {
	requests, err := s.leaveRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return requests, nil
}

// LeaveRequestWithEmail is a leave request enriched with the requester's email.
type LeaveRequestWithEmail struct {
	models.LeaveRequest
	RequesterEmail string `json:"requester_email"`
}

// WorkspaceLeaveRequests returns a workspace's leave requests for its owner,
// enriched with requester emails. A failed identity lookup degrades to an
// empty email rather than failing the listing.
func (s *LeaveService) WorkspaceLeaveRequests(ctx context.Context, workspaceID, callerID string) ([]LeaveRequestWithEmail, error) {
	workspace, err := s.wsRepo.FindByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}
	if workspace.OwnerID != callerID {
		return nil, ErrNotWorkspaceOwner
	}

	requests, err := s.leaveRepo.ListByWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	emails := make(map[string]string, len(requests))
	enriched := make([]LeaveRequestWithEmail, len(requests))
	for i, request := range requests {
		email, ok := emails[request.UserID]
		if !ok {
			if user, err := s.verifier.UserByID(ctx, request.UserID); err != nil {
				s.logger.Warn().Err(err).Str("user_id", request.UserID).Msg("requester email lookup failed")
				email = ""
			} else {
				email = user.Email
			}
			emails[request.UserID] = email
		}
		enriched[i] = LeaveRequestWithEmail{LeaveRequest: request, RequesterEmail: email}
	}

	return enriched, nil
}

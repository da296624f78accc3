package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wardline/roster-api/internal/constants"
	"github.com/wardline/roster-api/internal/models"
	"github.com/wardline/roster-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrWorkspaceNotFound    = errors.New("workspace not found")
	ErrInvalidWorkspaceName = errors.New("workspace name cannot be empty")
	ErrNotWorkspaceOwner    = errors.New("only the workspace owner can perform this action")
	ErrNotWorkspaceMember   = errors.New("user is not a member of this workspace")
	ErrNotEnrolled          = errors.New("user is not enrolled in this workspace")
	ErrFavoriteNotFound     = errors.New("favorite not found")
)

// WorkspaceService provides business logic for workspace lifecycle and
// favorite management.
type WorkspaceService struct {
	wsRepo     repository.WorkspaceRepository
	enrollRepo repository.EnrollmentRepository
}

// NewWorkspaceService creates a new WorkspaceService.
func NewWorkspaceService(wsRepo repository.WorkspaceRepository, enrollRepo repository.EnrollmentRepository) *WorkspaceService {
	return &WorkspaceService{
		wsRepo:     wsRepo,
		enrollRepo: enrollRepo,
	}
}

// CreateWorkspaceInput represents parameters to create a new workspace.
type CreateWorkspaceInput struct {
	Name    string
	OwnerID string
}

// CreateWorkspace creates a new workspace owned by the caller.
func (s *WorkspaceService) CreateWorkspace(input CreateWorkspaceInput) (*models.Workspace, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidWorkspaceName
	}

	workspace := &models.Workspace{
		Name:    input.Name,
		OwnerID: input.OwnerID,
	}

	if err := s.wsRepo.Create(workspace); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	return workspace, nil
}

// GetWorkspace returns a workspace readable by its owner only. Enrolled
// non-owners use GetWorkspaceDetails instead.
func (s *WorkspaceService) GetWorkspace(id, callerID string) (*models.Workspace, error) {
	workspace, err := s.wsRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	if workspace.OwnerID != callerID {
		return nil, ErrNotWorkspaceOwner
	}

	return workspace, nil
}

// WorkspaceDetails carries a workspace together with the caller's two
// independent standings: ownership and membership.
type WorkspaceDetails struct {
	Workspace *models.Workspace
	IsOwner   bool
	IsMember  bool
}

// GetWorkspaceDetails returns a workspace with the caller's ownership and
// membership facts resolved separately.
func (s *WorkspaceService) GetWorkspaceDetails(id, callerID string) (*WorkspaceDetails, error) {
	workspace, err := s.wsRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	details := &WorkspaceDetails{
		Workspace: workspace,
		IsOwner:   workspace.OwnerID == callerID,
	}

	if _, err := s.enrollRepo.Find(id, callerID); err == nil {
		details.IsMember = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	return details, nil
}

// UpdateWorkspace renames a workspace. Owner only.
func (s *WorkspaceService) UpdateWorkspace(id, name, callerID string) (*models.Workspace, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidWorkspaceName
	}

	workspace, err := s.GetWorkspace(id, callerID)
	if err != nil {
		return nil, err
	}

	workspace.Name = name
	if err := s.wsRepo.Update(workspace); err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}

	return workspace, nil
}

// DeleteWorkspace removes a workspace, its enrollment requests, and its
// enrollments. Each affected user's favorite is shifted away first.
func (s *WorkspaceService) DeleteWorkspace(id, callerID string) error {
	if _, err := s.GetWorkspace(id, callerID); err != nil {
		return err
	}

	enrollments, err := s.enrollRepo.ListByWorkspace(id)
	if err != nil {
		return fmt.Errorf("failed to list enrollments: %w", err)
	}

	for _, enrollment := range enrollments {
		if err := s.ShiftFavoriteAway(enrollment.UserID, id); err != nil {
			return err
		}
	}

	if err := s.wsRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	return nil
}

// Search finds workspaces by exact ID when the query is UUID-shaped, or by
// case-insensitive name substring otherwise. A valid UUID with no match is an
// empty result, not an error.
func (s *WorkspaceService) Search(query string) ([]models.Workspace, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Workspace{}, nil
	}

	if _, err := uuid.Parse(query); err == nil {
		workspace, err := s.wsRepo.FindByID(query)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []models.Workspace{}, nil
			}
			return nil, fmt.Errorf("failed to search workspace by id: %w", err)
		}
		return []models.Workspace{*workspace}, nil
	}

	workspaces, err := s.wsRepo.SearchByName(query, constants.SearchResultLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search workspaces: %w", err)
	}
	return workspaces, nil
}

// ListEnrolled returns the caller's enrollments with workspaces attached,
// oldest first.
func (s *WorkspaceService) ListEnrolled(userID string) ([]models.Enrollment, error) {
	enrollments, err := s.enrollRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}

// ListMembers returns a workspace's enrollments. Readable by the owner or any
// enrolled member.
func (s *WorkspaceService) ListMembers(workspaceID, callerID string) ([]models.Enrollment, error) {
	workspace, err := s.wsRepo.FindByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	if workspace.OwnerID != callerID {
		if _, err := s.enrollRepo.Find(workspaceID, callerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotWorkspaceMember
			}
			return nil, fmt.Errorf("failed to verify membership: %w", err)
		}
	}

	members, err := s.enrollRepo.ListByWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// SetFavorite pins a workspace the user is enrolled in as their favorite.
func (s *WorkspaceService) SetFavorite(userID, workspaceID string) (*models.UserFavorite, error) {
	if _, err := s.wsRepo.FindByID(workspaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	if _, err := s.enrollRepo.Find(workspaceID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, fmt.Errorf("failed to verify enrollment: %w", err)
	}

	favorite := &models.UserFavorite{
		UserID:      userID,
		WorkspaceID: workspaceID,
		UpdatedAt:   time.Now(),
	}
	if err := s.wsRepo.SaveFavorite(favorite); err != nil {
		return nil, fmt.Errorf("failed to save favorite: %w", err)
	}

	return favorite, nil
}

// GetFavorite returns the user's favorite, or ErrFavoriteNotFound.
func (s *WorkspaceService) GetFavorite(userID string) (*models.UserFavorite, error) {
	favorite, err := s.wsRepo.FindFavoriteByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFavoriteNotFound
		}
		return nil, fmt.Errorf("failed to find favorite: %w", err)
	}
	return favorite, nil
}

// ClearFavorite removes the user's favorite.
func (s *WorkspaceService) ClearFavorite(userID string) error {
	if _, err := s.GetFavorite(userID); err != nil {
		return err
	}

	if err := s.wsRepo.DeleteFavoriteByUser(userID); err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	return nil
}

// AutoSetFirstFavorite pins the user's oldest enrollment as favorite, but only
// when they have no favorite yet.
func (s *WorkspaceService) AutoSetFirstFavorite(userID string) error {
	if _, err := s.wsRepo.FindFavoriteByUser(userID); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check favorite: %w", err)
	}

	enrollments, err := s.enrollRepo.ListByUser(userID)
	if err != nil {
		return fmt.Errorf("failed to list enrollments: %w", err)
	}
	if len(enrollments) == 0 {
		return nil
	}

	favorite := &models.UserFavorite{
		UserID:      userID,
		WorkspaceID: enrollments[0].WorkspaceID,
	}
	if err := s.wsRepo.SaveFavorite(favorite); err != nil {
		return fmt.Errorf("failed to save favorite: %w", err)
	}
	return nil
}

// ShiftFavoriteAway re-targets the user's favorite when their enrollment in
// workspaceID goes away: the next-oldest remaining enrollment takes over, or
// the favorite is removed when none remain.
func (s *WorkspaceService) ShiftFavoriteAway(userID, workspaceID string) error {
	favorite, err := s.wsRepo.FindFavoriteByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check favorite: %w", err)
	}

	if favorite.WorkspaceID != workspaceID {
		return nil
	}

	enrollments, err := s.enrollRepo.ListByUser(userID)
	if err != nil {
		return fmt.Errorf("failed to list enrollments: %w", err)
	}

	for _, enrollment := range enrollments {
		if enrollment.WorkspaceID == workspaceID {
			continue
		}
		favorite.WorkspaceID = enrollment.WorkspaceID
		favorite.UpdatedAt = time.Now()
		if err := s.wsRepo.SaveFavorite(favorite); err != nil {
			return fmt.Errorf("failed to shift favorite: %w", err)
		}
		return nil
	}

	if err := s.wsRepo.DeleteFavoriteByUser(userID); err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	return nil
}

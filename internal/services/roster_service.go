package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/wardline/roster-api/internal/constants"
	"github.com/wardline/roster-api/internal/models"
	"github.com/wardline/roster-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrRosterNotFound      = errors.New("roster not found")
	ErrInvalidRosterPeriod = errors.New("month must be between 1 and 12")
	ErrInvalidAssignment   = errors.New("invalid roster assignment")
)

var validShiftPeriods = map[models.ShiftPeriod]bool{
	models.ShiftMorning: true,
	models.ShiftEvening: true,
	models.ShiftNight:   true,
}

var validDutyTypes = map[models.DutyType]bool{
	models.DutyMorning:  true,
	models.DutyEvening:  true,
	models.DutyNight:    true,
	models.DutyDayOff:   true,
	models.DutySpecial:  true,
	models.DutyVacation: true,
}

// RosterService manages the roster save/publish workflow.
type RosterService struct {
	wsRepo     repository.WorkspaceRepository
	enrollRepo repository.EnrollmentRepository
	rosterRepo repository.RosterRepository
}

// NewRosterService creates a new RosterService.
func NewRosterService(wsRepo repository.WorkspaceRepository, enrollRepo repository.EnrollmentRepository, rosterRepo repository.RosterRepository) *RosterService {
	return &RosterService{
		wsRepo:     wsRepo,
		enrollRepo: enrollRepo,
		rosterRepo: rosterRepo,
	}
}

// AssignmentInput is one cell of the submitted roster grid. An empty duty type
// clears the cell.
type AssignmentInput struct {
	UserID      string
	Day         int
	ShiftPeriod models.ShiftPeriod
	DutyType    models.DutyType
	IsOvertime  bool
}

// SaveRosterInput represents a wholesale roster save for one period.
type SaveRosterInput struct {
	WorkspaceID string
	Month       int
	Year        int
	Assignments []AssignmentInput
	UserID      string
}

// SaveRoster upserts the roster for (workspace, month, year) and replaces all
// of its assignments with the submitted set. Owner only; enrollment alone is
// not enough. Cells with an empty duty type are omitted, not stored.
func (s *RosterService) SaveRoster(input SaveRosterInput) (*models.Roster, []models.RosterAssignment, error) {
	if input.Month < constants.MinMonth || input.Month > constants.MaxMonth {
		return nil, nil, ErrInvalidRosterPeriod
	}

	workspace, err := s.wsRepo.FindByID(input.WorkspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrWorkspaceNotFound
		}
		return nil, nil, fmt.Errorf("failed to find workspace: %w", err)
	}
	if workspace.OwnerID != input.UserID {
		return nil, nil, ErrNotWorkspaceOwner
	}

	type cellKey struct {
		userID      string
		day         int
		shiftPeriod models.ShiftPeriod
	}
	seen := make(map[cellKey]bool, len(input.Assignments))

	rows := make([]models.RosterAssignment, 0, len(input.Assignments))
	for _, a := range input.Assignments {
		if a.DutyType == "" {
			continue
		}
		if a.Day < constants.MinDay || a.Day > constants.MaxDay ||
			!validShiftPeriods[a.ShiftPeriod] || !validDutyTypes[a.DutyType] || a.UserID == "" {
			return nil, nil, ErrInvalidAssignment
		}
		key := cellKey{userID: a.UserID, day: a.Day, shiftPeriod: a.ShiftPeriod}
		if seen[key] {
			return nil, nil, ErrInvalidAssignment
		}
		seen[key] = true
		rows = append(rows, models.RosterAssignment{
			UserID:      a.UserID,
			Day:         a.Day,
			ShiftPeriod: a.ShiftPeriod,
			DutyType:    a.DutyType,
			IsOvertime:  a.IsOvertime,
		})
	}

	roster, err := s.rosterRepo.FindByPeriod(input.WorkspaceID, input.Month, input.Year)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		roster = &models.Roster{
			WorkspaceID: input.WorkspaceID,
			Month:       input.Month,
			Year:        input.Year,
			Status:      models.RosterDraft,
		}
		if err := s.rosterRepo.Create(roster); err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, nil, fmt.Errorf("failed to create roster: %w", err)
			}
			// Concurrent save created it first; the unique index on the
			// period is the safety net.
			if roster, err = s.rosterRepo.FindByPeriod(input.WorkspaceID, input.Month, input.Year); err != nil {
				return nil, nil, fmt.Errorf("failed to load roster: %w", err)
			}
		}
	} else if err != nil {
		return nil, nil, fmt.Errorf("failed to find roster: %w", err)
	}

	if err := s.rosterRepo.ReplaceAssignments(roster.ID, rows); err != nil {
		return nil, nil, fmt.Errorf("failed to replace assignments: %w", err)
	}

	assignments, err := s.rosterRepo.ListAssignments(roster.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	return roster, assignments, nil
}

// PublishRoster makes a roster visible to members and stamps who published it.
func (s *RosterService) PublishRoster(rosterID, callerID string) (*models.Roster, error) {
	roster, err := s.findOwnedRoster(rosterID, callerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	roster.Status = models.RosterPublished
	roster.PublishedAt = &now
	roster.PublishedBy = &callerID

	if err := s.rosterRepo.Update(roster); err != nil {
		return nil, fmt.Errorf("failed to publish roster: %w", err)
	}
	return roster, nil
}

// UnpublishRoster reverts a roster to draft and clears the publish stamp.
func (s *RosterService) UnpublishRoster(rosterID, callerID string) (*models.Roster, error) {
	roster, err := s.findOwnedRoster(rosterID, callerID)
	if err != nil {
		return nil, err
	}

	roster.Status = models.RosterDraft
	roster.PublishedAt = nil
	roster.PublishedBy = nil

	if err := s.rosterRepo.Update(roster); err != nil {
		return nil, fmt.Errorf("failed to unpublish roster: %w", err)
	}
	return roster, nil
}

// GetRoster returns the roster and assignments for a period. Readable by the
// owner or any enrolled member. A missing roster is a valid empty state, not
// an error.
func (s *RosterService) GetRoster(workspaceID string, month, year int, callerID string) (*models.Roster, []models.RosterAssignment, error) {
	workspace, err := s.wsRepo.FindByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrWorkspaceNotFound
		}
		return nil, nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	if workspace.OwnerID != callerID {
		if _, err := s.enrollRepo.Find(workspaceID, callerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrNotWorkspaceMember
			}
			return nil, nil, fmt.Errorf("failed to verify membership: %w", err)
		}
	}

	roster, err := s.rosterRepo.FindByPeriod(workspaceID, month, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, []models.RosterAssignment{}, nil
		}
		return nil, nil, fmt.Errorf("failed to find roster: %w", err)
	}

	assignments, err := s.rosterRepo.ListAssignments(roster.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return roster, assignments, nil
}

// UserRosterView is one workspace's published roster filtered down to the
// caller's own assignments.
type UserRosterView struct {
	WorkspaceID   string                    `json:"workspace_id"`
	WorkspaceName string                    `json:"workspace_name"`
	Roster        *models.Roster            `json:"roster"`
	Assignments   []models.RosterAssignment `json:"assignments"`
}

// GetUserPublishedRosters aggregates, across every workspace the user is
// enrolled in, the published roster for the period with only the user's own
// assignments.
func (s *RosterService) GetUserPublishedRosters(userID string, month, year int) ([]UserRosterView, error) {
	enrollments, err := s.enrollRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	views := make([]UserRosterView, 0, len(enrollments))
	for _, enrollment := range enrollments {
		roster, err := s.rosterRepo.FindByPeriod(enrollment.WorkspaceID, month, year)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to find roster: %w", err)
		}
		if roster.Status != models.RosterPublished {
			continue
		}

		assignments, err := s.rosterRepo.ListUserAssignments(roster.ID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list assignments: %w", err)
		}

		views = append(views, UserRosterView{
			WorkspaceID:   enrollment.WorkspaceID,
			WorkspaceName: enrollment.Workspace.Name,
			Roster:        roster,
			Assignments:   assignments,
		})
	}

	return views, nil
}

// DeleteRoster removes a roster and its assignments. Owner only.
func (s *RosterService) DeleteRoster(rosterID, callerID string) error {
	if _, err := s.findOwnedRoster(rosterID, callerID); err != nil {
		return err
	}

	if err := s.rosterRepo.Delete(rosterID); err != nil {
		return fmt.Errorf("failed to delete roster: %w", err)
	}
	return nil
}

func (s *RosterService) findOwnedRoster(rosterID, callerID string) (*models.Roster, error) {
	roster, err := s.rosterRepo.FindByID(rosterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRosterNotFound
		}
		return nil, fmt.Errorf("failed to find roster: %w", err)
	}

	if roster.Workspace.OwnerID != callerID {
		return nil, ErrNotWorkspaceOwner
	}
	return roster, nil
}

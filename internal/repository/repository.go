package repository

import (
	"time"

	"github.com/wardline/roster-api/internal/models"
)

// WorkspaceRepository defines the interface for workspace and favorite data access
type WorkspaceRepository interface {
	// Create creates a new workspace
	Create(workspace *models.Workspace) error

	// FindByID finds a workspace by ID
	FindByID(id string) (*models.Workspace, error)

	// Update updates a workspace
	Update(workspace *models.Workspace) error

	// Delete deletes a workspace and its enrollments and requests atomically
	Delete(id string) error

	// SearchByName finds workspaces whose name contains the query, newest first
	SearchByName(query string, limit int) ([]models.Workspace, error)

	// FindFavoriteByUser finds a user's favorite, if any
	FindFavoriteByUser(userID string) (*models.UserFavorite, error)

	// SaveFavorite inserts or updates a favorite
	SaveFavorite(favorite *models.UserFavorite) error

	// DeleteFavoriteByUser removes a user's favorite
	DeleteFavoriteByUser(userID string) error
}

// EnrollmentRepository defines the interface for enrollment and request data access
type EnrollmentRepository interface {
	// Create creates a new enrollment
	Create(enrollment *models.Enrollment) error

	// Find finds the enrollment for a (workspace, user) pair
	Find(workspaceID, userID string) (*models.Enrollment, error)

	// ListByWorkspace lists all enrollments in a workspace
	ListByWorkspace(workspaceID string) ([]models.Enrollment, error)

	// ListByUser lists a user's enrollments ordered by enrolled_at ascending
	ListByUser(userID string) ([]models.Enrollment, error)

	// DeleteWithHistory removes the enrollment and every enrollment request
	// for the pair in one transaction, so a future request starts clean
	DeleteWithHistory(workspaceID, userID string) error

	// CreateRequest creates a new enrollment request
	CreateRequest(request *models.EnrollmentRequest) error

	// FindRequestByID finds an enrollment request by ID
	FindRequestByID(id string) (*models.EnrollmentRequest, error)

	// FindPendingRequest finds a pending request for a (workspace, user) pair
	FindPendingRequest(workspaceID, userID string) (*models.EnrollmentRequest, error)

	// UpdateRequest updates an enrollment request
	UpdateRequest(request *models.EnrollmentRequest) error
}

// InvitationRepository defines the interface for invitation data access
type InvitationRepository interface {
	// Create creates a new invitation
	Create(invitation *models.Invitation) error

	// FindByID finds an invitation by ID
	FindByID(id string) (*models.Invitation, error)

	// FindPendingByEmail finds a pending invitation for an email in a workspace
	FindPendingByEmail(workspaceID, email string) (*models.Invitation, error)

	// ListPendingByEmail lists pending invitations addressed to an email
	ListPendingByEmail(email string) ([]models.Invitation, error)

	// Update updates an invitation
	Update(invitation *models.Invitation) error

	// Delete hard-deletes an invitation
	Delete(id string) error
}

// RosterRepository defines the interface for roster and assignment data access
type RosterRepository interface {
	// FindByID finds a roster by ID
	FindByID(id string) (*models.Roster, error)

	// FindByPeriod finds the roster for a workspace and calendar month
	FindByPeriod(workspaceID string, month, year int) (*models.Roster, error)

	// Create creates a new roster
	Create(roster *models.Roster) error

	// Update updates a roster
	Update(roster *models.Roster) error

	// Delete deletes a roster and its assignments atomically
	Delete(id string) error

	// ReplaceAssignments wholesale-replaces a roster's assignment rows in one
	// transaction: every existing row is deleted, then the given rows inserted
	ReplaceAssignments(rosterID string, assignments []models.RosterAssignment) error

	// ListAssignments lists all assignments of a roster
	ListAssignments(rosterID string) ([]models.RosterAssignment, error)

	// ListUserAssignments lists one user's assignments within a roster
	ListUserAssignments(rosterID, userID string) ([]models.RosterAssignment, error)
}

// LeaveRepository defines the interface for leave request data access
type LeaveRepository interface {
	// Create creates a new leave request
	Create(request *models.LeaveRequest) error

	// FindByID finds a leave request by ID
	FindByID(id string) (*models.LeaveRequest, error)

	// Update updates a leave request
	Update(request *models.LeaveRequest) error

	// Delete hard-deletes a leave request
	Delete(id string) error

	// ListByUser lists a user's leave requests, newest first
	ListByUser(userID string) ([]models.LeaveRequest, error)

	// ListByWorkspace lists a workspace's leave requests, newest first
	ListByWorkspace(workspaceID string) ([]models.LeaveRequest, error)

	// HasPendingOverlap reports whether the user has a pending request in the
	// workspace whose inclusive date range overlaps [start, end]
	HasPendingOverlap(workspaceID, userID string, start, end time.Time) (bool, error)
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/wardline/roster-api/internal/identity"
	"github.com/wardline/roster-api/internal/models"
	"github.com/wardline/roster-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db            *gorm.DB
	verifier      *fakeVerifier
	wsService     *WorkspaceService
	enrollService *EnrollmentService
	inviteService *InvitationService
	rosterService *RosterService
	leaveService  *LeaveService
}

func setupServiceTestEnv(t *testing.T) *serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Workspace{},
		&models.Enrollment{},
		&models.EnrollmentRequest{},
		&models.UserFavorite{},
		&models.Invitation{},
		&models.Roster{},
		&models.RosterAssignment{},
		&models.LeaveRequest{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	wsRepo := repository.NewWorkspaceRepository(db)
	enrollRepo := repository.NewEnrollmentRepository(db)
	inviteRepo := repository.NewInvitationRepository(db)
	rosterRepo := repository.NewRosterRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)

	verifier := newFakeVerifier()
	logger := zerolog.Nop()

	wsService := NewWorkspaceService(wsRepo, enrollRepo)
	return &serviceTestEnv{
		db:            db,
		verifier:      verifier,
		wsService:     wsService,
		enrollService: NewEnrollmentService(wsRepo, enrollRepo, wsService),
		inviteService: NewInvitationService(wsRepo, enrollRepo, inviteRepo, wsService, verifier, logger),
		rosterService: NewRosterService(wsRepo, enrollRepo, rosterRepo),
		leaveService:  NewLeaveService(wsRepo, enrollRepo, leaveRepo, verifier, logger),
	}
}

func (env *serviceTestEnv) createWorkspace(t *testing.T, name, ownerID string) *models.Workspace {
	t.Helper()
	workspace, err := env.wsService.CreateWorkspace(CreateWorkspaceInput{Name: name, OwnerID: ownerID})
	require.NoError(t, err)
	return workspace
}

func (env *serviceTestEnv) enroll(t *testing.T, workspaceID, userID string) {
	t.Helper()
	outcome, err := env.enrollService.RequestEnrollment(workspaceID, userID)
	require.NoError(t, err)
	if outcome.Enrollment != nil {
		return
	}

	var workspace models.Workspace
	require.NoError(t, env.db.Where("id = ?", workspaceID).First(&workspace).Error)
	_, err = env.enrollService.ApproveRequest(outcome.Request.ID, workspace.OwnerID)
	require.NoError(t, err)
}

func newUserID() string {
	return uuid.NewString()
}

// fakeVerifier is an in-memory identity.Verifier for tests.
type fakeVerifier struct {
	users       map[string]identity.User
	byEmail     map[string]identity.User
	lookupFails bool
	idFails     bool
}

func newFakeVerifier() *fakeVerifier {
	return &fakeVerifier{
		users:   make(map[string]identity.User),
		byEmail: make(map[string]identity.User),
	}
}

func (f *fakeVerifier) addUser(id, email string) identity.User {
	user := identity.User{ID: id, Email: email}
	f.users[id] = user
	f.byEmail[email] = user
	return user
}

func (f *fakeVerifier) VerifyToken(ctx context.Context, token string) (*identity.User, error) {
	if user, ok := f.users[token]; ok {
		return &user, nil
	}
	return nil, identity.ErrInvalidToken
}

func (f *fakeVerifier) UserByID(ctx context.Context, id string) (*identity.User, error) {
	if f.idFails {
		return nil, errors.New("identity provider unreachable")
	}
	if user, ok := f.users[id]; ok {
		return &user, nil
	}
	return nil, identity.ErrUserNotFound
}

func (f *fakeVerifier) UserByEmail(ctx context.Context, email string) (*identity.User, identity.LookupOutcome) {
	if f.lookupFails {
		return nil, identity.LookupUnknown
	}
	if user, ok := f.byEmail[email]; ok {
		return &user, identity.LookupFound
	}
	return nil, identity.LookupNotFound
}

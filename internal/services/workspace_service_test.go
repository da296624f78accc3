package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/wardline/roster-api/internal/models"
)

func TestCreateWorkspace_Validation(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.wsService.CreateWorkspace(CreateWorkspaceInput{Name: "   ", OwnerID: newUserID()})
	require.ErrorIs(t, err, ErrInvalidWorkspaceName)

	owner := newUserID()
	workspace := env.createWorkspace(t, "Ward A", owner)
	require.NotEmpty(t, workspace.ID)
	require.Equal(t, owner, workspace.OwnerID)
}

func TestGetWorkspace_OwnerOnly(t *testing.T) {
	env := setupServiceTestEnv(t)

	owner := newUserID()
	member := newUserID()
	workspace := env.createWorkspace(t, "Ward A", owner)
	env.enroll(t, workspace.ID, member)

	_, err := env.wsService.GetWorkspace(workspace.ID, owner)
	require.NoError(t, err)

	// Enrollment is not enough for the owner accessor.
	_, err = env.wsService.GetWorkspace(workspace.ID, member)
	require.ErrorIs(t, err, ErrNotWorkspaceOwner)

	_, err = env.wsService.GetWorkspace(uuid.NewString(), owner)
	require.ErrorIs(t, err, ErrWorkspaceNotFound)
}

func TestGetWorkspaceDetails_IndependentFacts(t *testing.T) {
	env := setupServiceTestEnv(t)

	owner := newUserID()
	member := newUserID()
	stranger := newUserID()
	workspace := env.createWorkspace(t, "Ward A", owner)
	env.enroll(t, workspace.ID, member)

	details, err := env.wsService.GetWorkspaceDetails(workspace.ID, owner)
	require.NoError(t, err)
	require.True(t, details.IsOwner)
	// Owners are not implicitly members.
	require.False(t, details.IsMember)

	details, err = env.wsService.GetWorkspaceDetails(workspace.ID, member)
	require.NoError(t, err)
	require.False(t, details.IsOwner)
	require.True(t, details.IsMember)

	details, err = env.wsService.GetWorkspaceDetails(workspace.ID, stranger)
	require.NoError(t, err)
	require.False(t, details.IsOwner)
	require.False(t, details.IsMember)
}

func TestSearch_UUIDExactMatch(t *testing.T) {
	env := setupServiceTestEnv(t)

	workspace := env.createWorkspace(t, "Ward A", newUserID())

	results, err := env.wsService.Search(workspace.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, workspace.ID, results[0].ID)

	// A valid UUID with no match is an empty list, not an error.
	results, err = env.wsService.Search(uuid.NewString())
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestSearch_NameSubstring(t *testing.T) {
	env := setupServiceTestEnv(t)

	env.createWorkspace(t, "Night Ward", newUserID())
	env.createWorkspace(t, "Day Ward", newUserID())
	env.createWorkspace(t, "Cafeteria", newUserID())

	results, err := env.wsService.Search("ward")
	require.NoError(t, err)
	require.Len(t, results, 2)

	results, err = env.wsService.Search("")
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestUpdateWorkspace_OwnerOnly(t *testing.T) {
	env := setupServiceTestEnv(t)

	owner := newUserID()
	workspace := env.createWorkspace(t, "Ward A", owner)

	_, err := env.wsService.UpdateWorkspace(workspace.ID, "Ward B", newUserID())
	require.ErrorIs(t, err, ErrNotWorkspaceOwner)

	updated, err := env.wsService.UpdateWorkspace(workspace.ID, "Ward B", owner)
	require.NoError(t, err)
	require.Equal(t, "Ward B", updated.Name)
}

func TestDeleteWorkspace_CascadesAndShiftsFavorites(t *testing.T) {
	env := setupServiceTestEnv(t)

	owner := newUserID()
	member := newUserID()
	first := env.createWorkspace(t, "Ward A", owner)
	second := env.createWorkspace(t, "Ward B", owner)
	env.enroll(t, first.ID, member)
	env.enroll(t, second.ID, member)

	// Member's favorite was auto-set to the first enrollment.
	favorite, err := env.wsService.GetFavorite(member)
	require.NoError(t, err)
	require.Equal(t, first.ID, favorite.WorkspaceID)

	require.NoError(t, env.wsService.DeleteWorkspace(first.ID, owner))

	var counts int64
	require.NoError(t, env.db.Model(&models.Enrollment{}).Where("workspace_id = ?", first.ID).Count(&counts).Error)
	require.EqualValues(t, 0, counts)
	require.NoError(t, env.db.Model(&models.EnrollmentRequest{}).Where("workspace_id = ?", first.ID).Count(&counts).Error)
	require.EqualValues(t, 0, counts)

	// Favorite shifted to the remaining enrollment.
	favorite, err = env.wsService.GetFavorite(member)
	require.NoError(t, err)
	require.Equal(t, second.ID, favorite.WorkspaceID)
}

func TestFavorite_AtMostOneAndShiftOrder(t *testing.T) {
	env := setupServiceTestEnv(t)

	owner := newUserID()
	member := newUserID()
	first := env.createWorkspace(t, "Ward A", owner)
	second := env.createWorkspace(t, "Ward B", owner)
	third := env.createWorkspace(t, "Ward C", owner)

	env.enroll(t, first.ID, member)
	// Keep enrolled_at strictly ordered.
	time.Sleep(5 * time.Millisecond)
	env.enroll(t, second.ID, member)
	time.Sleep(5 * time.Millisecond)
	env.enroll(t, third.ID, member)

	var favorites int64
	require.NoError(t, env.db.Model(&models.UserFavorite{}).Where("user_id = ?", member).Count(&favorites).Error)
	require.EqualValues(t, 1, favorites)

	// Leaving the favorited workspace repoints to the next-oldest enrollment.
	require.NoError(t, env.enrollService.Unenroll(first.ID, member))
	favorite, err := env.wsService.GetFavorite(member)
	require.NoError(t, err)
	require.Equal(t, second.ID, favorite.WorkspaceID)

	// Leaving a non-favorited workspace changes nothing.
	require.NoError(t, env.enrollService.Unenroll(third.ID, member))
	favorite, err = env.wsService.GetFavorite(member)
	require.NoError(t, err)
	require.Equal(t, second.ID, favorite.WorkspaceID)

	// No enrollments left: the favorite goes away.
	require.NoError(t, env.enrollService.Unenroll(second.ID, member))
	_, err = env.wsService.GetFavorite(member)
	require.ErrorIs(t, err, ErrFavoriteNotFound)
}

func TestSetFavorite_RequiresEnrollment(t *testing.T) {
	env := setupServiceTestEnv(t)

	owner := newUserID()
	member := newUserID()
	workspace := env.createWorkspace(t, "Ward A", owner)

	_, err := env.wsService.SetFavorite(member, workspace.ID)
	require.ErrorIs(t, err, ErrNotEnrolled)

	env.enroll(t, workspace.ID, member)
	favorite, err := env.wsService.SetFavorite(member, workspace.ID)
	require.NoError(t, err)
	require.Equal(t, workspace.ID, favorite.WorkspaceID)
}

func TestListMembers_OwnerOrMember(t *testing.T) {
	env := setupServiceTestEnv(t)

	owner := newUserID()
	member := newUserID()
	workspace := env.createWorkspace(t, "Ward A", owner)
	env.enroll(t, workspace.ID, member)

	members, err := env.wsService.ListMembers(workspace.ID, owner)
	require.NoError(t, err)
	require.Len(t, members, 1)

	members, err = env.wsService.ListMembers(workspace.ID, member)
	require.NoError(t, err)
	require.Len(t, members, 1)

	_, err = env.wsService.ListMembers(workspace.ID, newUserID())
	require.ErrorIs(t, err, ErrNotWorkspaceMember)
}

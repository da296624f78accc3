package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wardline/roster-api/internal/models"
)

func leaveDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func TestRequestLeave_Guards(t *testing.T) {
	env := setupServiceTestEnv(t)

	owner := newUserID()
	member := newUserID()
	workspace := env.createWorkspace(t, "Ward A", owner)

	input := RequestLeaveInput{
		WorkspaceID: workspace.ID,
		StartDate:   leaveDate(t, "2024-01-10"),
		EndDate:     leaveDate(t, "2024-01-15"),
		Reason:      "family visit",
		UserID:      member,
	}

	_, err := env.leaveService.RequestLeave(input)
	require.ErrorIs(t, err, ErrNotEnrolled)

	env.enroll(t, workspace.ID, member)

	input.EndDate = leaveDate(t, "2024-01-09")
	_, err = env.leaveService.RequestLeave(input)
	require.ErrorIs(t, err, ErrInvalidLeaveRange)

	input.EndDate = leaveDate(t, "2024-01-15")
	request, err := env.leaveService.RequestLeave(input)
	require.NoError(t, err)
	require.Equal(t, models.LeavePending, request.Status)
}

func TestRequestLeave_PendingOverlap(t *testing.T) {
	env := setupServiceTestEnv(t)

	owner := newUserID()
	member := newUserID()
	workspace := env.createWorkspace(t, "Ward A", owner)
	env.enroll(t, workspace.ID, member)

	_, err := env.leaveService.RequestLeave(RequestLeaveInput{
		WorkspaceID: workspace.ID,
		StartDate:   leaveDate(t, "2024-01-10"),
		EndDate:     leaveDate(t, "2024-01-15"),
		UserID:      member,
	})
	require.NoError(t, err)

	// [14..20] touches [10..15], inclusive bounds.
	_, err = env.leaveService.RequestLeave(RequestLeaveInput{
		WorkspaceID: workspace.ID,
		StartDate:   leaveDate(t, "2024-01-14"),
		EndDate:     leaveDate(t, "2024-01-20"),
		UserID:      member,
	})
	require.ErrorIs(t, err, ErrLeaveOverlap)

	// [16..20] starts the day after the pending range ends.
	_, err = env.leaveService.RequestLeave(RequestLeaveInput{
		WorkspaceID: workspace.ID,
		StartDate:   leaveDate(t, "2024-01-16"),
		EndDate:     leaveDate(t, "2024-01-20"),
		UserID:      member,
	})
	require.NoError(t, err)
}

func TestRequestLeave_OverlapScopedToPendingAndUser(t *testing.T) {
	env := setupServiceTestEnv(t)

	owner := newUserID()
	member := newUserID()
	other := newUserID()
	workspace := env.createWorkspace(t, "Ward A", owner)
	env.enroll(t, workspace.ID, member)
	env.enroll(t, workspace.ID, other)

	first, err := env.leaveService.RequestLeave(RequestLeaveInput{
		WorkspaceID: workspace.ID,
		StartDate:   leaveDate(t, "2024-01-10"),
		EndDate:     leaveDate(t, "2024-01-15"),
		UserID:      member,
	})
	require.NoError(t, err)

	// Another member's identical range does not collide.
	_, err = env.leaveService.RequestLeave(RequestLeaveInput{
		WorkspaceID: workspace.ID,
		StartDate:   leaveDate(t, "2024-01-10"),
		EndDate:     leaveDate(t, "2024-01-15"),
		UserID:      other,
	})
	require.NoError(t, err)

	// Once decided, the range no longer blocks a new request.
	_, err = env.leaveService.ApproveLeaveRequest(first.ID, owner)
	require.NoError(t, err)

	_, err = env.leaveService.RequestLeave(RequestLeaveInput{
		WorkspaceID: workspace.ID,
		StartDate:   leaveDate(t, "2024-01-12"),
		EndDate:     leaveDate(t, "2024-01-14"),
		UserID:      member,
	})
	require.NoError(t, err)
}

func TestDecideLeaveRequest_OwnerOnlyAndPendingOnly(t *testing.T) {
	env := setupServiceTestEnv(t)

	owner := newUserID()
	member := newUserID()
	workspace := env.createWorkspace(t, "Ward A", owner)
	env.enroll(t, workspace.ID, member)

	request, err := env.leaveService.RequestLeave(RequestLeaveInput{
		WorkspaceID: workspace.ID,
		StartDate:   leaveDate(t, "2024-02-01"),
		EndDate:     leaveDate(t, "2024-02-03"),
		UserID:      member,
	})
	require.NoError(t, err)

	_, err = env.leaveService.ApproveLeaveRequest(request.ID, member)
	require.ErrorIs(t, err, ErrNotWorkspaceOwner)

	_, err = env.leaveService.ApproveLeaveRequest(newUserID(), owner)
	require.ErrorIs(t, err, ErrLeaveRequestNotFound)

	approved, err := env.leaveService.ApproveLeaveRequest(request.ID, owner)
	require.NoError(t, err)
	require.Equal(t, models.LeaveApproved, approved.Status)

	_, err = env.leaveService.RejectLeaveRequest(request.ID, owner)
	require.ErrorIs(t, err, ErrLeaveNotPending)
}

func TestCancelLeaveRequest_RequesterOnly(t *testing.T) {
	env := setupServiceTestEnv(t)

	owner := newUserID()
	member := newUserID()
	workspace := env.createWorkspace(t, "Ward A", owner)
	env.enroll(t, workspace.ID, member)

	request, err := env.leaveService.RequestLeave(RequestLeaveInput{
		WorkspaceID: workspace.ID,
		StartDate:   leaveDate(t, "2024-03-01"),
		EndDate:     leaveDate(t, "2024-03-02"),
		UserID:      member,
	})
	require.NoError(t, err)

	// The owner cannot cancel on the member's behalf.
	err = env.leaveService.CancelLeaveRequest(request.ID, owner)
	require.ErrorIs(t, err, ErrNotLeaveRequester)

	require.NoError(t, env.leaveService.CancelLeaveRequest(request.ID, member))

	err = env.leaveService.CancelLeaveRequest(request.ID, member)
	require.ErrorIs(t, err, ErrLeaveRequestNotFound)

	var rows int64
	require.NoError(t, env.db.Model(&models.LeaveRequest{}).
		Where("id = ?", request.ID).Count(&rows).Error)
	require.EqualValues(t, 0, rows)
}

func TestCancelLeaveRequest_PendingOnly(t *testing.T) {
	env := setupServiceTestEnv(t)

	owner := newUserID()
	member := newUserID()
	workspace := env.createWorkspace(t, "Ward A", owner)
	env.enroll(t, workspace.ID, member)

	request, err := env.leaveService.RequestLeave(RequestLeaveInput{
		WorkspaceID: workspace.ID,
		StartDate:   leaveDate(t, "2024-03-10"),
		EndDate:     leaveDate(t, "2024-03-12"),
		UserID:      member,
	})
	require.NoError(t, err)

	_, err = env.leaveService.ApproveLeaveRequest(request.ID, owner)
	require.NoError(t, err)

	err = env.leaveService.CancelLeaveRequest(request.ID, member)
	require.ErrorIs(t, err, ErrLeaveNotPending)
}

func TestWorkspaceLeaveRequests_EmailEnrichment(t *testing.T) {
	env := setupServiceTestEnv(t)

	owner := newUserID()
	member := newUserID()
	env.verifier.addUser(member, "nurse@example.com")
	workspace := env.createWorkspace(t, "Ward A", owner)
	env.enroll(t, workspace.ID, member)

	_, err := env.leaveService.RequestLeave(RequestLeaveInput{
		WorkspaceID: workspace.ID,
		StartDate:   leaveDate(t, "2024-04-01"),
		EndDate:     leaveDate(t, "2024-04-02"),
		UserID:      member,
	})
	require.NoError(t, err)

	_, err = env.leaveService.WorkspaceLeaveRequests(context.Background(), workspace.ID, member)
	require.ErrorIs(t, err, ErrNotWorkspaceOwner)

	requests, err := env.leaveService.WorkspaceLeaveRequests(context.Background(), workspace.ID, owner)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	require.Equal(t, "nurse@example.com", requests[0].RequesterEmail)

	// Provider outage degrades to empty emails, not an error.
	env.verifier.idFails = true
	requests, err = env.leaveService.WorkspaceLeaveRequests(context.Background(), workspace.ID, owner)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	require.Empty(t, requests[0].RequesterEmail)
}

func TestMyLeaveRequests_CrossWorkspace(t *testing.T) {
	env := setupServiceTestEnv(t)

	owner := newUserID()
	member := newUserID()
	first := env.createWorkspace(t, "Ward A", owner)
	second := env.createWorkspace(t, "Ward B", owner)
	env.enroll(t, first.ID, member)
	env.enroll(t, second.ID, member)

	for _, workspaceID := range []string{first.ID, second.ID} {
		_, err := env.leaveService.RequestLeave(RequestLeaveInput{
			WorkspaceID: workspaceID,
			StartDate:   leaveDate(t, "2024-05-01"),
			EndDate:     leaveDate(t, "2024-05-02"),
			UserID:      member,
		})
		require.NoError(t, err)
	}

	requests, err := env.leaveService.MyLeaveRequests(member)
	require.NoError(t, err)
	require.Len(t, requests, 2)
}

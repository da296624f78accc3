package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/wardline/roster-api/internal/constants"
	"github.com/wardline/roster-api/internal/dto"
	apierrors "github.com/wardline/roster-api/internal/errors"
	"github.com/wardline/roster-api/internal/models"
	"github.com/wardline/roster-api/internal/repository"
	"github.com/wardline/roster-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type workspaceTestEnv struct {
	db        *gorm.DB
	handler   *WorkspaceHandler
	wsService *services.WorkspaceService
}

func setupWorkspaceTestEnv(t *testing.T) workspaceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Workspace{},
		&models.Enrollment{},
		&models.EnrollmentRequest{},
		&models.UserFavorite{},
	)
	require.NoError(t, err)

	wsRepo := repository.NewWorkspaceRepository(db)
	enrollRepo := repository.NewEnrollmentRepository(db)
	wsService := services.NewWorkspaceService(wsRepo, enrollRepo)
	handler := NewWorkspaceHandler(wsService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return workspaceTestEnv{
		db:        db,
		handler:   handler,
		wsService: wsService,
	}
}

func workspaceTestContext(method, url string, body []byte, userID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (env workspaceTestEnv) createTestWorkspace(t *testing.T, name, ownerID string) *models.Workspace {
	t.Helper()
	workspace, err := env.wsService.CreateWorkspace(services.CreateWorkspaceInput{
		Name:    name,
		OwnerID: ownerID,
	})
	require.NoError(t, err)
	return workspace
}

func (env workspaceTestEnv) enrollMember(t *testing.T, workspaceID, userID string) {
	t.Helper()
	require.NoError(t, env.db.Create(&models.Enrollment{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        models.RoleMember,
		EnrolledAt:  time.Now(),
	}).Error)
}

func TestWorkspaceHandler_CreateWorkspace(t *testing.T) {
	env := setupWorkspaceTestEnv(t)

	ownerID := uuid.NewString()
	body, err := json.Marshal(map[string]string{"name": "Ward A"})
	require.NoError(t, err)

	c, w := workspaceTestContext(http.MethodPost, "/api/v1/workspaces", body, ownerID)

	env.handler.CreateWorkspace(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.WorkspaceDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Ward A", response.Name)
	require.Equal(t, ownerID, response.OwnerID)
	require.NotEmpty(t, response.ID)
}

func TestWorkspaceHandler_CreateWorkspace_InvalidBody(t *testing.T) {
	env := setupWorkspaceTestEnv(t)

	c, w := workspaceTestContext(http.MethodPost, "/api/v1/workspaces", []byte(`{}`), uuid.NewString())

	env.handler.CreateWorkspace(c)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	require.Equal(t, apierrors.ErrCodeInvalidInput, apiErr.Code)
}

func TestWorkspaceHandler_GetWorkspace_Forbidden(t *testing.T) {
	env := setupWorkspaceTestEnv(t)

	workspace := env.createTestWorkspace(t, "Ward A", uuid.NewString())
	memberID := uuid.NewString()
	env.enrollMember(t, workspace.ID, memberID)

	c, w := workspaceTestContext(http.MethodGet, "/api/v1/workspaces/"+workspace.ID, nil, memberID)
	c.Params = gin.Params{{Key: "id", Value: workspace.ID}}

	env.handler.GetWorkspace(c)

	require.Equal(t, http.StatusForbidden, w.Code)

	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	require.Equal(t, apierrors.ErrCodeForbidden, apiErr.Code)
}

func TestWorkspaceHandler_GetWorkspaceDetails(t *testing.T) {
	env := setupWorkspaceTestEnv(t)

	workspace := env.createTestWorkspace(t, "Ward A", uuid.NewString())
	memberID := uuid.NewString()
	env.enrollMember(t, workspace.ID, memberID)

	c, w := workspaceTestContext(http.MethodGet, "/api/v1/workspaces/details/"+workspace.ID, nil, memberID)
	c.Params = gin.Params{{Key: "id", Value: workspace.ID}}

	env.handler.GetWorkspaceDetails(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.WorkspaceDetailsDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.False(t, response.IsOwner)
	require.True(t, response.IsMember)
}

func TestWorkspaceHandler_SearchWorkspaces(t *testing.T) {
	env := setupWorkspaceTestEnv(t)

	env.createTestWorkspace(t, "Night Ward", uuid.NewString())
	env.createTestWorkspace(t, "Cafeteria", uuid.NewString())

	c, w := workspaceTestContext(http.MethodGet, "/api/v1/workspaces/search?query=ward", nil, uuid.NewString())

	env.handler.SearchWorkspaces(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Workspaces []dto.WorkspaceDTO `json:"workspaces"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Workspaces, 1)
	require.Equal(t, "Night Ward", response.Workspaces[0].Name)
}

func TestWorkspaceHandler_DeleteWorkspace_NotFound(t *testing.T) {
	env := setupWorkspaceTestEnv(t)

	missing := uuid.NewString()
	c, w := workspaceTestContext(http.MethodDelete, "/api/v1/workspaces/"+missing, nil, uuid.NewString())
	c.Params = gin.Params{{Key: "id", Value: missing}}

	env.handler.DeleteWorkspace(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestWorkspaceHandler_FavoriteRoundTrip(t *testing.T) {
	env := setupWorkspaceTestEnv(t)

	workspace := env.createTestWorkspace(t, "Ward A", uuid.NewString())
	memberID := uuid.NewString()
	env.enrollMember(t, workspace.ID, memberID)

	body, err := json.Marshal(map[string]string{"workspace_id": workspace.ID})
	require.NoError(t, err)

	c, w := workspaceTestContext(http.MethodPost, "/api/v1/workspaces/favorite", body, memberID)
	env.handler.SetFavorite(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = workspaceTestContext(http.MethodGet, "/api/v1/workspaces/favorite", nil, memberID)
	env.handler.GetFavorite(c)
	require.Equal(t, http.StatusOK, w.Code)

	var favorite models.UserFavorite
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &favorite))
	require.Equal(t, workspace.ID, favorite.WorkspaceID)

	c, w = workspaceTestContext(http.MethodDelete, "/api/v1/workspaces/favorite", nil, memberID)
	env.handler.ClearFavorite(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = workspaceTestContext(http.MethodGet, "/api/v1/workspaces/favorite", nil, memberID)
	env.handler.GetFavorite(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestWorkspaceHandler_ListMembers(t *testing.T) {
	env := setupWorkspaceTestEnv(t)

	ownerID := uuid.NewString()
	workspace := env.createTestWorkspace(t, "Ward A", ownerID)
	env.enrollMember(t, workspace.ID, uuid.NewString())

	c, w := workspaceTestContext(http.MethodGet, "/api/v1/workspaces/"+workspace.ID+"/users", nil, ownerID)
	c.Params = gin.Params{{Key: "id", Value: workspace.ID}}

	env.handler.ListMembers(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Members []dto.MemberDTO `json:"members"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Members, 1)
	require.Equal(t, models.RoleMember, response.Members[0].Role)
}

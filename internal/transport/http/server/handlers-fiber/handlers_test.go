package handlers_fiber

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"project-tracker/config"
	"project-tracker/internal/auth"
	"project-tracker/internal/entities"
	"project-tracker/internal/reconcile"
	"project-tracker/internal/repository/memory"
	api "project-tracker/internal/transport/http/api"
	"project-tracker/internal/usecase"
	"project-tracker/internal/usecase/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	return newTestAppWithLog(t, zap.NewNop().Sugar())
}

func newTestAppWithLog(t *testing.T, log *zap.SugaredLogger) *fiber.App {
	t.Helper()
	repo := memory.New(log)
	authSvc := auth.NewService(log, repo, config.AuthConfig{
		JWTSecret:  "0123456789abcdef0123",
		SessionTTL: time.Hour,
	})
	_, err := authSvc.Register(context.Background(), "ada@example.com", "secret-pass")
	require.NoError(t, err)

	uc := usecase.New(log, context.Background(), repo, authSvc, domain.Options{
		Timeout:     time.Second,
		Retry:       reconcile.None(),
		DragTimeout: time.Minute,
	})
	app := fiber.New(Config(time.Second))
	RegisterHandlers(app, NewHandler(log, uc))
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	var s api.Session
	status := call(t, app, http.MethodPost, "/api/auth/login", "", api.LoginRequest{Email: "ada@example.com", Password: "secret-pass"}, &s)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, s.Token)
	return s.Token
}

func TestHealthzIsPublic(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/healthz", "", nil, nil))
}

func TestUnauthenticatedAccessRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/dashboard", "/api/projects", "/api/board", "/api/unknown"} {
		var body api.ErrorResponse
		status := call(t, app, http.MethodGet, path, "", nil, &body)
		require.Equal(t, http.StatusUnauthorized, status, path)
		require.Equal(t, "/login", body.Error.Redirect, path)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	app := newTestApp(t)

	var body api.ErrorResponse
	status := call(t, app, http.MethodPost, "/api/auth/login", "", api.LoginRequest{Email: "ada@example.com", Password: "nope-nope"}, &body)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, api.INVALIDCREDENTIALS, body.Error.Code)
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	var body api.ErrorResponse
	require.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, "/api/nowhere", token, nil, &body))
	require.Equal(t, api.NOTFOUND, body.Error.Code)

	require.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, "/nowhere", "", nil, &body))
}

func TestSessionAndLogout(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	var s api.Session
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/auth/session", token, nil, &s))
	require.Equal(t, "ada@example.com", s.Email)
	require.Empty(t, s.Token)

	require.Equal(t, http.StatusNoContent, call(t, app, http.MethodPost, "/api/auth/logout", token, nil, nil))
	require.Equal(t, http.StatusUnauthorized, call(t, app, http.MethodGet, "/api/auth/session", token, nil, nil))
}

func TestProjectBoardFlow(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	var member api.TeamMember
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/team", token,
		api.TeamMemberInput{Name: "Alice", Role: "Dev"}, &member))

	var project api.Project
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/projects", token, api.ProjectInput{
		Name:      "Website",
		StartDate: "2024-01-01",
		EndDate:   "2024-03-01",
		TeamIDs:   []string{member.ID},
	}, &project))
	require.Len(t, project.Team, 1)
	require.Equal(t, "Alice", project.Team[0].Name)

	var board api.Board
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/projects/"+project.ID+"/board", token, nil, &board))
	require.Equal(t, project.ID, *board.ProjectID)
	require.Len(t, board.Columns, 3)

	var task api.Task
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/board/tasks", token,
		api.TaskInput{Title: "Landing page", TeamIDs: []string{member.ID}}, &task))
	require.Equal(t, "todo", task.Status)
	require.Equal(t, "medium", task.Priority)
	require.Equal(t, project.ID, task.ProjectID)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/board/drag", token,
		api.DragRequest{TaskID: task.ID, From: "todo"}, &board))
	require.NotNil(t, board.Drag)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/board/columns/done/drop", token, nil, &board))
	require.Nil(t, board.Drag)
	require.Empty(t, board.Columns[0].Tasks)
	require.Len(t, board.Columns[2].Tasks, 1)

	var errBody api.ErrorResponse
	require.Equal(t, http.StatusConflict, call(t, app, http.MethodPost, "/api/board/columns/todo/drop", token, nil, &errBody))
	require.Equal(t, api.NODRAG, errBody.Error.Code)

	var workload struct {
		Members []api.MemberWorkload `json:"members"`
	}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/team/workload?project_id="+project.ID, token, nil, &workload))
	require.Len(t, workload.Members, 1)
	require.Equal(t, 1, workload.Members[0].DoneTasks)
	require.Equal(t, "Landing page", workload.Members[0].PrimaryTask)

	var notes struct {
		Notifications []api.Notification `json:"notifications"`
	}
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/notifications", token, nil, &notes))
	titles := make([]string, 0, len(notes.Notifications))
	for _, n := range notes.Notifications {
		titles = append(titles, n.Title)
	}
	require.Equal(t, []string{"Team member added", "Success", "Task added", "Task moved"}, titles)

	require.Equal(t, http.StatusNoContent, call(t, app, http.MethodDelete, "/api/projects/"+project.ID, token, nil, nil))

	require.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, "/api/projects/"+project.ID, token, nil, &errBody))
	require.Equal(t, "/projects", errBody.Error.Redirect)
}

func TestCreateProjectValidation(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	var body api.ErrorResponse
	status := call(t, app, http.MethodPost, "/api/projects", token, api.ProjectInput{
		Name:      "Website",
		StartDate: "2024-03-01",
		EndDate:   "2024-01-01",
	}, &body)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, api.INVALIDARGUMENT, body.Error.Code)

	status = call(t, app, http.MethodPost, "/api/projects", token, api.ProjectInput{Name: "Website", StartDate: "soon"}, &body)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestRejectedCreateIsLoggedAsWarning(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	app := newTestAppWithLog(t, zap.New(core).Sugar())
	token := login(t, app)

	var body api.ErrorResponse
	status := call(t, app, http.MethodPost, "/api/team", token, api.TeamMemberInput{Name: "  "}, &body)
	require.Equal(t, http.StatusBadRequest, status)

	entries := logs.FilterMessage("add team member failed").All()
	require.Len(t, entries, 1)
	require.Equal(t, zapcore.WarnLevel, entries[0].Level)
	require.Contains(t, entries[0].ContextMap(), "error")
	require.Empty(t, logs.FilterMessageSnippet(entities.ErrInvalidArgument.Error()).All())
}

func TestDeleteTaskFromUnknownColumn(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	var body api.ErrorResponse
	status := call(t, app, http.MethodDelete, "/api/board/columns/backlog/tasks/t-1", token, nil, &body)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, api.UNKNOWNCOLUMN, body.Error.Code)
}

func TestDashboardEndpoint(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	var d api.Dashboard
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/dashboard", token, nil, &d))
	require.Zero(t, d.TotalProjects)
	require.NotNil(t, d.RecentProjects)
}

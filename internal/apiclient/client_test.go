package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskzen/taskzen/internal/dto"
	"github.com/taskzen/taskzen/internal/handlers"
	"github.com/taskzen/taskzen/internal/models"
	"github.com/taskzen/taskzen/internal/repository"
	"github.com/taskzen/taskzen/internal/services"
	"github.com/taskzen/taskzen/internal/testutil"
)

type fixture struct {
	server *httptest.Server
	admin  *models.User
	bob    *models.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, repository.NewTokenRepository(db), time.Hour)
	taskService := services.NewTaskService(repository.NewTaskRepository(db), userRepo)

	admin := testutil.CreateUser(t, db, "Alice", "alice@example.com", models.RoleAdmin)
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	testutil.CreateTask(t, db, "Fix login bug", bob.ID, time.Now(), time.Now(), models.TaskStatusAssigned)

	srv := httptest.NewServer(handlers.NewRouter(authService, taskService, nil))
	t.Cleanup(srv.Close)

	return fixture{server: srv, admin: admin, bob: bob}
}

func TestNew_UsesDefaultHTTPClient(t *testing.T) {
	c := New("http://api.invalid", NewMemorySession(""))
	assert.Zero(t, c.httpClient.Timeout)
	assert.Zero(t, c.authClient.Timeout)

	custom := &http.Client{Timeout: 3 * time.Second}
	c = New("http://api.invalid", NewMemorySession(""), WithHTTPClient(custom))
	assert.Same(t, custom, c.httpClient)
	assert.Equal(t, 3*time.Second, c.authClient.Timeout)
}

func TestClient_LoginAndFetch(t *testing.T) {
	f := newFixture(t)
	session := NewMemorySession("")
	client := New(f.server.URL, session)
	ctx := context.Background()

	tok, err := client.Login(ctx, "bob@example.com", testutil.Password)
	require.NoError(t, err)
	assert.Equal(t, tok.AccessToken, session.Token())
	assert.False(t, tok.Expiry.IsZero())

	me, err := client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, f.bob.ID, me.ID)

	users, err := client.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	tasks, err := client.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Fix login bug", tasks[0].Outcome)

	got, err := client.GetTask(ctx, tasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, tasks[0].ID, got.ID)
}

func TestClient_WrongPassword(t *testing.T) {
	f := newFixture(t)
	session := NewMemorySession("")
	client := New(f.server.URL, session)

	_, err := client.Login(context.Background(), "bob@example.com", "not-the-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, session.Token())
}

func TestClient_UnauthorizedInvalidatesSession(t *testing.T) {
	f := newFixture(t)
	session := NewMemorySession("stale-token")
	client := New(f.server.URL, session)

	_, err := client.ListTasks(context.Background())

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, session.Token())
}

func TestClient_NoTokenMakesNoRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	_, err := New(srv.URL, NewMemorySession("")).Me(context.Background())

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, calls.Load())
}

func TestClient_NonSuccessIsAPIError(t *testing.T) {
	f := newFixture(t)
	client := New(f.server.URL, NewMemorySession(""))
	ctx := context.Background()

	_, err := client.Login(ctx, "bob@example.com", testutil.Password)
	require.NoError(t, err)

	_, err = client.CreateTask(ctx, dto.CreateTaskRequest{Outcome: "Nope", Responsible: f.bob.ID, Tag: f.bob.ID})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "FORBIDDEN", apiErr.Code)

	_, err = client.GetTask(ctx, "missing")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestClient_NoRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(srv.URL, NewMemorySession("token")).ListTasks(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_RegisterAndLogout(t *testing.T) {
	f := newFixture(t)
	session := NewMemorySession("")
	client := New(f.server.URL, session)
	ctx := context.Background()

	user, err := client.Register(ctx, dto.RegisterRequest{Name: "Carol", Email: "carol@example.com", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)

	_, err = client.Login(ctx, "carol@example.com", "longenough")
	require.NoError(t, err)
	revoked := session.Token()

	require.NoError(t, client.Logout(ctx))
	assert.Empty(t, session.Token())

	require.NoError(t, session.SetToken(revoked))
	_, err = client.Me(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_AdminCreatesAndUpdates(t *testing.T) {
	f := newFixture(t)
	client := New(f.server.URL, NewMemorySession(""))
	ctx := context.Background()
	_, err := client.Login(ctx, "alice@example.com", testutil.Password)
	require.NoError(t, err)

	created, err := client.CreateTask(ctx, dto.CreateTaskRequest{
		Outcome:     "Plan sprint",
		Priority:    "high",
		Responsible: f.bob.ID,
		Tag:         f.admin.ID,
		StartDate:   "2024-03-01",
		EndDate:     "2024-03-02",
	})
	require.NoError(t, err)
	assert.True(t, models.SameDay(created.EndDate, time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)))

	completed := models.TaskStatusCompleted
	updated, err := client.UpdateTask(ctx, created.ID, dto.UpdateTaskRequest{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, updated.Status)
	assert.Equal(t, models.PriorityHigh, updated.Priority)
}

func TestFileSession(t *testing.T) {
	s := NewFileSession(filepath.Join(t.TempDir(), "nested", "token.json"))

	assert.Empty(t, s.Token())
	require.NoError(t, s.SetToken("abc"))
	assert.Equal(t, "abc", s.Token())

	require.NoError(t, s.Invalidate())
	assert.Empty(t, s.Token())
	require.NoError(t, s.Invalidate())
}

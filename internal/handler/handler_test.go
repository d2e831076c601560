package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/internal/config"
	"github.com/taskboard/backend/internal/model"
	"github.com/taskboard/backend/internal/service"
)

type fakeUserStore struct {
	users map[string]*model.User
}

func (f *fakeUserStore) CreateUser(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	user := &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	if u, ok := f.users[userID]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserStore) UpdateUserProfile(ctx context.Context, userID string, name, bio *string) (*model.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if name != nil {
		u.Name = *name
	}
	if bio != nil {
		u.Bio = *bio
	}
	return u, nil
}

type fakeTaskStore struct {
	tasks map[string]*model.Task
	clock time.Time
}

func (f *fakeTaskStore) CreateTask(ctx context.Context, ownerID string, title, description, status, priority string) (*model.Task, error) {
	f.clock = f.clock.Add(time.Second)
	task := &model.Task{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		CreatedAt:   f.clock,
	}
	f.tasks[task.ID] = task
	return task, nil
}

func (f *fakeTaskStore) GetTask(ctx context.Context, ownerID, taskID string) (*model.Task, error) {
	t, ok := f.tasks[taskID]
	if !ok || t.OwnerID != ownerID {
		return nil, pgx.ErrNoRows
	}
	return t, nil
}

func (f *fakeTaskStore) ListTasks(ctx context.Context, ownerID string, filter model.TaskFilter) ([]model.Task, error) {
	out := []model.Task{}
	for _, t := range f.tasks {
		if t.OwnerID != ownerID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(t.Title), needle) &&
				!strings.Contains(strings.ToLower(t.Description), needle) {
				continue
			}
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeTaskStore) UpdateTask(ctx context.Context, ownerID, taskID string, upd model.UpdateTaskRequest) (*model.Task, error) {
	t, ok := f.tasks[taskID]
	if !ok || t.OwnerID != ownerID {
		return nil, pgx.ErrNoRows
	}
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Status != nil {
		t.Status = *upd.Status
	}
	if upd.Priority != nil {
		t.Priority = *upd.Priority
	}
	return t, nil
}

func (f *fakeTaskStore) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	t, ok := f.tasks[taskID]
	if !ok || t.OwnerID != ownerID {
		return pgx.ErrNoRows
	}
	delete(f.tasks, taskID)
	return nil
}

type testEnv struct {
	router    *gin.Engine
	userStore *fakeUserStore
	taskStore *fakeTaskStore
	authSvc   *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userStore := &fakeUserStore{users: make(map[string]*model.User)}
	taskStore := &fakeTaskStore{
		tasks: make(map[string]*model.Task),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	authSvc, err := service.NewAuthService(userStore, config.AuthConfig{JWTSecret: "test-secret", TokenTTL: "1h"})
	require.NoError(t, err)

	authHandler := NewAuthHandler(authSvc)
	profileHandler := NewProfileHandler(service.NewProfileService(userStore))
	taskHandler := NewTaskHandler(service.NewTaskService(taskStore))

	r := gin.New()
	api := r.Group("/api/v1")
	api.GET("/health", Health)
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("", AuthMiddleware(authSvc))
	authed.GET("/me", profileHandler.Me)
	authed.PUT("/me", profileHandler.UpdateMe)
	authed.POST("/tasks", taskHandler.CreateTask)
	authed.GET("/tasks", taskHandler.ListTasks)
	authed.GET("/tasks/:id", taskHandler.GetTask)
	authed.PUT("/tasks/:id", taskHandler.UpdateTask)
	authed.DELETE("/tasks/:id", taskHandler.DeleteTask)

	return &testEnv{router: r, userStore: userStore, taskStore: taskStore, authSvc: authSvc}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// signup registers an account through the API and returns the user id and
// bearer token.
func (e *testEnv) signup(t *testing.T, name, email, password string) (string, string) {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/v1/auth/signup", "", model.SignupRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res model.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.Data.Token)
	return res.Data.User.ID, res.Data.Token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

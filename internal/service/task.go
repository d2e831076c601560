package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/db"
	"github.com/taskboard/backend/internal/model"
)

const (
	maxTitleLength       = 100
	maxDescriptionLength = 500
)

// TaskStore is the task store surface the task service depends on.
// *db.Postgres satisfies it. Every method is scoped by owner id.
type TaskStore interface {
	CreateTask(ctx context.Context, ownerID string, title, description, status, priority string) (*model.Task, error)
	GetTask(ctx context.Context, ownerID, taskID string) (*model.Task, error)
	ListTasks(ctx context.Context, ownerID string, filter model.TaskFilter) ([]model.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID string, upd model.UpdateTaskRequest) (*model.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID string) error
}

type TaskService struct {
	tasks TaskStore
}

func NewTaskService(tasks TaskStore) *TaskService {
	return &TaskService{tasks: tasks}
}

// Create stores a new task for ownerID. The owner always comes from the
// authenticated caller; any owner field in the payload is ignored upstream.
func (s *TaskService) Create(ctx context.Context, ownerID string, req model.CreateTaskRequest) (*model.Task, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)

	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.StatusPending
	}
	if !model.ValidStatus(status) {
		return nil, invalidInput("invalid status")
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		return nil, invalidInput("invalid priority")
	}

	return s.tasks.CreateTask(ctx, ownerID, title, description, status, priority)
}

func (s *TaskService) List(ctx context.Context, ownerID string, filter model.TaskFilter) ([]model.Task, error) {
	if filter.Status != "" && !model.ValidStatus(filter.Status) {
		return nil, invalidInput("invalid status")
	}
	if filter.Priority != "" && !model.ValidPriority(filter.Priority) {
		return nil, invalidInput("invalid priority")
	}
	if filter.Sort != "" && !model.ValidSort(filter.Sort) {
		return nil, invalidInput("invalid sort")
	}

	return s.tasks.ListTasks(ctx, ownerID, filter)
}

func (s *TaskService) Get(ctx context.Context, ownerID, taskID string) (*model.Task, error) {
	if !validTaskID(taskID) {
		return nil, ErrNotFound
	}

	task, err := s.tasks.GetTask(ctx, ownerID, taskID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

// Update applies only the fields present in upd. Owner and id are never
// mutable. A task owned by someone else is indistinguishable from a
// missing one.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, upd model.UpdateTaskRequest) (*model.Task, error) {
	if !validTaskID(taskID) {
		return nil, ErrNotFound
	}

	if upd.Title != nil {
		trimmed := strings.TrimSpace(*upd.Title)
		if err := validateTitle(trimmed); err != nil {
			return nil, err
		}
		upd.Title = &trimmed
	}
	if upd.Description != nil {
		trimmed := strings.TrimSpace(*upd.Description)
		if err := validateDescription(trimmed); err != nil {
			return nil, err
		}
		upd.Description = &trimmed
	}
	if upd.Status != nil && !model.ValidStatus(*upd.Status) {
		return nil, invalidInput("invalid status")
	}
	if upd.Priority != nil && !model.ValidPriority(*upd.Priority) {
		return nil, invalidInput("invalid priority")
	}

	task, err := s.tasks.UpdateTask(ctx, ownerID, taskID, upd)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	if !validTaskID(taskID) {
		return ErrNotFound
	}

	if err := s.tasks.DeleteTask(ctx, ownerID, taskID); err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// validTaskID rejects ids that cannot be task ids before they reach the
// store, so a malformed id behaves like a missing task instead of a
// store error.
func validTaskID(taskID string) bool {
	_, err := uuid.Parse(taskID)
	return err == nil
}

func validateTitle(title string) error {
	if title == "" {
		return invalidInput("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return invalidInput("title cannot exceed 100 characters")
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return invalidInput("description cannot exceed 500 characters")
	}
	return nil
}

package model

import "time"

const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const (
	SortNewest = "newest"
	SortOldest = "oldest"
	// SortPriority ranks high > medium > low; equal priorities order
	// newest-first.
	SortPriority = "priority"
)

type Task struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
}

// UpdateTaskRequest carries a partial update. Nil fields are left
// untouched. Owner and id are not part of the payload and can never be
// overridden by a client.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
}

// TaskFilter narrows and orders a task listing. The owner scope is not
// part of the filter; it always comes from the authenticated caller.
type TaskFilter struct {
	Search   string
	Status   string
	Priority string
	Sort     string
}

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

func ValidSort(s string) bool {
	return s == SortNewest || s == SortOldest || s == SortPriority
}

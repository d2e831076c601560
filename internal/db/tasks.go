package db

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/taskboard/backend/internal/model"
)

const taskColumns = "id, owner_id, title, description, status, priority, created_at"

func (db *Postgres) CreateTask(ctx context.Context, ownerID string, title, description, status, priority string) (*model.Task, error) {
	query := `
		INSERT INTO tasks (id, owner_id, title, description, status, priority, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING ` + taskColumns
	return db.scanTask(db.Pool.QueryRow(ctx, query, uuid.NewString(), ownerID, title, description, status, priority))
}

func (db *Postgres) GetTask(ctx context.Context, ownerID, taskID string) (*model.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1 AND owner_id = $2
	`
	return db.scanTask(db.Pool.QueryRow(ctx, query, taskID, ownerID))
}

func (db *Postgres) ListTasks(ctx context.Context, ownerID string, filter model.TaskFilter) ([]model.Task, error) {
	query, args := buildListTasksQuery(ownerID, filter)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (db *Postgres) UpdateTask(ctx context.Context, ownerID, taskID string, upd model.UpdateTaskRequest) (*model.Task, error) {
	query := `
		UPDATE tasks
		SET title = COALESCE($3, title),
		    description = COALESCE($4, description),
		    status = COALESCE($5, status),
		    priority = COALESCE($6, priority)
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + taskColumns
	return db.scanTask(db.Pool.QueryRow(ctx, query, taskID, ownerID, upd.Title, upd.Description, upd.Status, upd.Priority))
}

func (db *Postgres) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	query := `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`
	tag, err := db.Pool.Exec(ctx, query, taskID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (db *Postgres) scanTask(row pgx.Row) (*model.Task, error) {
	var t model.Task
	err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// buildListTasksQuery constructs the owner-scoped listing query. The owner
// predicate is always present; cross-owner listing is impossible by
// construction.
func buildListTasksQuery(ownerID string, filter model.TaskFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT " + taskColumns + " FROM tasks WHERE owner_id = $1")
	args := []any{ownerID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		sb.WriteString(" AND status = $" + strconv.Itoa(len(args)))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		sb.WriteString(" AND priority = $" + strconv.Itoa(len(args)))
	}
	if filter.Search != "" {
		args = append(args, likePattern(filter.Search))
		n := strconv.Itoa(len(args))
		sb.WriteString(" AND (title ILIKE $" + n + " OR description ILIKE $" + n + ")")
	}

	switch filter.Sort {
	case model.SortOldest:
		sb.WriteString(" ORDER BY created_at ASC")
	case model.SortPriority:
		sb.WriteString(" ORDER BY CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END DESC, created_at DESC")
	default:
		sb.WriteString(" ORDER BY created_at DESC")
	}

	return sb.String(), args
}

// likePattern wraps a search term for substring matching, escaping LIKE
// metacharacters so the term matches literally.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

package postgres

import (
	"context"
	"database/sql"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// TaskPostgres is a PostgreSQL implementation of repository.TaskRepository.
type TaskPostgres struct {
	db *sql.DB
}

// NewTaskPostgres creates a new TaskPostgres repository.
func NewTaskPostgres(db *sql.DB) *TaskPostgres {
	return &TaskPostgres{db: db}
}

var _ repository.TaskRepository = (*TaskPostgres)(nil)

func scanTask(row interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.DueDate, &t.WorkerID, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new task row and returns the stored record.
func (r *TaskPostgres) Create(ctx context.Context, t *model.Task) (*model.Task, error) {
	const q = `
		INSERT INTO tasks (title, description, status, due_date, worker_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, description, status, due_date, worker_id, created_at
	`
	return scanTask(r.db.QueryRowContext(ctx, q, t.Title, t.Description, t.Status, t.DueDate, t.WorkerID, t.CreatedAt))
}

// FindByID fetches a single task by its ID.
func (r *TaskPostgres) FindByID(ctx context.Context, id int64) (*model.Task, error) {
	const q = `
		SELECT id, title, description, status, due_date, worker_id, created_at
		FROM tasks
		WHERE id = $1
	`
	return scanTask(r.db.QueryRowContext(ctx, q, id))
}

// List returns tasks using LIMIT/OFFSET pagination and a total count.
func (r *TaskPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Task], error) {
	const qCount = `SELECT COUNT(*) FROM tasks`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, title, description, status, due_date, worker_id, created_at
		FROM tasks
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Task]{Items: items, Total: total}, nil
}

// Update overwrites the task row, including status, due date and
// assignee.
func (r *TaskPostgres) Update(ctx context.Context, t *model.Task) (*model.Task, error) {
	const q = `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, due_date = $5, worker_id = $6
		WHERE id = $1
		RETURNING id, title, description, status, due_date, worker_id, created_at
	`
	return scanTask(r.db.QueryRowContext(ctx, q, t.ID, t.Title, t.Description, t.Status, t.DueDate, t.WorkerID))
}

// Delete removes a task by ID. Missing rows are not an error.
func (r *TaskPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM tasks WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// ListByWorker returns all tasks assigned to the given worker.
func (r *TaskPostgres) ListByWorker(ctx context.Context, workerID int64) ([]model.Task, error) {
	const q = `
		SELECT id, title, description, status, due_date, worker_id, created_at
		FROM tasks
		WHERE worker_id = $1
		ORDER BY id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

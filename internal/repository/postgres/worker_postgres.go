package postgres

import (
	"context"
	"database/sql"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// WorkerPostgres is a PostgreSQL implementation of repository.WorkerRepository.
type WorkerPostgres struct {
	db *sql.DB
}

// NewWorkerPostgres creates a new WorkerPostgres repository.
func NewWorkerPostgres(db *sql.DB) *WorkerPostgres {
	return &WorkerPostgres{db: db}
}

var _ repository.WorkerRepository = (*WorkerPostgres)(nil)

func scanWorker(row interface{ Scan(...any) error }) (*model.Worker, error) {
	var w model.Worker
	if err := row.Scan(&w.ID, &w.Name, &w.Email, &w.CampaignID, &w.CreatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

// Create inserts a new worker row and returns the stored record.
func (r *WorkerPostgres) Create(ctx context.Context, w *model.Worker) (*model.Worker, error) {
	const q = `
		INSERT INTO workers (name, email, campaign_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, campaign_id, created_at
	`
	return scanWorker(r.db.QueryRowContext(ctx, q, w.Name, w.Email, w.CampaignID, w.CreatedAt))
}

// FindByID fetches a single worker by its ID.
func (r *WorkerPostgres) FindByID(ctx context.Context, id int64) (*model.Worker, error) {
	const q = `
		SELECT id, name, email, campaign_id, created_at
		FROM workers
		WHERE id = $1
	`
	return scanWorker(r.db.QueryRowContext(ctx, q, id))
}

// List returns workers using LIMIT/OFFSET pagination and a total count.
func (r *WorkerPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Worker], error) {
	const qCount = `SELECT COUNT(*) FROM workers`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, name, email, campaign_id, created_at
		FROM workers
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Worker, 0)
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Worker]{Items: items, Total: total}, nil
}

// Update overwrites the worker row, including its campaign assignment.
func (r *WorkerPostgres) Update(ctx context.Context, w *model.Worker) (*model.Worker, error) {
	const q = `
		UPDATE workers
		SET name = $2, email = $3, campaign_id = $4
		WHERE id = $1
		RETURNING id, name, email, campaign_id, created_at
	`
	return scanWorker(r.db.QueryRowContext(ctx, q, w.ID, w.Name, w.Email, w.CampaignID))
}

// Delete removes a worker by ID. Missing rows are not an error.
func (r *WorkerPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM workers WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// ListByCampaign returns the workers assigned to the campaign.
func (r *WorkerPostgres) ListByCampaign(ctx context.Context, campaignID int64) ([]model.Worker, error) {
	const q = `
		SELECT id, name, email, campaign_id, created_at
		FROM workers
		WHERE campaign_id = $1
		ORDER BY id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Worker, 0)
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

package postgres

import (
	"context"
	"database/sql"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// CampaignPostgres is a PostgreSQL implementation of repository.CampaignRepository.
type CampaignPostgres struct {
	db *sql.DB
}

// NewCampaignPostgres creates a new CampaignPostgres repository.
func NewCampaignPostgres(db *sql.DB) *CampaignPostgres {
	return &CampaignPostgres{db: db}
}

var _ repository.CampaignRepository = (*CampaignPostgres)(nil)

func scanCampaign(row interface{ Scan(...any) error }) (*model.Campaign, error) {
	var c model.Campaign
	if err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Status, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new campaign row and returns the stored record.
func (r *CampaignPostgres) Create(ctx context.Context, c *model.Campaign) (*model.Campaign, error) {
	const q = `
		INSERT INTO campaigns (code, name, status, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, code, name, status, created_at
	`
	return scanCampaign(r.db.QueryRowContext(ctx, q, c.Code, c.Name, c.Status, c.CreatedAt))
}

// FindByID fetches a single campaign by its ID.
func (r *CampaignPostgres) FindByID(ctx context.Context, id int64) (*model.Campaign, error) {
	const q = `
		SELECT id, code, name, status, created_at
		FROM campaigns
		WHERE id = $1
	`
	return scanCampaign(r.db.QueryRowContext(ctx, q, id))
}

// List returns campaigns using LIMIT/OFFSET pagination and a total count.
func (r *CampaignPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Campaign], error) {
	const qCount = `SELECT COUNT(*) FROM campaigns`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, code, name, status, created_at
		FROM campaigns
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Campaign, 0)
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Campaign]{Items: items, Total: total}, nil
}

// Update overwrites the campaign row.
func (r *CampaignPostgres) Update(ctx context.Context, c *model.Campaign) (*model.Campaign, error) {
	const q = `
		UPDATE campaigns
		SET code = $2, name = $3, status = $4
		WHERE id = $1
		RETURNING id, code, name, status, created_at
	`
	return scanCampaign(r.db.QueryRowContext(ctx, q, c.ID, c.Code, c.Name, c.Status))
}

// Delete removes a campaign by ID. Missing rows are not an error.
func (r *CampaignPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM campaigns WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// CountByStatus returns campaign counts grouped by status.
func (r *CampaignPostgres) CountByStatus(ctx context.Context) (map[string]int, error) {
	const q = `SELECT status, COUNT(*) FROM campaigns GROUP BY status`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

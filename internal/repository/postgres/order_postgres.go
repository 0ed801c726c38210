package postgres

import (
	"context"
	"database/sql"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// OrderPostgres is a PostgreSQL implementation of repository.OrderRepository.
type OrderPostgres struct {
	db *sql.DB
}

// NewOrderPostgres creates a new OrderPostgres repository.
func NewOrderPostgres(db *sql.DB) *OrderPostgres {
	return &OrderPostgres{db: db}
}

var _ repository.OrderRepository = (*OrderPostgres)(nil)

func scanOrder(row interface{ Scan(...any) error }) (*model.Order, error) {
	var o model.Order
	if err := row.Scan(&o.ID, &o.CustomerID, &o.AmountCents, &o.Status, &o.CreatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts a new order row and returns the stored record.
func (r *OrderPostgres) Create(ctx context.Context, o *model.Order) (*model.Order, error) {
	const q = `
		INSERT INTO orders (customer_id, amount_cents, status, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, customer_id, amount_cents, status, created_at
	`
	return scanOrder(r.db.QueryRowContext(ctx, q, o.CustomerID, o.AmountCents, o.Status, o.CreatedAt))
}

// FindByID fetches a single order by its ID.
func (r *OrderPostgres) FindByID(ctx context.Context, id int64) (*model.Order, error) {
	const q = `
		SELECT id, customer_id, amount_cents, status, created_at
		FROM orders
		WHERE id = $1
	`
	return scanOrder(r.db.QueryRowContext(ctx, q, id))
}

// List returns orders using LIMIT/OFFSET pagination and a total count.
func (r *OrderPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Order], error) {
	const qCount = `SELECT COUNT(*) FROM orders`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, customer_id, amount_cents, status, created_at
		FROM orders
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Order]{Items: items, Total: total}, nil
}

// Update overwrites the order row.
func (r *OrderPostgres) Update(ctx context.Context, o *model.Order) (*model.Order, error) {
	const q = `
		UPDATE orders
		SET customer_id = $2, amount_cents = $3, status = $4
		WHERE id = $1
		RETURNING id, customer_id, amount_cents, status, created_at
	`
	return scanOrder(r.db.QueryRowContext(ctx, q, o.ID, o.CustomerID, o.AmountCents, o.Status))
}

// Delete removes an order by ID. Missing rows are not an error.
func (r *OrderPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM orders WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// ListByCustomer returns the customer's orders, newest first.
func (r *OrderPostgres) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	const q = `
		SELECT id, customer_id, amount_cents, status, created_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

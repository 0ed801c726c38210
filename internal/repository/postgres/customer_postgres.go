package postgres

import (
	"context"
	"database/sql"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// CustomerPostgres is a PostgreSQL implementation of repository.CustomerRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type CustomerPostgres struct {
	db *sql.DB
}

// NewCustomerPostgres creates a new CustomerPostgres repository.
func NewCustomerPostgres(db *sql.DB) *CustomerPostgres {
	return &CustomerPostgres{db: db}
}

var _ repository.CustomerRepository = (*CustomerPostgres)(nil)

func scanCustomer(row interface{ Scan(...any) error }) (*model.Customer, error) {
	var c model.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new customer row and returns the stored record with
// its assigned id.
func (r *CustomerPostgres) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	const q = `
		INSERT INTO customers (name, email, phone, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, phone, created_at
	`
	return scanCustomer(r.db.QueryRowContext(ctx, q, c.Name, c.Email, c.Phone, c.CreatedAt))
}

// FindByID fetches a single customer by its ID.
func (r *CustomerPostgres) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	const q = `
		SELECT id, name, email, phone, created_at
		FROM customers
		WHERE id = $1
	`
	return scanCustomer(r.db.QueryRowContext(ctx, q, id))
}

// List returns customers using LIMIT/OFFSET pagination and a total count.
func (r *CustomerPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Customer], error) {
	const qCount = `SELECT COUNT(*) FROM customers`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, name, email, phone, created_at
		FROM customers
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Customer]{Items: items, Total: total}, nil
}

// Update overwrites the customer row. Scanning the RETURNING clause
// surfaces sql.ErrNoRows when the row does not exist.
func (r *CustomerPostgres) Update(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	const q = `
		UPDATE customers
		SET name = $2, email = $3, phone = $4
		WHERE id = $1
		RETURNING id, name, email, phone, created_at
	`
	return scanCustomer(r.db.QueryRowContext(ctx, q, c.ID, c.Name, c.Email, c.Phone))
}

// Delete removes a customer by ID. It does not return an error if the
// row does not exist.
func (r *CustomerPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM customers WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

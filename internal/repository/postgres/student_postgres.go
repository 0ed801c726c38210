package postgres

import (
	"context"
	"database/sql"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// StudentPostgres is a PostgreSQL implementation of repository.StudentRepository.
type StudentPostgres struct {
	db *sql.DB
}

// NewStudentPostgres creates a new StudentPostgres repository.
func NewStudentPostgres(db *sql.DB) *StudentPostgres {
	return &StudentPostgres{db: db}
}

var _ repository.StudentRepository = (*StudentPostgres)(nil)

func scanStudent(row interface{ Scan(...any) error }) (*model.Student, error) {
	var s model.Student
	if err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Age, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new student row and returns the stored record.
func (r *StudentPostgres) Create(ctx context.Context, s *model.Student) (*model.Student, error) {
	const q = `
		INSERT INTO students (name, email, age, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, age, created_at
	`
	return scanStudent(r.db.QueryRowContext(ctx, q, s.Name, s.Email, s.Age, s.CreatedAt))
}

// FindByID fetches a single student by its ID.
func (r *StudentPostgres) FindByID(ctx context.Context, id int64) (*model.Student, error) {
	const q = `
		SELECT id, name, email, age, created_at
		FROM students
		WHERE id = $1
	`
	return scanStudent(r.db.QueryRowContext(ctx, q, id))
}

// List returns students using LIMIT/OFFSET pagination and a total count.
func (r *StudentPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Student], error) {
	const qCount = `SELECT COUNT(*) FROM students`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, name, email, age, created_at
		FROM students
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Student]{Items: items, Total: total}, nil
}

// Update overwrites the student row.
func (r *StudentPostgres) Update(ctx context.Context, s *model.Student) (*model.Student, error) {
	const q = `
		UPDATE students
		SET name = $2, email = $3, age = $4
		WHERE id = $1
		RETURNING id, name, email, age, created_at
	`
	return scanStudent(r.db.QueryRowContext(ctx, q, s.ID, s.Name, s.Email, s.Age))
}

// Delete removes a student by ID. Missing rows are not an error.
func (r *StudentPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM students WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

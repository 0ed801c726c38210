package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"crmapi/internal/model"
	"crmapi/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func customerRows(c *model.Customer) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "phone", "created_at"}).
		AddRow(c.ID, c.Name, c.Email, c.Phone, c.CreatedAt)
}

func TestCustomerPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCustomerPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	in := &model.Customer{Name: "Alice", Email: "alice@example.com", Phone: "555-0100", CreatedAt: now}
	stored := *in
	stored.ID = 1

	mock.ExpectQuery("INSERT INTO customers").
		WithArgs(in.Name, in.Email, in.Phone, in.CreatedAt).
		WillReturnRows(customerRows(&stored))

	result, err := repo.Create(ctx, in)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, int64(1), result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCustomerPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		c := &model.Customer{ID: 7, Name: "Alice", Email: "alice@example.com", CreatedAt: time.Now().UTC()}
		mock.ExpectQuery("SELECT (.+) FROM customers").
			WithArgs(int64(7)).
			WillReturnRows(customerRows(c))

		result, err := repo.FindByID(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, "Alice", result.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM customers").
			WithArgs(int64(404)).
			WillReturnError(sql.ErrNoRows)

		result, err := repo.FindByID(ctx, 404)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, result)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCustomerPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM customers").
		WithArgs(2, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "created_at"}).
			AddRow(int64(12), "Bob", "bob@example.com", "", now).
			AddRow(int64(11), "Alice", "alice@example.com", "", now))

	result, err := repo.List(ctx, repository.PageQuery{Limit: 2, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 12, result.Total)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(12), result.Items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCustomerPostgres(db)
	ctx := context.Background()

	t.Run("updated", func(t *testing.T) {
		c := &model.Customer{ID: 3, Name: "Alice B", Email: "alice@example.com", Phone: "555-0101"}
		stored := *c
		stored.CreatedAt = time.Now().UTC()

		mock.ExpectQuery("UPDATE customers").
			WithArgs(c.ID, c.Name, c.Email, c.Phone).
			WillReturnRows(customerRows(&stored))

		result, err := repo.Update(ctx, c)
		assert.NoError(t, err)
		assert.Equal(t, "Alice B", result.Name)
	})

	t.Run("missing row surfaces sql.ErrNoRows", func(t *testing.T) {
		mock.ExpectQuery("UPDATE customers").
			WithArgs(int64(404), "x", "x@example.com", "").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Update(ctx, &model.Customer{ID: 404, Name: "x", Email: "x@example.com"})
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCustomerPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM customers").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(ctx, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

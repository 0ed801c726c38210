package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// CustomerService defines the use cases for managing customers.
type CustomerService interface {
	Create(ctx context.Context, c *model.Customer) (*model.Customer, error)
	Get(ctx context.Context, id int64) (*model.Customer, error)
	List(ctx context.Context, limit, offset int) (*ListResult[model.Customer], error)
	Update(ctx context.Context, c *model.Customer) (*model.Customer, error)
	Delete(ctx context.Context, id int64) error
}

type customerService struct {
	repo   repository.CustomerRepository
	orders repository.OrderRepository
}

// NewCustomerService constructs a new CustomerService.
func NewCustomerService(repo repository.CustomerRepository, orders repository.OrderRepository) CustomerService {
	return &customerService{repo: repo, orders: orders}
}

// Create stores a new customer. The repository assigns the id.
func (s *customerService) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	c.ID = 0
	c.CreatedAt = time.Now().UTC()
	return s.repo.Create(ctx, c)
}

// Get returns a customer by id.
func (s *customerService) Get(ctx context.Context, id int64) (*model.Customer, error) {
	if id == 0 {
		return nil, ErrIDRequired
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// List returns paginated customers without exposing repository types.
func (s *customerService) List(ctx context.Context, limit, offset int) (*ListResult[model.Customer], error) {
	limit, offset = normalizePage(limit, offset)
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Customer]{Items: res.Items, Total: res.Total}, nil
}

// Update overwrites a customer's mutable fields. The creation timestamp
// is preserved.
func (s *customerService) Update(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	if c.ID == 0 {
		return nil, ErrIDRequired
	}
	existing, err := s.repo.FindByID(ctx, c.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c.CreatedAt = existing.CreatedAt

	out, err := s.repo.Update(ctx, c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

// Delete removes a customer together with its orders. The order
// cleanup keeps both storage drivers in step with the cascading
// foreign key on the orders table.
func (s *customerService) Delete(ctx context.Context, id int64) error {
	if id == 0 {
		return ErrIDRequired
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	owned, err := s.orders.ListByCustomer(ctx, id)
	if err != nil {
		return err
	}
	for i := range owned {
		if err := s.orders.Delete(ctx, owned[i].ID); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
	}
	return s.repo.Delete(ctx, id)
}

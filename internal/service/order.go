package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// OrderService defines the use cases for managing orders.
type OrderService interface {
	Create(ctx context.Context, o *model.Order) (*model.Order, error)
	Get(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, limit, offset int) (*ListResult[model.Order], error)
	Update(ctx context.Context, o *model.Order) (*model.Order, error)
	Delete(ctx context.Context, id int64) error

	// ListByCustomer returns all orders of an existing customer, newest
	// first. A missing customer yields ErrNotFound.
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
}

type orderService struct {
	repo      repository.OrderRepository
	customers repository.CustomerRepository
}

// NewOrderService constructs a new OrderService.
func NewOrderService(repo repository.OrderRepository, customers repository.CustomerRepository) OrderService {
	return &orderService{repo: repo, customers: customers}
}

// Create stores a new order. The customer must exist; an empty status
// defaults to PENDING.
func (s *orderService) Create(ctx context.Context, o *model.Order) (*model.Order, error) {
	if o.Status == "" {
		o.Status = model.OrderStatusPending
	}
	if !model.ValidOrderStatus(o.Status) {
		return nil, ErrInvalidStatus
	}
	if _, err := s.customers.FindByID(ctx, o.CustomerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidReference
		}
		return nil, err
	}

	o.ID = 0
	o.CreatedAt = time.Now().UTC()
	return s.repo.Create(ctx, o)
}

// Get returns an order by id.
func (s *orderService) Get(ctx context.Context, id int64) (*model.Order, error) {
	if id == 0 {
		return nil, ErrIDRequired
	}
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

// List returns paginated orders.
func (s *orderService) List(ctx context.Context, limit, offset int) (*ListResult[model.Order], error) {
	limit, offset = normalizePage(limit, offset)
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Order]{Items: res.Items, Total: res.Total}, nil
}

// Update overwrites an order. Status and customer reference are
// re-validated.
func (s *orderService) Update(ctx context.Context, o *model.Order) (*model.Order, error) {
	if o.ID == 0 {
		return nil, ErrIDRequired
	}
	if !model.ValidOrderStatus(o.Status) {
		return nil, ErrInvalidStatus
	}
	existing, err := s.repo.FindByID(ctx, o.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.customers.FindByID(ctx, o.CustomerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidReference
		}
		return nil, err
	}
	o.CreatedAt = existing.CreatedAt

	out, err := s.repo.Update(ctx, o)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

// Delete removes an order.
func (s *orderService) Delete(ctx context.Context, id int64) error {
	if id == 0 {
		return ErrIDRequired
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListByCustomer returns the customer's orders.
func (s *orderService) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	if customerID == 0 {
		return nil, ErrIDRequired
	}
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.repo.ListByCustomer(ctx, customerID)
}

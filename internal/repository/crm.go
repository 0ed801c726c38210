package repository

import (
	"context"

	"crmapi/internal/model"
)

// CustomerRepository defines data access for customers.
type CustomerRepository interface {
	// Create inserts a new customer record. The backend assigns the ID
	// and returns the stored row.
	Create(ctx context.Context, c *model.Customer) (*model.Customer, error)

	// FindByID returns a customer by its ID.
	FindByID(ctx context.Context, id int64) (*model.Customer, error)

	// List returns a paginated list of customers and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Customer], error)

	// Update overwrites the row identified by c.ID and returns the
	// stored record.
	Update(ctx context.Context, c *model.Customer) (*model.Customer, error)

	// Delete removes a customer by ID. It returns nil if the row was
	// deleted or did not exist.
	Delete(ctx context.Context, id int64) error
}

// OrderRepository defines data access for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) (*model.Order, error)
	FindByID(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Order], error)
	Update(ctx context.Context, o *model.Order) (*model.Order, error)
	Delete(ctx context.Context, id int64) error

	// ListByCustomer returns all orders placed by the given customer,
	// newest first.
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
}

// CampaignRepository defines data access for campaigns.
type CampaignRepository interface {
	Create(ctx context.Context, c *model.Campaign) (*model.Campaign, error)
	FindByID(ctx context.Context, id int64) (*model.Campaign, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Campaign], error)
	Update(ctx context.Context, c *model.Campaign) (*model.Campaign, error)
	Delete(ctx context.Context, id int64) error

	// CountByStatus returns campaign counts keyed by status value.
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// WorkerRepository defines data access for workers.
type WorkerRepository interface {
	Create(ctx context.Context, w *model.Worker) (*model.Worker, error)
	FindByID(ctx context.Context, id int64) (*model.Worker, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Worker], error)
	Update(ctx context.Context, w *model.Worker) (*model.Worker, error)
	Delete(ctx context.Context, id int64) error

	// ListByCampaign returns all workers assigned to the given campaign.
	ListByCampaign(ctx context.Context, campaignID int64) ([]model.Worker, error)
}

// TaskRepository defines data access for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *model.Task) (*model.Task, error)
	FindByID(ctx context.Context, id int64) (*model.Task, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Task], error)
	Update(ctx context.Context, t *model.Task) (*model.Task, error)
	Delete(ctx context.Context, id int64) error

	// ListByWorker returns all tasks assigned to the given worker.
	ListByWorker(ctx context.Context, workerID int64) ([]model.Task, error)
}

// StudentRepository defines data access for students.
type StudentRepository interface {
	Create(ctx context.Context, s *model.Student) (*model.Student, error)
	FindByID(ctx context.Context, id int64) (*model.Student, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Student], error)
	Update(ctx context.Context, s *model.Student) (*model.Student, error)
	Delete(ctx context.Context, id int64) error
}

// AttachmentRepository defines data access for task attachments.
// Attachments are keyed by UUID strings rather than serial ids.
type AttachmentRepository interface {
	Create(ctx context.Context, a *model.Attachment) (*model.Attachment, error)
	FindByID(ctx context.Context, id string) (*model.Attachment, error)

	// ListByTask returns all attachments linked to the given task,
	// newest first.
	ListByTask(ctx context.Context, taskID int64) ([]model.Attachment, error)

	// Delete removes an attachment by ID. It returns nil if the row was
	// deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

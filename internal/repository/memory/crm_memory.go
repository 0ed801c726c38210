package memory

import (
	"context"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// CustomerMemory is the in-memory repository.CustomerRepository.
type CustomerMemory struct {
	*Store[model.Customer]
}

// NewCustomerMemory creates an empty customer store.
func NewCustomerMemory() *CustomerMemory {
	return &CustomerMemory{NewStore(func(c *model.Customer) *int64 { return &c.ID })}
}

var _ repository.CustomerRepository = (*CustomerMemory)(nil)

// OrderMemory is the in-memory repository.OrderRepository.
type OrderMemory struct {
	*Store[model.Order]
}

// NewOrderMemory creates an empty order store.
func NewOrderMemory() *OrderMemory {
	return &OrderMemory{NewStore(func(o *model.Order) *int64 { return &o.ID })}
}

var _ repository.OrderRepository = (*OrderMemory)(nil)

// ListByCustomer returns the customer's orders, newest first.
func (r *OrderMemory) ListByCustomer(_ context.Context, customerID int64) ([]model.Order, error) {
	return r.where(func(o *model.Order) bool { return o.CustomerID == customerID }), nil
}

// CampaignMemory is the in-memory repository.CampaignRepository.
type CampaignMemory struct {
	*Store[model.Campaign]
}

// NewCampaignMemory creates an empty campaign store.
func NewCampaignMemory() *CampaignMemory {
	return &CampaignMemory{NewStore(func(c *model.Campaign) *int64 { return &c.ID })}
}

var _ repository.CampaignRepository = (*CampaignMemory)(nil)

// CountByStatus returns campaign counts keyed by status.
func (r *CampaignMemory) CountByStatus(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, c := range r.where(func(*model.Campaign) bool { return true }) {
		counts[c.Status]++
	}
	return counts, nil
}

// WorkerMemory is the in-memory repository.WorkerRepository.
type WorkerMemory struct {
	*Store[model.Worker]
}

// NewWorkerMemory creates an empty worker store.
func NewWorkerMemory() *WorkerMemory {
	return &WorkerMemory{NewStore(func(w *model.Worker) *int64 { return &w.ID })}
}

var _ repository.WorkerRepository = (*WorkerMemory)(nil)

// ListByCampaign returns the workers assigned to the campaign.
func (r *WorkerMemory) ListByCampaign(_ context.Context, campaignID int64) ([]model.Worker, error) {
	return r.where(func(w *model.Worker) bool {
		return w.CampaignID != nil && *w.CampaignID == campaignID
	}), nil
}

// TaskMemory is the in-memory repository.TaskRepository.
type TaskMemory struct {
	*Store[model.Task]
}

// NewTaskMemory creates an empty task store.
func NewTaskMemory() *TaskMemory {
	return &TaskMemory{NewStore(func(t *model.Task) *int64 { return &t.ID })}
}

var _ repository.TaskRepository = (*TaskMemory)(nil)

// ListByWorker returns the tasks assigned to the worker.
func (r *TaskMemory) ListByWorker(_ context.Context, workerID int64) ([]model.Task, error) {
	return r.where(func(t *model.Task) bool {
		return t.WorkerID != nil && *t.WorkerID == workerID
	}), nil
}

// StudentMemory is the in-memory repository.StudentRepository.
type StudentMemory struct {
	*Store[model.Student]
}

// NewStudentMemory creates an empty student store.
func NewStudentMemory() *StudentMemory {
	return &StudentMemory{NewStore(func(s *model.Student) *int64 { return &s.ID })}
}

var _ repository.StudentRepository = (*StudentMemory)(nil)

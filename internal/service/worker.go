package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// WorkerService defines the use cases for managing workers.
type WorkerService interface {
	Create(ctx context.Context, w *model.Worker) (*model.Worker, error)
	Get(ctx context.Context, id int64) (*model.Worker, error)
	List(ctx context.Context, limit, offset int) (*ListResult[model.Worker], error)
	Update(ctx context.Context, w *model.Worker) (*model.Worker, error)
	Delete(ctx context.Context, id int64) error
}

type workerService struct {
	repo      repository.WorkerRepository
	campaigns repository.CampaignRepository
	tasks     repository.TaskRepository
}

// NewWorkerService constructs a new WorkerService.
func NewWorkerService(repo repository.WorkerRepository, campaigns repository.CampaignRepository, tasks repository.TaskRepository) WorkerService {
	return &workerService{repo: repo, campaigns: campaigns, tasks: tasks}
}

// Create stores a new worker. A campaign reference, when present, must
// point at an existing campaign.
func (s *workerService) Create(ctx context.Context, w *model.Worker) (*model.Worker, error) {
	if w.CampaignID != nil {
		if _, err := s.campaigns.FindByID(ctx, *w.CampaignID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrInvalidReference
			}
			return nil, err
		}
	}

	w.ID = 0
	w.CreatedAt = time.Now().UTC()
	return s.repo.Create(ctx, w)
}

// Get returns a worker by id.
func (s *workerService) Get(ctx context.Context, id int64) (*model.Worker, error) {
	if id == 0 {
		return nil, ErrIDRequired
	}
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

// List returns paginated workers.
func (s *workerService) List(ctx context.Context, limit, offset int) (*ListResult[model.Worker], error) {
	limit, offset = normalizePage(limit, offset)
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Worker]{Items: res.Items, Total: res.Total}, nil
}

// Update overwrites a worker, re-validating the campaign reference.
func (s *workerService) Update(ctx context.Context, w *model.Worker) (*model.Worker, error) {
	if w.ID == 0 {
		return nil, ErrIDRequired
	}
	existing, err := s.repo.FindByID(ctx, w.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if w.CampaignID != nil {
		if _, err := s.campaigns.FindByID(ctx, *w.CampaignID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrInvalidReference
			}
			return nil, err
		}
	}
	w.CreatedAt = existing.CreatedAt

	out, err := s.repo.Update(ctx, w)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

// Delete removes a worker after clearing it as the assignee of any
// tasks, so both storage drivers match the SET NULL foreign key on
// the tasks table.
func (s *workerService) Delete(ctx context.Context, id int64) error {
	if id == 0 {
		return ErrIDRequired
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	assigned, err := s.tasks.ListByWorker(ctx, id)
	if err != nil {
		return err
	}
	for i := range assigned {
		t := assigned[i]
		t.WorkerID = nil
		if _, err := s.tasks.Update(ctx, &t); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
	}
	return s.repo.Delete(ctx, id)
}

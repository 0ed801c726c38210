package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"crmapi/internal/model"
	"crmapi/internal/repository"
	"crmapi/internal/storage"
)

// TaskService defines the use cases for managing tasks.
type TaskService interface {
	Create(ctx context.Context, t *model.Task) (*model.Task, error)
	Get(ctx context.Context, id int64) (*model.Task, error)
	List(ctx context.Context, limit, offset int) (*ListResult[model.Task], error)
	Update(ctx context.Context, t *model.Task) (*model.Task, error)

	// Delete removes a task together with its attachments, objects
	// included.
	Delete(ctx context.Context, id int64) error

	// Complete marks the task DONE.
	Complete(ctx context.Context, id int64) (*model.Task, error)
}

type taskService struct {
	repo        repository.TaskRepository
	workers     repository.WorkerRepository
	attachments repository.AttachmentRepository
	store       storage.Storage
}

// NewTaskService constructs a new TaskService. The attachment
// repository and storage are used to cascade deletes.
func NewTaskService(
	repo repository.TaskRepository,
	workers repository.WorkerRepository,
	attachments repository.AttachmentRepository,
	store storage.Storage,
) TaskService {
	return &taskService{repo: repo, workers: workers, attachments: attachments, store: store}
}

// Create stores a new task. An empty status defaults to OPEN; an
// assignee reference, when present, must point at an existing worker.
func (s *taskService) Create(ctx context.Context, t *model.Task) (*model.Task, error) {
	if t.Status == "" {
		t.Status = model.TaskStatusOpen
	}
	if !model.ValidTaskStatus(t.Status) {
		return nil, ErrInvalidStatus
	}
	if t.WorkerID != nil {
		if _, err := s.workers.FindByID(ctx, *t.WorkerID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrInvalidReference
			}
			return nil, err
		}
	}

	t.ID = 0
	t.CreatedAt = time.Now().UTC()
	return s.repo.Create(ctx, t)
}

// Get returns a task by id.
func (s *taskService) Get(ctx context.Context, id int64) (*model.Task, error) {
	if id == 0 {
		return nil, ErrIDRequired
	}
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// List returns paginated tasks.
func (s *taskService) List(ctx context.Context, limit, offset int) (*ListResult[model.Task], error) {
	limit, offset = normalizePage(limit, offset)
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Task]{Items: res.Items, Total: res.Total}, nil
}

// Update overwrites a task, re-validating status and assignee.
func (s *taskService) Update(ctx context.Context, t *model.Task) (*model.Task, error) {
	if t.ID == 0 {
		return nil, ErrIDRequired
	}
	if !model.ValidTaskStatus(t.Status) {
		return nil, ErrInvalidStatus
	}
	existing, err := s.repo.FindByID(ctx, t.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if t.WorkerID != nil {
		if _, err := s.workers.FindByID(ctx, *t.WorkerID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrInvalidReference
			}
			return nil, err
		}
	}
	t.CreatedAt = existing.CreatedAt

	out, err := s.repo.Update(ctx, t)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

// Delete removes a task and its attachments. Objects are removed from
// storage before their metadata rows so a failure never leaves a row
// pointing at a deleted object.
func (s *taskService) Delete(ctx context.Context, id int64) error {
	if id == 0 {
		return ErrIDRequired
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	atts, err := s.attachments.ListByTask(ctx, id)
	if err != nil {
		return err
	}
	for _, a := range atts {
		if err := s.store.Delete(ctx, a.StoragePath); err != nil {
			return fmt.Errorf("delete attachment object %s: %w", a.StoragePath, err)
		}
		if err := s.attachments.Delete(ctx, a.ID); err != nil {
			return err
		}
	}

	return s.repo.Delete(ctx, id)
}

// Complete marks a task DONE.
func (s *taskService) Complete(ctx context.Context, id int64) (*model.Task, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Status = model.TaskStatusDone

	out, err := s.repo.Update(ctx, t)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

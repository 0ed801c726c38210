package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// CampaignService defines the use cases for managing campaigns and
// their worker assignments.
type CampaignService interface {
	Create(ctx context.Context, c *model.Campaign) (*model.Campaign, error)
	Get(ctx context.Context, id int64) (*model.Campaign, error)
	List(ctx context.Context, limit, offset int) (*ListResult[model.Campaign], error)
	Update(ctx context.Context, c *model.Campaign) (*model.Campaign, error)
	Delete(ctx context.Context, id int64) error

	// AssignWorker moves the worker onto the campaign. Assignments to a
	// CLOSED campaign fail with ErrCampaignClosed.
	AssignWorker(ctx context.Context, campaignID, workerID int64) (*model.Worker, error)

	// UnassignWorker removes the worker from the campaign. The worker
	// must currently be assigned to that campaign.
	UnassignWorker(ctx context.Context, campaignID, workerID int64) error

	// Workers returns the workers currently assigned to the campaign.
	Workers(ctx context.Context, campaignID int64) ([]model.Worker, error)

	// StatusReport returns campaign counts per status. Every status
	// value appears in the report, zero-filled when absent.
	StatusReport(ctx context.Context) (map[string]int, error)
}

type campaignService struct {
	repo    repository.CampaignRepository
	workers repository.WorkerRepository
}

// NewCampaignService constructs a new CampaignService.
func NewCampaignService(repo repository.CampaignRepository, workers repository.WorkerRepository) CampaignService {
	return &campaignService{repo: repo, workers: workers}
}

// Create stores a new campaign. An empty status defaults to NEW.
func (s *campaignService) Create(ctx context.Context, c *model.Campaign) (*model.Campaign, error) {
	if c.Status == "" {
		c.Status = model.CampaignStatusNew
	}
	if !model.ValidCampaignStatus(c.Status) {
		return nil, ErrInvalidStatus
	}

	c.ID = 0
	c.CreatedAt = time.Now().UTC()
	return s.repo.Create(ctx, c)
}

// Get returns a campaign by id.
func (s *campaignService) Get(ctx context.Context, id int64) (*model.Campaign, error) {
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

// List returns paginated campaigns.
func (s *campaignService) List(ctx context.Context, limit, offset int) (*ListResult[model.Campaign], error) {
	limit, offset = normalizePage(limit, offset)
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Campaign]{Items: res.Items, Total: res.Total}, nil
}

// Update overwrites a campaign. Status transitions are not restricted
// beyond the value set; closing a campaign does not unassign workers.
func (s *campaignService) Update(ctx context.Context, c *model.Campaign) (*model.Campaign, error) {
	if c.ID == 0 {
		return nil, ErrIDRequired
	}
	if !model.ValidCampaignStatus(c.Status) {
		return nil, ErrInvalidStatus
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

// Delete removes a campaign. Assigned workers become unassigned.
func (s *campaignService) Delete(ctx context.Context, id int64) error {
	if id == 0 {
		return ErrIDRequired
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	// Unassign before deleting so the memory backend matches the
	// ON DELETE SET NULL behavior of the postgres schema.
	assigned, err := s.workers.ListByCampaign(ctx, id)
	if err != nil {
		return err
	}
	for i := range assigned {
		w := assigned[i]
		w.CampaignID = nil
		if _, err := s.workers.Update(ctx, &w); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
	}

	return s.repo.Delete(ctx, id)
}

// AssignWorker sets the worker's campaign.
func (s *campaignService) AssignWorker(ctx context.Context, campaignID, workerID int64) (*model.Worker, error) {
	if campaignID == 0 || workerID == 0 {
		return nil, ErrIDRequired
	}

	c, err := s.repo.FindByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if c.Status == model.CampaignStatusClosed {
		return nil, ErrCampaignClosed
	}

	w, err := s.workers.FindByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidReference
		}
		return nil, err
	}

	w.CampaignID = &campaignID
	out, err := s.workers.Update(ctx, w)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidReference
		}
		return nil, err
	}
	return out, nil
}

// UnassignWorker clears the worker's campaign assignment.
func (s *campaignService) UnassignWorker(ctx context.Context, campaignID, workerID int64) error {
	if campaignID == 0 || workerID == 0 {
		return ErrIDRequired
	}

	w, err := s.workers.FindByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if w.CampaignID == nil || *w.CampaignID != campaignID {
		return ErrNotFound
	}

	w.CampaignID = nil
	if _, err := s.workers.Update(ctx, w); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Workers lists the campaign's assigned workers.
func (s *campaignService) Workers(ctx context.Context, campaignID int64) ([]model.Worker, error) {
	if campaignID == 0 {
		return nil, ErrIDRequired
	}
	if _, err := s.repo.FindByID(ctx, campaignID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.workers.ListByCampaign(ctx, campaignID)
}

// StatusReport builds the per-status campaign count report.
func (s *campaignService) StatusReport(ctx context.Context) (map[string]int, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	b := NewMapReportBuilder(
		model.CampaignStatusNew,
		model.CampaignStatusActive,
		model.CampaignStatusClosed,
	)
	for status, n := range counts {
		b.Set(status, n)
	}
	return b.Build(), nil
}

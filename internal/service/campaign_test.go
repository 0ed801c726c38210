package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"crmapi/internal/model"
	"crmapi/internal/repository"
	repoMocks "crmapi/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCampaignService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		in         *model.Campaign
		setupMocks func(mRepo *repoMocks.MockCampaignRepository)
		wantErr    error
		wantStatus string
	}{
		{
			name: "happy path",
			in:   &model.Campaign{Code: "SPRING24", Name: "Spring", Status: model.CampaignStatusActive},
			setupMocks: func(mRepo *repoMocks.MockCampaignRepository) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(c *model.Campaign) bool {
					return c.Code == "SPRING24" && !c.CreatedAt.IsZero()
				})).Return(&model.Campaign{ID: 1, Code: "SPRING24", Status: model.CampaignStatusActive}, nil)
			},
			wantStatus: model.CampaignStatusActive,
		},
		{
			name: "empty status defaults to NEW",
			in:   &model.Campaign{Code: "FALL24", Name: "Fall"},
			setupMocks: func(mRepo *repoMocks.MockCampaignRepository) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(c *model.Campaign) bool {
					return c.Status == model.CampaignStatusNew
				})).Return(&model.Campaign{ID: 2, Code: "FALL24", Status: model.CampaignStatusNew}, nil)
			},
			wantStatus: model.CampaignStatusNew,
		},
		{
			name:       "invalid status",
			in:         &model.Campaign{Code: "X", Status: "RUNNING"},
			setupMocks: func(mRepo *repoMocks.MockCampaignRepository) {},
			wantErr:    ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockCampaignRepository)
			svc := NewCampaignService(mRepo, nil)

			tt.setupMocks(mRepo)

			c, err := svc.Create(ctx, tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantStatus, c.Status)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestCampaignService_AssignWorker(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		campaignID int64
		workerID   int64
		setupMocks func(mRepo *repoMocks.MockCampaignRepository, mWorkers *repoMocks.MockWorkerRepository)
		wantErr    error
	}{
		{
			name:       "happy path",
			campaignID: 1,
			workerID:   2,
			setupMocks: func(mRepo *repoMocks.MockCampaignRepository, mWorkers *repoMocks.MockWorkerRepository) {
				mRepo.On("FindByID", ctx, int64(1)).
					Return(&model.Campaign{ID: 1, Status: model.CampaignStatusActive}, nil)
				mWorkers.On("FindByID", ctx, int64(2)).
					Return(&model.Worker{ID: 2, Name: "Bob"}, nil)
				mWorkers.On("Update", ctx, mock.MatchedBy(func(w *model.Worker) bool {
					return w.ID == 2 && w.CampaignID != nil && *w.CampaignID == 1
				})).Return(&model.Worker{ID: 2, Name: "Bob"}, nil)
			},
		},
		{
			name:       "validation - zero ids",
			campaignID: 0,
			workerID:   2,
			setupMocks: func(mRepo *repoMocks.MockCampaignRepository, mWorkers *repoMocks.MockWorkerRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name:       "campaign not found",
			campaignID: 404,
			workerID:   2,
			setupMocks: func(mRepo *repoMocks.MockCampaignRepository, mWorkers *repoMocks.MockWorkerRepository) {
				mRepo.On("FindByID", ctx, int64(404)).Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name:       "closed campaign rejects assignment",
			campaignID: 1,
			workerID:   2,
			setupMocks: func(mRepo *repoMocks.MockCampaignRepository, mWorkers *repoMocks.MockWorkerRepository) {
				mRepo.On("FindByID", ctx, int64(1)).
					Return(&model.Campaign{ID: 1, Status: model.CampaignStatusClosed}, nil)
			},
			wantErr: ErrCampaignClosed,
		},
		{
			name:       "worker not found",
			campaignID: 1,
			workerID:   404,
			setupMocks: func(mRepo *repoMocks.MockCampaignRepository, mWorkers *repoMocks.MockWorkerRepository) {
				mRepo.On("FindByID", ctx, int64(1)).
					Return(&model.Campaign{ID: 1, Status: model.CampaignStatusNew}, nil)
				mWorkers.On("FindByID", ctx, int64(404)).Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrInvalidReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockCampaignRepository)
			mWorkers := new(repoMocks.MockWorkerRepository)
			svc := NewCampaignService(mRepo, mWorkers)

			tt.setupMocks(mRepo, mWorkers)

			w, err := svc.AssignWorker(ctx, tt.campaignID, tt.workerID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, w)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, w)
			}
			mRepo.AssertExpectations(t)
			mWorkers.AssertExpectations(t)
		})
	}
}

func TestCampaignService_UnassignWorker(t *testing.T) {
	ctx := context.Background()
	campaignID := int64(1)

	t.Run("happy path", func(t *testing.T) {
		mWorkers := new(repoMocks.MockWorkerRepository)
		svc := NewCampaignService(nil, mWorkers)

		mWorkers.On("FindByID", ctx, int64(2)).
			Return(&model.Worker{ID: 2, CampaignID: &campaignID}, nil)
		mWorkers.On("Update", ctx, mock.MatchedBy(func(w *model.Worker) bool {
			return w.ID == 2 && w.CampaignID == nil
		})).Return(&model.Worker{ID: 2}, nil)

		assert.NoError(t, svc.UnassignWorker(ctx, campaignID, 2))
		mWorkers.AssertExpectations(t)
	})

	t.Run("worker assigned elsewhere", func(t *testing.T) {
		mWorkers := new(repoMocks.MockWorkerRepository)
		svc := NewCampaignService(nil, mWorkers)

		other := int64(9)
		mWorkers.On("FindByID", ctx, int64(2)).
			Return(&model.Worker{ID: 2, CampaignID: &other}, nil)

		assert.ErrorIs(t, svc.UnassignWorker(ctx, campaignID, 2), ErrNotFound)
		mWorkers.AssertExpectations(t)
	})

	t.Run("worker unassigned", func(t *testing.T) {
		mWorkers := new(repoMocks.MockWorkerRepository)
		svc := NewCampaignService(nil, mWorkers)

		mWorkers.On("FindByID", ctx, int64(2)).Return(&model.Worker{ID: 2}, nil)

		assert.ErrorIs(t, svc.UnassignWorker(ctx, campaignID, 2), ErrNotFound)
		mWorkers.AssertExpectations(t)
	})
}

func TestCampaignService_StatusReport(t *testing.T) {
	ctx := context.Background()

	t.Run("zero-fills missing statuses", func(t *testing.T) {
		mRepo := new(repoMocks.MockCampaignRepository)
		svc := NewCampaignService(mRepo, nil)

		mRepo.On("CountByStatus", ctx).Return(map[string]int{
			model.CampaignStatusActive: 3,
		}, nil)

		report, err := svc.StatusReport(ctx)

		assert.NoError(t, err)
		assert.Equal(t, map[string]int{
			model.CampaignStatusNew:    0,
			model.CampaignStatusActive: 3,
			model.CampaignStatusClosed: 0,
		}, report)
		mRepo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockCampaignRepository)
		svc := NewCampaignService(mRepo, nil)

		mRepo.On("CountByStatus", ctx).Return(nil, errors.New("db fail"))

		_, err := svc.StatusReport(ctx)
		assert.Error(t, err)
		mRepo.AssertExpectations(t)
	})
}

func TestCampaignService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("unassigns workers before deleting", func(t *testing.T) {
		mRepo := new(repoMocks.MockCampaignRepository)
		mWorkers := new(repoMocks.MockWorkerRepository)
		svc := NewCampaignService(mRepo, mWorkers)

		campaignID := int64(1)
		mRepo.On("FindByID", ctx, campaignID).
			Return(&model.Campaign{ID: campaignID, Status: model.CampaignStatusActive}, nil)
		mWorkers.On("ListByCampaign", ctx, campaignID).
			Return([]model.Worker{{ID: 2, CampaignID: &campaignID}}, nil)
		mWorkers.On("Update", ctx, mock.MatchedBy(func(w *model.Worker) bool {
			return w.ID == 2 && w.CampaignID == nil
		})).Return(&model.Worker{ID: 2}, nil)
		mRepo.On("Delete", ctx, campaignID).Return(nil)

		assert.NoError(t, svc.Delete(ctx, campaignID))
		mRepo.AssertExpectations(t)
		mWorkers.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockCampaignRepository)
		svc := NewCampaignService(mRepo, nil)

		mRepo.On("FindByID", ctx, int64(404)).Return(nil, sql.ErrNoRows)

		assert.ErrorIs(t, svc.Delete(ctx, 404), ErrNotFound)
		mRepo.AssertExpectations(t)
	})
}

func TestCampaignService_List(t *testing.T) {
	ctx := context.Background()

	mRepo := new(repoMocks.MockCampaignRepository)
	svc := NewCampaignService(mRepo, nil)

	// Zero limit uses the default, negative offset clamps to zero.
	mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
		Return(&repository.PageResult[model.Campaign]{
			Items: []model.Campaign{{ID: 1}},
			Total: 1,
		}, nil)

	res, err := svc.List(ctx, 0, -5)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
	mRepo.AssertExpectations(t)
}

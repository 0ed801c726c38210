package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"crmapi/internal/model"
	repoMocks "crmapi/internal/repository/mocks"
	"crmapi/internal/storage"
	storeMocks "crmapi/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAttachmentService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name             string
		taskID           int64
		originalFilename string
		contentType      string
		size             int64
		setupMocks       func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockAttachmentRepository, mTasks *repoMocks.MockTaskRepository) io.Reader
		wantErr          error
		wantErrMsg       string
	}{
		{
			name:             "happy path",
			taskID:           1,
			originalFilename: "report.pdf",
			contentType:      "application/pdf",
			size:             11,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockAttachmentRepository, mTasks *repoMocks.MockTaskRepository) io.Reader {
				r := strings.NewReader("hello world")
				mTasks.On("FindByID", ctx, int64(1)).Return(&model.Task{ID: 1}, nil)
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "attachments/") && strings.HasSuffix(key, ".pdf")
				}), r, storage.PutObjectOptions{
					Size:        11,
					ContentType: "application/pdf",
					Metadata:    map[string]string{"original-filename": "report.pdf"},
				}).Return(storage.ObjectInfo{
					Key:         "attachments/uuid.pdf",
					Size:        11,
					ContentType: "application/pdf",
				}, nil)

				mRepo.On("Create", ctx, mock.MatchedBy(func(a *model.Attachment) bool {
					return a.ID != "" && a.TaskID == 1 && a.Filename == "report.pdf" &&
						a.StoragePath == "attachments/uuid.pdf"
				})).Return(&model.Attachment{ID: "gen-id"}, nil)

				return r
			},
		},
		{
			name:             "validation error - nil reader",
			taskID:           1,
			originalFilename: "report.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockAttachmentRepository, mTasks *repoMocks.MockTaskRepository) io.Reader {
				return nil
			},
			wantErr: ErrReaderNil,
		},
		{
			name:             "missing task",
			taskID:           404,
			originalFilename: "report.pdf",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockAttachmentRepository, mTasks *repoMocks.MockTaskRepository) io.Reader {
				mTasks.On("FindByID", ctx, int64(404)).Return(nil, sql.ErrNoRows)
				return strings.NewReader("hello")
			},
			wantErr: ErrInvalidReference,
		},
		{
			name:             "storage error",
			taskID:           1,
			originalFilename: "report.pdf",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockAttachmentRepository, mTasks *repoMocks.MockTaskRepository) io.Reader {
				r := strings.NewReader("hello")
				mTasks.On("FindByID", ctx, int64(1)).Return(&model.Task{ID: 1}, nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
				return r
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:             "repository error with successful rollback",
			taskID:           1,
			originalFilename: "report.pdf",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockAttachmentRepository, mTasks *repoMocks.MockTaskRepository) io.Reader {
				r := strings.NewReader("hello")
				mTasks.On("FindByID", ctx, int64(1)).Return(&model.Task{ID: 1}, nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mRepo.On("Create", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(nil)
				return r
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name:             "repository error with failed rollback",
			taskID:           1,
			originalFilename: "report.pdf",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockAttachmentRepository, mTasks *repoMocks.MockTaskRepository) io.Reader {
				r := strings.NewReader("hello")
				mTasks.On("FindByID", ctx, int64(1)).Return(&model.Task{ID: 1}, nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mRepo.On("Create", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
				return r
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockAttachmentRepository)
			mTasks := new(repoMocks.MockTaskRepository)
			svc := NewAttachmentService(mStore, mRepo, mTasks)

			r := tt.setupMocks(mStore, mRepo, mTasks)

			att, err := svc.Upload(ctx, tt.taskID, r, tt.originalFilename, tt.contentType, tt.size)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, att)
			}

			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
			mTasks.AssertExpectations(t)
		})
	}
}

func TestAttachmentService_PresignURL(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockAttachmentRepository)
		svc := NewAttachmentService(mStore, mRepo, nil)

		mRepo.On("FindByID", ctx, "att-1").
			Return(&model.Attachment{ID: "att-1", StoragePath: "attachments/x.pdf"}, nil)
		mStore.On("PresignGet", ctx, "attachments/x.pdf", 15*time.Minute).
			Return("https://storage.example/signed", nil)

		u, err := svc.PresignURL(ctx, "att-1", 15*time.Minute)
		assert.NoError(t, err)
		assert.Equal(t, "https://storage.example/signed", u)
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockAttachmentRepository)
		svc := NewAttachmentService(nil, mRepo, nil)

		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.PresignURL(ctx, "missing", time.Minute)
		assert.ErrorIs(t, err, ErrNotFound)
		mRepo.AssertExpectations(t)
	})
}

func TestAttachmentService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockAttachmentRepository)
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "happy path",
			id:   "att-1",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockAttachmentRepository) {
				mRepo.On("FindByID", ctx, "att-1").
					Return(&model.Attachment{ID: "att-1", StoragePath: "attachments/x.pdf"}, nil)
				mStore.On("Delete", ctx, "attachments/x.pdf").Return(nil)
				mRepo.On("Delete", ctx, "att-1").Return(nil)
			},
		},
		{
			name:       "validation - empty id",
			id:         "",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockAttachmentRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found",
			id:   "missing",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockAttachmentRepository) {
				mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "storage delete error keeps the row",
			id:   "att-1",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockAttachmentRepository) {
				mRepo.On("FindByID", ctx, "att-1").
					Return(&model.Attachment{ID: "att-1", StoragePath: "attachments/x.pdf"}, nil)
				mStore.On("Delete", ctx, "attachments/x.pdf").Return(errors.New("storage fail"))
			},
			wantErrMsg: "delete storage: storage fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockAttachmentRepository)
			svc := NewAttachmentService(mStore, mRepo, nil)

			tt.setupMocks(mStore, mRepo)

			err := svc.Delete(ctx, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

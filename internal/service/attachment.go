package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"crmapi/internal/model"
	"crmapi/internal/repository"
	"crmapi/internal/storage"
)

// AttachmentService defines the use cases for handling task attachments.
type AttachmentService interface {
	// Upload streams the content to object storage, saves metadata to
	// the repository, and rolls the object back if the metadata save
	// fails. originalFilename is used only to extract the extension;
	// the stored object name is UUID + extension.
	Upload(ctx context.Context, taskID int64, r io.Reader, originalFilename string, contentType string, size int64) (*model.Attachment, error)

	// ListByTask returns the attachments of an existing task.
	ListByTask(ctx context.Context, taskID int64) ([]model.Attachment, error)

	// Get returns a single attachment by its ID.
	Get(ctx context.Context, id string) (*model.Attachment, error)

	// PresignURL returns a time-limited download URL for the attachment.
	PresignURL(ctx context.Context, id string, expiry time.Duration) (string, error)

	// Delete removes an attachment from both storage and the repository.
	Delete(ctx context.Context, id string) error
}

type attachmentService struct {
	store storage.Storage
	repo  repository.AttachmentRepository
	tasks repository.TaskRepository
}

// NewAttachmentService constructs a new AttachmentService.
func NewAttachmentService(store storage.Storage, repo repository.AttachmentRepository, tasks repository.TaskRepository) AttachmentService {
	return &attachmentService{store: store, repo: repo, tasks: tasks}
}

func (s *attachmentService) Upload(ctx context.Context, taskID int64, r io.Reader, originalFilename string, contentType string, size int64) (*model.Attachment, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidReference
		}
		return nil, err
	}

	// Generate object name using UUID + extension
	id := uuid.New().String()
	ext := filepath.Ext(originalFilename)
	key := filepath.ToSlash(filepath.Join("attachments", id+ext))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	att := &model.Attachment{
		ID:          id,
		TaskID:      taskID,
		Filename:    originalFilename,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: objInfo.ContentType,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, att)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// ListByTask returns the task's attachments, newest first.
func (s *attachmentService) ListByTask(ctx context.Context, taskID int64) ([]model.Attachment, error) {
	if taskID == 0 {
		return nil, ErrIDRequired
	}
	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.repo.ListByTask(ctx, taskID)
}

// Get returns an attachment by ID.
func (s *attachmentService) Get(ctx context.Context, id string) (*model.Attachment, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	att, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return att, nil
}

// PresignURL returns a pre-signed download URL for the attachment.
func (s *attachmentService) PresignURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	att, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	u, err := s.store.PresignGet(ctx, att.StoragePath, expiry)
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}
	return u, nil
}

// Delete removes an attachment from storage, then deletes its record.
func (s *attachmentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	att, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// Delete from storage first; if this fails, keep the row so the
	// object reference is not lost.
	if err := s.store.Delete(ctx, att.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

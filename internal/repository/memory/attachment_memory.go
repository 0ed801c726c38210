package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// AttachmentMemory is the in-memory repository.AttachmentRepository.
// Attachments are keyed by caller-provided UUID strings, so there is no
// id sequence here; ordering falls back to CreatedAt.
type AttachmentMemory struct {
	mu   sync.RWMutex
	rows map[string]model.Attachment
}

// NewAttachmentMemory creates an empty attachment store.
func NewAttachmentMemory() *AttachmentMemory {
	return &AttachmentMemory{rows: make(map[string]model.Attachment)}
}

var _ repository.AttachmentRepository = (*AttachmentMemory)(nil)

// Create stores a copy of a. The caller provides the UUID.
func (r *AttachmentMemory) Create(_ context.Context, a *model.Attachment) (*model.Attachment, error) {
	row := *a

	r.mu.Lock()
	r.rows[row.ID] = row
	r.mu.Unlock()

	return &row, nil
}

// FindByID returns the attachment with the given id.
func (r *AttachmentMemory) FindByID(_ context.Context, id string) (*model.Attachment, error) {
	r.mu.RLock()
	row, ok := r.rows[id]
	r.mu.RUnlock()

	if !ok {
		return nil, sql.ErrNoRows
	}
	return &row, nil
}

// ListByTask returns the task's attachments, newest first.
func (r *AttachmentMemory) ListByTask(_ context.Context, taskID int64) ([]model.Attachment, error) {
	r.mu.RLock()
	out := make([]model.Attachment, 0)
	for _, row := range r.rows {
		if row.TaskID == taskID {
			out = append(out, row)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes an attachment by id. Missing rows are ignored.
func (r *AttachmentMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.rows, id)
	r.mu.Unlock()
	return nil
}

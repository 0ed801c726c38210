package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"sync/atomic"

	"crmapi/internal/repository"
)

// Package memory provides map-backed repository implementations. They
// keep every record in process memory, which makes the service runnable
// with zero infrastructure. The backend mirrors the postgres contract:
// ids are assigned from an atomic sequence, FindByID/Update report
// missing rows as sql.ErrNoRows, Delete of a missing row is a no-op,
// and List orders newest first.

// Store is a mutex-guarded map of rows keyed by int64 id with an atomic
// id sequence. The id accessor returns a pointer to the row's ID field
// so the store can assign sequence values on insert.
//
// Store directly satisfies the CRUD portion of the repository
// interfaces; entity stores embed it and add their finders.
type Store[T any] struct {
	mu   sync.RWMutex
	rows map[int64]T
	seq  atomic.Int64
	id   func(*T) *int64
}

// NewStore creates an empty store. id must return a pointer to the ID
// field of the given row.
func NewStore[T any](id func(*T) *int64) *Store[T] {
	return &Store[T]{
		rows: make(map[int64]T),
		id:   id,
	}
}

// Create assigns the next sequence id to v and stores a copy.
func (s *Store[T]) Create(_ context.Context, v *T) (*T, error) {
	row := *v
	*s.id(&row) = s.seq.Add(1)

	s.mu.Lock()
	s.rows[*s.id(&row)] = row
	s.mu.Unlock()

	return &row, nil
}

// FindByID returns a copy of the row with the given id.
func (s *Store[T]) FindByID(_ context.Context, id int64) (*T, error) {
	s.mu.RLock()
	row, ok := s.rows[id]
	s.mu.RUnlock()

	if !ok {
		return nil, sql.ErrNoRows
	}
	return &row, nil
}

// List returns a page of rows ordered by id descending (newest first,
// since ids are assigned monotonically) and the total row count.
func (s *Store[T]) List(_ context.Context, pq repository.PageQuery) (*repository.PageResult[T], error) {
	s.mu.RLock()
	all := make([]T, 0, len(s.rows))
	for _, row := range s.rows {
		all = append(all, row)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return *s.id(&all[i]) > *s.id(&all[j])
	})

	total := len(all)
	offset := pq.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if pq.Limit > 0 && offset+pq.Limit < end {
		end = offset + pq.Limit
	}

	items := make([]T, end-offset)
	copy(items, all[offset:end])

	return &repository.PageResult[T]{Items: items, Total: total}, nil
}

// Update overwrites the row identified by v's ID. It returns
// sql.ErrNoRows when no such row exists.
func (s *Store[T]) Update(_ context.Context, v *T) (*T, error) {
	row := *v
	id := *s.id(&row)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return nil, sql.ErrNoRows
	}
	s.rows[id] = row
	out := row
	return &out, nil
}

// Delete removes the row with the given id. Missing rows are ignored.
func (s *Store[T]) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	delete(s.rows, id)
	s.mu.Unlock()
	return nil
}

// where returns copies of all rows matching pred, ordered by id
// descending.
func (s *Store[T]) where(pred func(*T) bool) []T {
	s.mu.RLock()
	out := make([]T, 0)
	for _, row := range s.rows {
		row := row
		if pred(&row) {
			out = append(out, row)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return *s.id(&out[i]) > *s.id(&out[j])
	})
	return out
}

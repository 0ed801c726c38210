package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// StudentService defines the use cases for managing students.
type StudentService interface {
	Create(ctx context.Context, st *model.Student) (*model.Student, error)
	Get(ctx context.Context, id int64) (*model.Student, error)
	List(ctx context.Context, limit, offset int) (*ListResult[model.Student], error)
	Update(ctx context.Context, st *model.Student) (*model.Student, error)
	Delete(ctx context.Context, id int64) error
}

type studentService struct {
	repo repository.StudentRepository
}

// NewStudentService constructs a new StudentService.
func NewStudentService(repo repository.StudentRepository) StudentService {
	return &studentService{repo: repo}
}

func (s *studentService) Create(ctx context.Context, st *model.Student) (*model.Student, error) {
	st.ID = 0
	st.CreatedAt = time.Now().UTC()
	return s.repo.Create(ctx, st)
}

func (s *studentService) Get(ctx context.Context, id int64) (*model.Student, error) {
	if id == 0 {
		return nil, ErrIDRequired
	}
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return st, nil
}

func (s *studentService) List(ctx context.Context, limit, offset int) (*ListResult[model.Student], error) {
	limit, offset = normalizePage(limit, offset)
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Student]{Items: res.Items, Total: res.Total}, nil
}

func (s *studentService) Update(ctx context.Context, st *model.Student) (*model.Student, error) {
	if st.ID == 0 {
		return nil, ErrIDRequired
	}
	existing, err := s.repo.FindByID(ctx, st.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	st.CreatedAt = existing.CreatedAt

	out, err := s.repo.Update(ctx, st)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (s *studentService) Delete(ctx context.Context, id int64) error {
	if id == 0 {
		return ErrIDRequired
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

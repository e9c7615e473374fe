package editorial

import (
	"context"
)

// Service 出版社领域服务
type Service interface {
	CreateEditorial(ctx context.Context, name, description string, status Status) (*Editorial, error)
	GetEditorial(ctx context.Context, id uint) (*Editorial, error)
	ListEditorials(ctx context.Context, params ListParams) ([]*Editorial, int64, error)
	UpdateEditorial(ctx context.Context, id uint, fields UpdateFields) (*Editorial, error)
	DeleteEditorial(ctx context.Context, id uint) (*Editorial, error)
}

type service struct {
	repo Repository
}

// NewService 创建出版社领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateEditorial(ctx context.Context, name, description string, status Status) (*Editorial, error) {
	e, err := NewEditorial(name, description, status)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetEditorial(ctx context.Context, id uint) (*Editorial, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListEditorials(ctx context.Context, params ListParams) ([]*Editorial, int64, error) {
	if params.Status != "" && !params.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, params)
}

func (s *service) UpdateEditorial(ctx context.Context, id uint, fields UpdateFields) (*Editorial, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := e.Apply(fields); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) DeleteEditorial(ctx context.Context, id uint) (*Editorial, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return e, nil
}

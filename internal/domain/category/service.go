package category

import (
	"context"
)

// Service 分类领域服务
type Service interface {
	CreateCategory(ctx context.Context, name, description string, status Status) (*Category, error)
	GetCategory(ctx context.Context, id uint) (*Category, error)
	ListCategories(ctx context.Context, params ListParams) ([]*Category, int64, error)
	UpdateCategory(ctx context.Context, id uint, fields UpdateFields) (*Category, error)
	DeleteCategory(ctx context.Context, id uint) (*Category, error)
}

type service struct {
	repo Repository
}

// NewService 创建分类领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCategory(ctx context.Context, name, description string, status Status) (*Category, error) {
	c, err := NewCategory(name, description, status)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetCategory(ctx context.Context, id uint) (*Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListCategories(ctx context.Context, params ListParams) ([]*Category, int64, error) {
	if params.Status != "" && !params.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, params)
}

func (s *service) UpdateCategory(ctx context.Context, id uint, fields UpdateFields) (*Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Apply(fields); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) DeleteCategory(ctx context.Context, id uint) (*Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return c, nil
}

package author

import (
	"context"
)

// Service 作者领域服务
type Service interface {
	CreateAuthor(ctx context.Context, firstName, lastName, email string) (*Author, error)
	GetAuthor(ctx context.Context, id uint) (*Author, error)
	ListAuthors(ctx context.Context, params ListParams) ([]*Author, int64, error)
	UpdateAuthor(ctx context.Context, id uint, fields UpdateFields) (*Author, error)

	// DeleteAuthor 删除作者，返回被删除的记录
	// 仍有图书引用时由数据库外键拒绝(1451)
	DeleteAuthor(ctx context.Context, id uint) (*Author, error)
}

type service struct {
	repo Repository
}

// NewService 创建作者领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateAuthor(ctx context.Context, firstName, lastName, email string) (*Author, error) {
	a, err := NewAuthor(firstName, lastName, email)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) GetAuthor(ctx context.Context, id uint) (*Author, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListAuthors(ctx context.Context, params ListParams) ([]*Author, int64, error) {
	return s.repo.List(ctx, params)
}

func (s *service) UpdateAuthor(ctx context.Context, id uint, fields UpdateFields) (*Author, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.Apply(fields); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) DeleteAuthor(ctx context.Context, id uint) (*Author, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return a, nil
}

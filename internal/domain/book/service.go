package book

import (
	"context"
)

// Service 图书领域服务接口
// 外键(作者、分类、出版社)存在性由应用层在调用前校验
type Service interface {
	CreateBook(ctx context.Context, params NewBookParams) (*Book, error)
	GetBook(ctx context.Context, id uint) (*Book, error)
	UpdateBook(ctx context.Context, id uint, fields UpdateFields) (*Book, error)

	// DeleteBook 删除图书，返回被删除的记录
	DeleteBook(ctx context.Context, id uint) (*Book, error)

	ListBooks(ctx context.Context, params ListParams) ([]*Summary, int64, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateBook(ctx context.Context, params NewBookParams) (*Book, error) {
	b, err := NewBook(params)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) UpdateBook(ctx context.Context, id uint, fields UpdateFields) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.Apply(fields); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) DeleteBook(ctx context.Context, id uint) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Summary, int64, error) {
	if params.Status != "" && !params.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.ListSummaries(ctx, params)
}

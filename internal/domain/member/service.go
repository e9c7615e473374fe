package member

import (
	"context"
	"errors"
)

// Service 读者领域服务
type Service interface {
	// RegisterMember 登记读者
	// 业务规则:证件号、邮箱不能重复
	RegisterMember(ctx context.Context, firstName, lastName, identification, email, observations string, status Status) (*Member, error)
	GetMember(ctx context.Context, id uint) (*Member, error)
	GetMemberByIdentification(ctx context.Context, identification string) (*Member, error)
	ListMembers(ctx context.Context, params ListParams) ([]*Member, int64, error)
	UpdateMember(ctx context.Context, id uint, fields UpdateFields) (*Member, error)
	DeleteMember(ctx context.Context, id uint) (*Member, error)
}

type service struct {
	repo Repository
}

// NewService 创建读者领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RegisterMember(ctx context.Context, firstName, lastName, identification, email, observations string, status Status) (*Member, error) {
	m, err := NewMember(firstName, lastName, identification, email, observations, status)
	if err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, m); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) GetMember(ctx context.Context, id uint) (*Member, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetMemberByIdentification(ctx context.Context, identification string) (*Member, error) {
	return s.repo.FindByIdentification(ctx, identification)
}

func (s *service) ListMembers(ctx context.Context, params ListParams) ([]*Member, int64, error) {
	if params.Status != "" && !params.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, params)
}

func (s *service) UpdateMember(ctx context.Context, id uint, fields UpdateFields) (*Member, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.Apply(fields); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, m); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) DeleteMember(ctx context.Context, id uint) (*Member, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return m, nil
}

// checkUnique 证件号和邮箱不能被其他读者占用
// 并发注册时仍可能同时通过，最终由唯一索引兜底(1062)
func (s *service) checkUnique(ctx context.Context, m *Member) error {
	existing, err := s.repo.FindByIdentification(ctx, m.Identification)
	if err == nil && existing.ID != m.ID {
		return ErrIdentificationDuplicate
	}
	if err != nil && !errors.Is(err, ErrMemberNotFound) {
		return err
	}

	existing, err = s.repo.FindByEmail(ctx, m.Email)
	if err == nil && existing.ID != m.ID {
		return ErrEmailDuplicate
	}
	if err != nil && !errors.Is(err, ErrMemberNotFound) {
		return err
	}
	return nil
}

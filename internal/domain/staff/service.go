package staff

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/validator"
)

// DefaultBcryptCost bcrypt计算成本
// cost每+1耗时翻倍，12约250ms
const DefaultBcryptCost = 12

// Service 管理员领域服务
type Service interface {
	// Register 注册管理员
	Register(ctx context.Context, email, password, nickname string) (*Staff, error)

	// Login 邮箱密码登录
	// 邮箱不存在和密码错误返回同一个错误，避免暴露邮箱是否已注册
	Login(ctx context.Context, email, password string) (*Staff, error)

	// EnsureAdmin 启动时创建初始管理员，邮箱已存在时直接返回(created=false)
	EnsureAdmin(ctx context.Context, email, password, nickname string) (staff *Staff, created bool, err error)

	// ValidatePassword 验证密码
	ValidatePassword(hashedPassword, plainPassword string) error
}

type service struct {
	repo Repository
	cost int
}

// NewService 创建管理员服务
func NewService(repo Repository) Service {
	return NewServiceWithCost(repo, DefaultBcryptCost)
}

// NewServiceWithCost 指定bcrypt成本(测试中使用bcrypt.MinCost)
func NewServiceWithCost(repo Repository, cost int) Service {
	return &service{repo: repo, cost: cost}
}

// Register 注册管理员
// 业务规则：
// 1. 邮箱格式校验
// 2. 密码强度校验（8-20位，包含字母和数字）
// 3. 邮箱唯一性由数据库UNIQUE索引保证
func (s *service) Register(ctx context.Context, email, password, nickname string) (*Staff, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validator.IsEmail(email) {
		return nil, ErrInvalidEmail
	}

	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	if n := utf8.RuneCountInString(strings.TrimSpace(nickname)); n < 2 || n > 50 {
		return nil, ErrInvalidNickname
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	staff := NewStaff(email, string(hashedPassword), nickname)
	if err := s.repo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// Login 管理员登录
func (s *service) Login(ctx context.Context, email, password string) (*Staff, error) {
	staff, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrStaffNotFound) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, err
	}

	if err := s.ValidatePassword(staff.Password, password); err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *service) EnsureAdmin(ctx context.Context, email, password, nickname string) (*Staff, bool, error) {
	existing, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrStaffNotFound) {
		return nil, false, err
	}

	staff, err := s.Register(ctx, email, password, nickname)
	if err != nil {
		return nil, false, err
	}
	return staff, true, nil
}

// ValidatePassword 验证明文密码与哈希值是否匹配
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}

var (
	letterPattern = regexp.MustCompile(`[a-zA-Z]`)
	digitPattern  = regexp.MustCompile(`[0-9]`)
)

// validatePasswordStrength 密码强度校验
// 规则：8-20位，必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return apperrors.ErrWeakPassword
	}
	if !letterPattern.MatchString(password) || !digitPattern.MatchString(password) {
		return apperrors.ErrWeakPassword
	}
	return nil
}

package auth

import (
	"context"

	"github.com/xiebiao/library/internal/domain/staff"
)

// RegisterUseCase 管理员注册用例
type RegisterUseCase struct {
	staffService staff.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(staffService staff.Service) *RegisterUseCase {
	return &RegisterUseCase{
		staffService: staffService,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string
	Password string
	Nickname string
}

// StaffInfo 管理员信息(不含密码)
type StaffInfo struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*StaffInfo, error) {
	s, err := uc.staffService.Register(ctx, req.Email, req.Password, req.Nickname)
	if err != nil {
		return nil, err
	}
	return &StaffInfo{
		ID:       s.ID,
		Email:    s.Email,
		Nickname: s.Nickname,
	}, nil
}

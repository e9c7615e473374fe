package staff

import (
	"context"
)

// Repository 管理员仓储接口
// 接口定义在domain层，具体实现在infrastructure/persistence层
type Repository interface {
	// Create 创建管理员
	// 邮箱已存在时返回ErrEmailDuplicate
	Create(ctx context.Context, staff *Staff) error

	// FindByID 不存在时返回ErrStaffNotFound
	FindByID(ctx context.Context, id uint) (*Staff, error)

	// FindByEmail 不存在时返回ErrStaffNotFound
	FindByEmail(ctx context.Context, email string) (*Staff, error)

	Update(ctx context.Context, staff *Staff) error
}

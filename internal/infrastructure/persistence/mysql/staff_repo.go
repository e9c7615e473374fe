package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/staff"
)

// staffRepository 管理员仓储实现（MySQL）
type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository 创建管理员仓储
// 注意：返回的是domain层的接口类型，不是具体类型（依赖倒置）
func NewStaffRepository(db *gorm.DB) staff.Repository {
	return &staffRepository{db: db}
}

// Create 创建管理员
// 邮箱唯一性由数据库UNIQUE索引保证（而非应用层SELECT再INSERT）
func (r *staffRepository) Create(ctx context.Context, s *staff.Staff) error {
	model := toStaffModel(s)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return staff.ErrEmailDuplicate
		}
		return translateError(err, nil, "创建管理员失败")
	}
	s.ID = model.ID
	s.CreatedAt = model.CreatedAt
	s.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *staffRepository) FindByID(ctx context.Context, id uint) (*staff.Staff, error) {
	var model StaffModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		return nil, translateError(err, staff.ErrStaffNotFound, "查询管理员失败")
	}
	return toStaffEntity(&model), nil
}

func (r *staffRepository) FindByEmail(ctx context.Context, email string) (*staff.Staff, error) {
	var model StaffModel
	if err := getDB(ctx, r.db).Where("email = ?", email).First(&model).Error; err != nil {
		return nil, translateError(err, staff.ErrStaffNotFound, "查询管理员失败")
	}
	return toStaffEntity(&model), nil
}

func (r *staffRepository) Update(ctx context.Context, s *staff.Staff) error {
	model := toStaffModel(s)
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return translateError(err, nil, "更新管理员失败")
	}
	s.UpdatedAt = model.UpdatedAt
	return nil
}

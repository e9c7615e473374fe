package category

import (
	"context"
)

// Repository 分类仓储接口
type Repository interface {
	// Create 名称重复时返回ErrNameDuplicate
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id uint) (*Category, error)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]*Category, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int
	PageSize int
	Keyword  string
	Status   Status // 为空时不过滤
}

package editorial

import (
	"context"
)

// Repository 出版社仓储接口
type Repository interface {
	// Create 名称重复时返回ErrNameDuplicate
	Create(ctx context.Context, editorial *Editorial) error
	FindByID(ctx context.Context, id uint) (*Editorial, error)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*Editorial, error)
	Update(ctx context.Context, editorial *Editorial) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]*Editorial, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int
	PageSize int
	Keyword  string
	Status   Status // 为空时不过滤
}

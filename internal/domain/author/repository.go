package author

import (
	"context"
)

// Repository 作者仓储接口
type Repository interface {
	Create(ctx context.Context, author *Author) error

	// FindByID 不存在时返回ErrAuthorNotFound
	FindByID(ctx context.Context, id uint) (*Author, error)

	// FindByIDs 批量查询，不存在的ID不出现在结果中
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*Author, error)

	Update(ctx context.Context, author *Author) error

	Delete(ctx context.Context, id uint) error

	// List 分页查询，Keyword匹配名字、姓氏、邮箱
	List(ctx context.Context, params ListParams) ([]*Author, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int
	PageSize int
	Keyword  string
}

package inventory

import (
	"context"
)

// Repository 库存仓储接口
// 修改数量前必须在事务中先LockByID/LockByBookID(SELECT ... FOR UPDATE)
type Repository interface {
	// Create BookID重复时返回ErrInventoryExists
	Create(ctx context.Context, inv *Inventory) error

	FindByID(ctx context.Context, id uint) (*Inventory, error)
	FindByBookID(ctx context.Context, bookID uint) (*Inventory, error)

	// FindByBookIDs 批量查询，key为BookID
	FindByBookIDs(ctx context.Context, bookIDs []uint) (map[uint]*Inventory, error)

	// LockByID 悲观锁查询，必须在事务中调用
	LockByID(ctx context.Context, id uint) (*Inventory, error)

	// LockByBookID 按图书加锁(借书、还书时使用)
	LockByBookID(ctx context.Context, bookID uint) (*Inventory, error)

	// Save 保存数量变化
	Save(ctx context.Context, inv *Inventory) error

	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, params ListParams) ([]*Inventory, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page          int
	PageSize      int
	OnlyAvailable bool // 只返回可借数量>0的库存
}

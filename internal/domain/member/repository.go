package member

import (
	"context"
)

// Repository 读者仓储接口
type Repository interface {
	Create(ctx context.Context, member *Member) error
	FindByID(ctx context.Context, id uint) (*Member, error)

	// FindByIdentification 按证件号查询，不存在时返回ErrMemberNotFound
	FindByIdentification(ctx context.Context, identification string) (*Member, error)

	FindByEmail(ctx context.Context, email string) (*Member, error)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*Member, error)
	Update(ctx context.Context, member *Member) error

	// Delete 有借阅记录的读者由外键拒绝删除
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, params ListParams) ([]*Member, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int
	PageSize int
	Keyword  string // 匹配姓名、证件号、邮箱
	Status   Status
}

package loan

import (
	"context"
	"time"
)

// Repository 借阅仓储接口
type Repository interface {
	Create(ctx context.Context, loan *Loan) error
	FindByID(ctx context.Context, id uint) (*Loan, error)

	// LockByID 悲观锁查询，防止同一借阅被并发归还两次
	LockByID(ctx context.Context, id uint) (*Loan, error)

	Update(ctx context.Context, loan *Loan) error

	// ExistsActive 是否已有借出中的相同借阅(读者+图书+应还日期)
	ExistsActive(ctx context.Context, memberID, bookID uint, dueDate time.Time) (bool, error)

	List(ctx context.Context, params ListParams) ([]*Loan, int64, error)
}

// ListParams 列表查询参数，零值字段不过滤
type ListParams struct {
	Page     int
	PageSize int
	State    State
	MemberID uint
	BookID   uint
}

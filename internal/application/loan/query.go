package loan

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/inventory"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/pkg/pagination"
)

// Detail 借阅详情
type Detail struct {
	Loan      *loan.Loan
	Member    *member.Member
	Book      *book.Book
	Inventory *inventory.Inventory // 图书库存被删除后为nil
}

// GetLoanUseCase 借阅详情查询
type GetLoanUseCase struct {
	loanRepo      loan.Repository
	memberRepo    member.Repository
	bookRepo      book.Repository
	inventoryRepo inventory.Repository
}

// NewGetLoanUseCase 创建详情用例
func NewGetLoanUseCase(
	loanRepo loan.Repository,
	memberRepo member.Repository,
	bookRepo book.Repository,
	inventoryRepo inventory.Repository,
) *GetLoanUseCase {
	return &GetLoanUseCase{
		loanRepo:      loanRepo,
		memberRepo:    memberRepo,
		bookRepo:      bookRepo,
		inventoryRepo: inventoryRepo,
	}
}

// Execute 查询借阅及其读者、图书、库存
func (uc *GetLoanUseCase) Execute(ctx context.Context, id uint) (*Detail, error) {
	l, err := uc.loanRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m, err := uc.memberRepo.FindByID(ctx, l.MemberID)
	if err != nil {
		return nil, err
	}
	b, err := uc.bookRepo.FindByID(ctx, l.BookID)
	if err != nil {
		return nil, err
	}
	invs, err := uc.inventoryRepo.FindByBookIDs(ctx, []uint{l.BookID})
	if err != nil {
		return nil, err
	}
	return &Detail{Loan: l, Member: m, Book: b, Inventory: invs[l.BookID]}, nil
}

// ListLoansUseCase 借阅列表
// 读者、图书、库存按ID批量查询后组装，每页固定4次查询
type ListLoansUseCase struct {
	loanRepo      loan.Repository
	memberRepo    member.Repository
	bookRepo      book.Repository
	inventoryRepo inventory.Repository
}

// NewListLoansUseCase 创建列表用例
func NewListLoansUseCase(
	loanRepo loan.Repository,
	memberRepo member.Repository,
	bookRepo book.Repository,
	inventoryRepo inventory.Repository,
) *ListLoansUseCase {
	return &ListLoansUseCase{
		loanRepo:      loanRepo,
		memberRepo:    memberRepo,
		bookRepo:      bookRepo,
		inventoryRepo: inventoryRepo,
	}
}

// ListLoansRequest 列表请求，零值字段不过滤
type ListLoansRequest struct {
	Page     int
	PageSize int
	State    loan.State
	MemberID uint
	BookID   uint
}

// ListLoansResponse 列表响应
type ListLoansResponse struct {
	List     []*Detail
	Total    int64
	Page     int
	PageSize int
}

// Execute 分页查询
func (uc *ListLoansUseCase) Execute(ctx context.Context, req ListLoansRequest) (*ListLoansResponse, error) {
	if req.State != "" && !req.State.Valid() {
		return nil, loan.ErrInvalidState
	}
	page, pageSize, _ := pagination.Normalize(req.Page, req.PageSize)

	loans, total, err := uc.loanRepo.List(ctx, loan.ListParams{
		Page:     page,
		PageSize: pageSize,
		State:    req.State,
		MemberID: req.MemberID,
		BookID:   req.BookID,
	})
	if err != nil {
		return nil, err
	}

	memberIDs := make([]uint, 0, len(loans))
	bookIDs := make([]uint, 0, len(loans))
	for _, l := range loans {
		memberIDs = append(memberIDs, l.MemberID)
		bookIDs = append(bookIDs, l.BookID)
	}

	members, err := uc.memberRepo.FindByIDs(ctx, memberIDs)
	if err != nil {
		return nil, err
	}
	books, err := uc.bookRepo.FindByIDs(ctx, bookIDs)
	if err != nil {
		return nil, err
	}
	invs, err := uc.inventoryRepo.FindByBookIDs(ctx, bookIDs)
	if err != nil {
		return nil, err
	}

	list := make([]*Detail, len(loans))
	for i, l := range loans {
		list[i] = &Detail{
			Loan:      l,
			Member:    members[l.MemberID],
			Book:      books[l.BookID],
			Inventory: invs[l.BookID],
		}
	}

	return &ListLoansResponse{List: list, Total: total, Page: page, PageSize: pageSize}, nil
}

package dto

import (
	"time"

	apploan "github.com/xiebiao/library/internal/application/loan"
	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// LendBookRequest 借书请求
type LendBookRequest struct {
	MemberID     uint   `json:"member_id" binding:"required" example:"1"`
	BookID       uint   `json:"book_id" binding:"required" example:"1"`
	Quantity     int    `json:"quantity" binding:"omitempty,min=1" example:"1"`
	DueDate      string `json:"due_date" binding:"required" example:"2024-02-15"`
	Observations string `json:"observations" binding:"max=500"`
}

// ToUseCase 转换为用例请求，应还日期按本地时区解析
func (r LendBookRequest) ToUseCase() (apploan.LendBookRequest, error) {
	due, err := time.ParseInLocation(DateLayout, r.DueDate, time.Local)
	if err != nil {
		return apploan.LendBookRequest{}, errDueDateFormat
	}
	return apploan.LendBookRequest{
		MemberID:     r.MemberID,
		BookID:       r.BookID,
		Quantity:     r.Quantity,
		DueDate:      due,
		Observations: r.Observations,
	}, nil
}

// ListLoansQuery 借阅列表查询参数
type ListLoansQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	State    string `form:"state" binding:"omitempty,oneof=lent returned"`
	MemberID uint   `form:"member_id"`
	BookID   uint   `form:"book_id"`
}

// ToUseCase 转换为用例请求
func (q ListLoansQuery) ToUseCase() apploan.ListLoansRequest {
	return apploan.ListLoansRequest{
		Page:     q.Page,
		PageSize: q.PageSize,
		State:    loan.State(q.State),
		MemberID: q.MemberID,
		BookID:   q.BookID,
	}
}

// LoanResponse 借阅记录
type LoanResponse struct {
	ID           uint   `json:"id" example:"1"`
	MemberID     uint   `json:"member_id" example:"1"`
	BookID       uint   `json:"book_id" example:"1"`
	Quantity     int    `json:"quantity" example:"1"`
	Observations string `json:"observations"`
	LoanDate     string `json:"loan_date" example:"2024-01-15 10:30:00"`
	DueDate      string `json:"due_date" example:"2024-02-15"`
	ReturnedAt   string `json:"returned_at,omitempty"`
	State        string `json:"state" example:"lent"`
	Overdue      bool   `json:"overdue"`
}

// NewLoanResponse 领域实体 → 响应
func NewLoanResponse(l *loan.Loan) *LoanResponse {
	if l == nil {
		return nil
	}
	resp := &LoanResponse{
		ID:           l.ID,
		MemberID:     l.MemberID,
		BookID:       l.BookID,
		Quantity:     l.Quantity,
		Observations: l.Observations,
		LoanDate:     formatTime(l.LoanDate),
		DueDate:      l.DueDate.Format(DateLayout),
		State:        string(l.State),
		Overdue:      l.IsOverdue(time.Now()),
	}
	if l.ReturnedAt != nil {
		resp.ReturnedAt = formatTime(*l.ReturnedAt)
	}
	return resp
}

// LoanDetailResponse 借阅详情，列表项与详情共用
type LoanDetailResponse struct {
	Loan      *LoanResponse      `json:"loan"`
	Member    *MemberResponse    `json:"member"`
	Book      *BookResponse      `json:"book"`
	Inventory *InventoryResponse `json:"inventory"`
}

// NewLoanDetailResponse 详情读模型 → 响应
func NewLoanDetailResponse(d *apploan.Detail) *LoanDetailResponse {
	return &LoanDetailResponse{
		Loan:      NewLoanResponse(d.Loan),
		Member:    NewMemberResponse(d.Member),
		Book:      NewBookResponse(d.Book),
		Inventory: NewInventoryResponse(d.Inventory),
	}
}

// NewLoanDetailList 批量转换
func NewLoanDetailList(list []*apploan.Detail) []*LoanDetailResponse {
	out := make([]*LoanDetailResponse, len(list))
	for i, d := range list {
		out[i] = NewLoanDetailResponse(d)
	}
	return out
}

var errDueDateFormat = apperrors.InvalidParams("due_date格式应为%s", DateLayout)

package loan

import (
	"strings"
	"time"

	"github.com/xiebiao/library/pkg/validator"
)

// State 借阅状态
type State string

const (
	StateLent     State = "lent"     // 借出中
	StateReturned State = "returned" // 已归还(终态)
)

// Valid 是否为合法的枚举值
func (s State) Valid() bool {
	return s == StateLent || s == StateReturned
}

// Loan 借阅记录(聚合根)
// 借出和归还都会同步修改对应图书的库存，二者在同一个事务中完成
type Loan struct {
	ID           uint
	MemberID     uint
	BookID       uint
	Quantity     int
	Observations string
	LoanDate     time.Time
	DueDate      time.Time  // 应还日期
	ReturnedAt   *time.Time // 实际归还时间，未归还为nil
	State        State
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewLoanParams 创建借阅参数
type NewLoanParams struct {
	MemberID     uint
	BookID       uint
	Quantity     int
	DueDate      time.Time
	Observations string
}

// NewLoan 创建借阅记录(工厂方法)
// 业务规则:
// - 数量未指定时为1
// - 应还日期不能早于今天
func NewLoan(p NewLoanParams, now time.Time) (*Loan, error) {
	if p.MemberID == 0 || p.BookID == 0 {
		return nil, ErrMissingReference
	}
	if p.Quantity == 0 {
		p.Quantity = 1
	}
	if p.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if p.DueDate.IsZero() || p.DueDate.Before(validator.StartOfDay(now)) {
		return nil, ErrInvalidDueDate
	}
	return &Loan{
		MemberID:     p.MemberID,
		BookID:       p.BookID,
		Quantity:     p.Quantity,
		Observations: strings.TrimSpace(p.Observations),
		LoanDate:     now,
		DueDate:      p.DueDate,
		State:        StateLent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// MarkReturned 归还(领域行为)
func (l *Loan) MarkReturned(now time.Time) error {
	if l.State == StateReturned {
		return ErrLoanAlreadyReturned
	}
	l.State = StateReturned
	l.ReturnedAt = &now
	l.UpdatedAt = now
	return nil
}

// IsOverdue 借出中且已过应还日期
func (l *Loan) IsOverdue(now time.Time) bool {
	return l.State == StateLent && validator.StartOfDay(now).After(validator.StartOfDay(l.DueDate))
}

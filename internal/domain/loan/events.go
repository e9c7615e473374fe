package loan

import (
	"time"
)

// 借阅事件路由键
const (
	RoutingKeyLent     = "loan.lent"
	RoutingKeyReturned = "loan.returned"
)

// Event 借出、归还事件
type Event struct {
	LoanID         uint      `json:"loan_id"`
	MemberID       uint      `json:"member_id"`
	BookID         uint      `json:"book_id"`
	Quantity       int       `json:"quantity"`
	State          State     `json:"state"`
	DueDate        time.Time `json:"due_date"`
	UnitsAvailable int       `json:"units_available"` // 操作后的可借数量
	OccurredAt     time.Time `json:"occurred_at"`
}

// NewEvent 根据借阅记录和操作后的可借数量生成事件
func NewEvent(l *Loan, unitsAvailable int) Event {
	return Event{
		LoanID:         l.ID,
		MemberID:       l.MemberID,
		BookID:         l.BookID,
		Quantity:       l.Quantity,
		State:          l.State,
		DueDate:        l.DueDate,
		UnitsAvailable: unitsAvailable,
		OccurredAt:     time.Now(),
	}
}

// RoutingKey 事件对应的路由键
func (e Event) RoutingKey() string {
	if e.State == StateReturned {
		return RoutingKeyReturned
	}
	return RoutingKeyLent
}

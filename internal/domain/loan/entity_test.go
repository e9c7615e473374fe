package loan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoan(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.Local)

	t.Run("默认数量为1", func(t *testing.T) {
		l, err := NewLoan(NewLoanParams{MemberID: 1, BookID: 2, DueDate: now.AddDate(0, 0, 7)}, now)
		require.NoError(t, err)
		assert.Equal(t, 1, l.Quantity)
		assert.Equal(t, StateLent, l.State)
		assert.Equal(t, now, l.LoanDate)
		assert.Nil(t, l.ReturnedAt)
	})

	t.Run("当天归还合法", func(t *testing.T) {
		today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)
		_, err := NewLoan(NewLoanParams{MemberID: 1, BookID: 2, DueDate: today}, now)
		assert.NoError(t, err)
	})

	t.Run("应还日期早于今天", func(t *testing.T) {
		_, err := NewLoan(NewLoanParams{MemberID: 1, BookID: 2, DueDate: now.AddDate(0, 0, -1)}, now)
		assert.ErrorIs(t, err, ErrInvalidDueDate)
	})

	t.Run("缺少应还日期", func(t *testing.T) {
		_, err := NewLoan(NewLoanParams{MemberID: 1, BookID: 2}, now)
		assert.ErrorIs(t, err, ErrInvalidDueDate)
	})

	t.Run("数量为负", func(t *testing.T) {
		_, err := NewLoan(NewLoanParams{MemberID: 1, BookID: 2, Quantity: -1, DueDate: now}, now)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("缺少读者", func(t *testing.T) {
		_, err := NewLoan(NewLoanParams{BookID: 2, DueDate: now}, now)
		assert.ErrorIs(t, err, ErrMissingReference)
	})
}

func TestMarkReturned(t *testing.T) {
	now := time.Now()
	l, err := NewLoan(NewLoanParams{MemberID: 1, BookID: 2, DueDate: now.AddDate(0, 0, 3)}, now)
	require.NoError(t, err)

	returnedAt := now.Add(time.Hour)
	require.NoError(t, l.MarkReturned(returnedAt))
	assert.Equal(t, StateReturned, l.State)
	require.NotNil(t, l.ReturnedAt)
	assert.Equal(t, returnedAt, *l.ReturnedAt)

	assert.ErrorIs(t, l.MarkReturned(now), ErrLoanAlreadyReturned)
}

func TestIsOverdue(t *testing.T) {
	due := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)
	l := &Loan{State: StateLent, DueDate: due}

	assert.False(t, l.IsOverdue(due.Add(23*time.Hour)), "应还当天不算逾期")
	assert.True(t, l.IsOverdue(due.AddDate(0, 0, 1)))

	l.State = StateReturned
	assert.False(t, l.IsOverdue(due.AddDate(0, 0, 5)))
}

func TestEventRoutingKey(t *testing.T) {
	l := &Loan{ID: 1, MemberID: 2, BookID: 3, Quantity: 1, State: StateLent}
	assert.Equal(t, RoutingKeyLent, NewEvent(l, 4).RoutingKey())

	l.State = StateReturned
	ev := NewEvent(l, 5)
	assert.Equal(t, RoutingKeyReturned, ev.RoutingKey())
	assert.Equal(t, 5, ev.UnitsAvailable)
}

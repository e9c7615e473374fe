package memory

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/validator"
)

type loanRepository struct {
	store *Store
}

// NewLoanRepository 创建借阅仓储
func NewLoanRepository(store *Store) loan.Repository {
	return &loanRepository{store: store}
}

func (r *loanRepository) Create(ctx context.Context, l *loan.Loan) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.members[l.MemberID]; !ok {
			return apperrors.ErrUnknownReference
		}
		if _, ok := t.books[l.BookID]; !ok {
			return apperrors.ErrUnknownReference
		}
		l.ID = t.nextID("loans")
		t.loans[l.ID] = *l
		return nil
	})
}

func (r *loanRepository) FindByID(_ context.Context, id uint) (*loan.Loan, error) {
	var out *loan.Loan
	err := r.store.read(func(t *tables) error {
		l, ok := t.loans[id]
		if !ok {
			return loan.NotFound(id)
		}
		out = &l
		return nil
	})
	return out, err
}

func (r *loanRepository) LockByID(ctx context.Context, id uint) (*loan.Loan, error) {
	return r.FindByID(ctx, id)
}

func (r *loanRepository) Update(ctx context.Context, l *loan.Loan) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.loans[l.ID]; !ok {
			return loan.NotFound(l.ID)
		}
		t.loans[l.ID] = *l
		return nil
	})
}

// ExistsActive 应还日期按天比较，与MySQL实现的DATE(due_date)一致
func (r *loanRepository) ExistsActive(_ context.Context, memberID, bookID uint, dueDate time.Time) (bool, error) {
	day := validator.StartOfDay(dueDate)
	exists := false
	_ = r.store.read(func(t *tables) error {
		for _, l := range t.loans {
			if l.MemberID == memberID && l.BookID == bookID && l.State == loan.StateLent &&
				validator.StartOfDay(l.DueDate).Equal(day) {
				exists = true
				return nil
			}
		}
		return nil
	})
	return exists, nil
}

func (r *loanRepository) List(_ context.Context, params loan.ListParams) ([]*loan.Loan, int64, error) {
	var rows []loan.Loan
	_ = r.store.read(func(t *tables) error {
		rows = sortedDesc(t.loans, func(l loan.Loan) bool {
			switch {
			case params.State != "" && l.State != params.State:
				return false
			case params.MemberID != 0 && l.MemberID != params.MemberID:
				return false
			case params.BookID != 0 && l.BookID != params.BookID:
				return false
			}
			return true
		})
		return nil
	})
	list, total := pageOf(rows, params.Page, params.PageSize)
	return list, total, nil
}

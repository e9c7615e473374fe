package loan

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/inventory"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

// ReturnBookUseCase 还书用例
// 同一事务内：锁借阅记录 → 锁库存 → 归还数量 → 标记已归还
// 借阅记录加锁防止同一笔借阅被并发归还两次
type ReturnBookUseCase struct {
	loanRepo      loan.Repository
	inventoryRepo inventory.Repository
	txManager     TxManager
	publisher     EventPublisher
}

// NewReturnBookUseCase 创建还书用例
func NewReturnBookUseCase(
	loanRepo loan.Repository,
	inventoryRepo inventory.Repository,
	txManager TxManager,
	publisher EventPublisher,
) *ReturnBookUseCase {
	return &ReturnBookUseCase{
		loanRepo:      loanRepo,
		inventoryRepo: inventoryRepo,
		txManager:     txManager,
		publisher:     publisher,
	}
}

// Execute 归还loanID对应的借阅
func (uc *ReturnBookUseCase) Execute(ctx context.Context, loanID uint) (result *loan.Loan, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ReturnBook")
	start := time.Now()
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveLoanDuration("return", time.Since(start).Seconds())
		if err != nil {
			metrics.RecordLoan(metrics.ResultRejected)
		} else {
			metrics.RecordLoan(metrics.ResultReturned)
		}
	}()

	var l *loan.Loan
	var inv *inventory.Inventory
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		l, err = uc.loanRepo.LockByID(txCtx, loanID)
		if err != nil {
			return err
		}
		if err := l.MarkReturned(time.Now()); err != nil {
			return err
		}

		inv, err = uc.inventoryRepo.LockByBookID(txCtx, l.BookID)
		if err != nil {
			return err
		}
		if err := inv.Return(l.Quantity); err != nil {
			return err
		}
		if err := uc.inventoryRepo.Save(txCtx, inv); err != nil {
			return err
		}
		return uc.loanRepo.Update(txCtx, l)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("还书成功",
		zap.Uint("loan_id", l.ID),
		zap.Uint("book_id", l.BookID),
		zap.Int("quantity", l.Quantity),
		zap.Int("units_available", inv.UnitsAvailable),
	)
	publish(ctx, uc.publisher, loan.NewEvent(l, inv.UnitsAvailable))

	return l, nil
}

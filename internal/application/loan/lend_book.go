package loan

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/inventory"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

const tracerName = "application/loan"

// LendBookUseCase 借书用例
//
// 核心问题：超借
// 场景：某本书只剩1本，两个读者同时借
// 错误实现：
//  1. 查询库存 → 可借1本
//  2. 两个请求都通过检查
//  3. 各自扣减 → 借出2本
//
// 正确实现：悲观锁 + 单事务
//  1. SELECT ... FOR UPDATE 锁定库存行
//  2. 在锁定后的数据上借出(不变式校验)
//  3. 保存库存
//  4. 创建借阅记录
//  5. COMMIT释放锁，任何一步失败全部回滚
type LendBookUseCase struct {
	loanRepo      loan.Repository
	inventoryRepo inventory.Repository
	memberRepo    member.Repository
	bookRepo      book.Repository
	txManager     TxManager
	publisher     EventPublisher
}

// NewLendBookUseCase 创建借书用例
func NewLendBookUseCase(
	loanRepo loan.Repository,
	inventoryRepo inventory.Repository,
	memberRepo member.Repository,
	bookRepo book.Repository,
	txManager TxManager,
	publisher EventPublisher,
) *LendBookUseCase {
	return &LendBookUseCase{
		loanRepo:      loanRepo,
		inventoryRepo: inventoryRepo,
		memberRepo:    memberRepo,
		bookRepo:      bookRepo,
		txManager:     txManager,
		publisher:     publisher,
	}
}

// LendBookRequest 借书请求DTO
type LendBookRequest struct {
	MemberID     uint
	BookID       uint
	Quantity     int // 0表示1本
	DueDate      time.Time
	Observations string
}

// Execute 执行借书
func (uc *LendBookUseCase) Execute(ctx context.Context, req LendBookRequest) (result *Detail, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "LendBook")
	start := time.Now()
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveLoanDuration("lend", time.Since(start).Seconds())
		if err != nil {
			metrics.RecordLoan(metrics.ResultRejected)
		} else {
			metrics.RecordLoan(metrics.ResultLent)
		}
	}()

	// 1. 参数校验(数量、应还日期)
	l, err := loan.NewLoan(loan.NewLoanParams{
		MemberID:     req.MemberID,
		BookID:       req.BookID,
		Quantity:     req.Quantity,
		DueDate:      req.DueDate,
		Observations: req.Observations,
	}, start)
	if err != nil {
		return nil, err
	}

	// 2. 外键检查：读者、图书不存在是请求参数问题(400)
	m, err := uc.memberRepo.FindByID(ctx, req.MemberID)
	if err != nil {
		return nil, unknownReference(err, member.ErrMemberNotFound, "读者", req.MemberID)
	}
	if !m.CanBorrow() {
		return nil, member.ErrMemberInactive
	}
	b, err := uc.bookRepo.FindByID(ctx, req.BookID)
	if err != nil {
		return nil, unknownReference(err, book.ErrBookNotFound, "图书", req.BookID)
	}

	// 3. 事务：锁库存 → 借出 → 保存 → 创建借阅
	var inv *inventory.Inventory
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		inv, err = uc.inventoryRepo.LockByBookID(txCtx, l.BookID)
		if err != nil {
			return err
		}

		// 重复检查必须在持有库存行锁之后：InnoDB可重复读下，事务内第一次普通SELECT建立快照，
		// 先查再锁会让并发的两个相同借阅都看到0条记录
		exists, err := uc.loanRepo.ExistsActive(txCtx, l.MemberID, l.BookID, l.DueDate)
		if err != nil {
			return err
		}
		if exists {
			return loan.ErrDuplicateLoan
		}
		if err := inv.Lend(l.Quantity); err != nil {
			return err
		}
		if err := uc.inventoryRepo.Save(txCtx, inv); err != nil {
			return err
		}
		return uc.loanRepo.Create(txCtx, l)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("借书成功",
		zap.Uint("loan_id", l.ID),
		zap.Uint("member_id", l.MemberID),
		zap.Uint("book_id", l.BookID),
		zap.Int("quantity", l.Quantity),
		zap.Int("units_available", inv.UnitsAvailable),
	)
	publish(ctx, uc.publisher, loan.NewEvent(l, inv.UnitsAvailable))

	return &Detail{Loan: l, Member: m, Book: b, Inventory: inv}, nil
}

func unknownReference(err error, notFound error, entity string, id uint) error {
	if errors.Is(err, notFound) {
		return apperrors.ErrUnknownReference.WithMessage("%s %d 不存在", entity, id)
	}
	return err
}

// publish 事务提交后发布事件，失败只记录日志
func publish(ctx context.Context, publisher EventPublisher, event loan.Event) {
	routingKey := event.RoutingKey()
	err := publisher.Publish(ctx, routingKey, event)
	metrics.RecordEventPublished(routingKey, err)
	if err != nil {
		logger.FromContext(ctx).Error("发布借阅事件失败",
			zap.String("routing_key", routingKey),
			zap.Uint("loan_id", event.LoanID),
			zap.Error(err),
		)
	}
}

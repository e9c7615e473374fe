package inventory

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/inventory"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
)

// Operation 库存数量操作
type Operation string

const (
	OperationAddUnits Operation = "add_units" // 补货
	OperationLend     Operation = "lend"      // 借出(不产生借阅记录，柜台手工调整)
	OperationReturn   Operation = "return"    // 归还
)

// AdjustUnitsUseCase 调整库存数量
//
// 并发控制:
//  1. 事务内SELECT ... FOR UPDATE锁定库存行
//  2. 在锁定后的最新数据上执行领域行为(不变式校验)
//  3. 保存后COMMIT释放锁
//
// 两个请求同时借出最后一本时，后到的请求会等待前一个提交，
// 读到可借数量为0后被拒绝，不会超借
type AdjustUnitsUseCase struct {
	inventoryRepo inventory.Repository
	txManager     TxManager
	publisher     EventPublisher
}

// NewAdjustUnitsUseCase 创建用例
func NewAdjustUnitsUseCase(inventoryRepo inventory.Repository, txManager TxManager, publisher EventPublisher) *AdjustUnitsUseCase {
	return &AdjustUnitsUseCase{
		inventoryRepo: inventoryRepo,
		txManager:     txManager,
		publisher:     publisher,
	}
}

// Execute 对id对应的库存执行op，units必须大于0
func (uc *AdjustUnitsUseCase) Execute(ctx context.Context, id uint, op Operation, units int) (*inventory.Inventory, error) {
	var result *inventory.Inventory
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		inv, err := uc.inventoryRepo.LockByID(txCtx, id)
		if err != nil {
			return err
		}

		switch op {
		case OperationAddUnits:
			err = inv.AddUnits(units)
		case OperationLend:
			err = inv.Lend(units)
		case OperationReturn:
			err = inv.Return(units)
		default:
			err = apperrors.InvalidParams("不支持的库存操作: %s", op)
		}
		if err != nil {
			return err
		}

		if err := uc.inventoryRepo.Save(txCtx, inv); err != nil {
			return err
		}
		result = inv
		return nil
	})
	metrics.RecordInventoryOperation(string(op), err)
	if err != nil {
		return nil, err
	}

	// 事务提交后再发布，避免消费者看到回滚的数据
	if op == OperationAddUnits {
		publish(ctx, uc.publisher, inventory.RoutingKeyRestocked, inventory.NewRestockedEvent(result, units))
	}
	return result, nil
}

// publish 发布失败不影响已提交的库存修改，只记录日志
func publish(ctx context.Context, publisher EventPublisher, routingKey string, event interface{}) {
	err := publisher.Publish(ctx, routingKey, event)
	metrics.RecordEventPublished(routingKey, err)
	if err != nil {
		logger.FromContext(ctx).Error("发布库存事件失败", zap.String("routing_key", routingKey), zap.Error(err))
	}
}

package inventory

import (
	"context"

	"github.com/xiebiao/library/internal/domain/inventory"
	"github.com/xiebiao/library/pkg/metrics"
)

// DeleteInventoryUseCase 删除库存
// 仍有借出的图书时拒绝；锁定后检查，避免检查和删除之间有人借书
type DeleteInventoryUseCase struct {
	inventoryRepo inventory.Repository
	txManager     TxManager
}

// NewDeleteInventoryUseCase 创建删除用例
func NewDeleteInventoryUseCase(inventoryRepo inventory.Repository, txManager TxManager) *DeleteInventoryUseCase {
	return &DeleteInventoryUseCase{inventoryRepo: inventoryRepo, txManager: txManager}
}

// Execute 删除并返回被删除的库存
func (uc *DeleteInventoryUseCase) Execute(ctx context.Context, id uint) (*inventory.Inventory, error) {
	var removed *inventory.Inventory
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		inv, err := uc.inventoryRepo.LockByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := inv.CanDelete(); err != nil {
			return err
		}
		if err := uc.inventoryRepo.Delete(txCtx, id); err != nil {
			return err
		}
		removed = inv
		return nil
	})
	metrics.RecordInventoryOperation("delete", err)
	if err != nil {
		return nil, err
	}
	return removed, nil
}

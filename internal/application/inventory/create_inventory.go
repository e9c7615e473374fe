package inventory

import (
	"context"
	"errors"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/inventory"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/metrics"
)

// CreateInventoryUseCase 建立图书库存
// 一本书只能有一条库存记录(唯一索引兜底)
type CreateInventoryUseCase struct {
	inventoryRepo inventory.Repository
	bookRepo      book.Repository
}

// NewCreateInventoryUseCase 创建用例
func NewCreateInventoryUseCase(inventoryRepo inventory.Repository, bookRepo book.Repository) *CreateInventoryUseCase {
	return &CreateInventoryUseCase{
		inventoryRepo: inventoryRepo,
		bookRepo:      bookRepo,
	}
}

// Execute 建立库存，unitsPurchased为0时取默认值1
func (uc *CreateInventoryUseCase) Execute(ctx context.Context, bookID uint, unitsPurchased int) (inv *inventory.Inventory, err error) {
	defer func() { metrics.RecordInventoryOperation("create", err) }()

	if unitsPurchased < 0 {
		return nil, inventory.ErrInvalidUnits
	}

	inv, err = inventory.NewInventory(bookID, unitsPurchased)
	if err != nil {
		return nil, err
	}

	if _, err = uc.bookRepo.FindByID(ctx, bookID); err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			return nil, apperrors.ErrUnknownReference.WithMessage("图书 %d 不存在", bookID)
		}
		return nil, err
	}

	if err = uc.inventoryRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

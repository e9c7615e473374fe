package inventory

import (
	"context"

	"github.com/xiebiao/library/internal/domain/inventory"
	"github.com/xiebiao/library/pkg/pagination"
)

// GetInventoryUseCase 库存查询
type GetInventoryUseCase struct {
	inventoryRepo inventory.Repository
}

// NewGetInventoryUseCase 创建查询用例
func NewGetInventoryUseCase(inventoryRepo inventory.Repository) *GetInventoryUseCase {
	return &GetInventoryUseCase{inventoryRepo: inventoryRepo}
}

// Execute 按库存ID查询
func (uc *GetInventoryUseCase) Execute(ctx context.Context, id uint) (*inventory.Inventory, error) {
	return uc.inventoryRepo.FindByID(ctx, id)
}

// ExecuteByBook 按图书ID查询
func (uc *GetInventoryUseCase) ExecuteByBook(ctx context.Context, bookID uint) (*inventory.Inventory, error) {
	return uc.inventoryRepo.FindByBookID(ctx, bookID)
}

// ListInventoriesUseCase 库存列表
type ListInventoriesUseCase struct {
	inventoryRepo inventory.Repository
}

// NewListInventoriesUseCase 创建列表用例
func NewListInventoriesUseCase(inventoryRepo inventory.Repository) *ListInventoriesUseCase {
	return &ListInventoriesUseCase{inventoryRepo: inventoryRepo}
}

// ListInventoriesRequest 列表请求
type ListInventoriesRequest struct {
	Page          int
	PageSize      int
	OnlyAvailable bool
}

// ListInventoriesResponse 列表响应
type ListInventoriesResponse struct {
	List     []*inventory.Inventory
	Total    int64
	Page     int
	PageSize int
}

// Execute 分页查询
func (uc *ListInventoriesUseCase) Execute(ctx context.Context, req ListInventoriesRequest) (*ListInventoriesResponse, error) {
	page, pageSize, _ := pagination.Normalize(req.Page, req.PageSize)
	list, total, err := uc.inventoryRepo.List(ctx, inventory.ListParams{
		Page:          page,
		PageSize:      pageSize,
		OnlyAvailable: req.OnlyAvailable,
	})
	if err != nil {
		return nil, err
	}
	return &ListInventoriesResponse{List: list, Total: total, Page: page, PageSize: pageSize}, nil
}

package dto

import (
	"github.com/xiebiao/library/internal/domain/inventory"
)

// CreateInventoryRequest 创建库存请求
// units_purchased未填写时为1
type CreateInventoryRequest struct {
	BookID         uint `json:"book_id" binding:"required" example:"1"`
	UnitsPurchased *int `json:"units_purchased" binding:"omitempty,min=0" example:"5"`
}

// Units 采购数量，未填写取默认值
func (r CreateInventoryRequest) Units() int {
	if r.UnitsPurchased == nil {
		return inventory.DefaultUnitsPurchased
	}
	return *r.UnitsPurchased
}

// UnitsRequest 增加、借出、归还数量请求
type UnitsRequest struct {
	Units int `json:"units" binding:"required,min=1" example:"1"`
}

// ListInventoriesQuery 库存列表查询参数
type ListInventoriesQuery struct {
	Page          int  `form:"page" binding:"omitempty,min=1"`
	PageSize      int  `form:"page_size" binding:"omitempty,min=1,max=100"`
	OnlyAvailable bool `form:"only_available"`
}

// InventoryResponse 库存响应
type InventoryResponse struct {
	ID             uint   `json:"id" example:"1"`
	BookID         uint   `json:"book_id" example:"1"`
	UnitsPurchased int    `json:"units_purchased" example:"5"`
	LoanedUnits    int    `json:"loaned_units" example:"2"`
	UnitsAvailable int    `json:"units_available" example:"3"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// NewInventoryResponse 领域实体 → 响应
func NewInventoryResponse(inv *inventory.Inventory) *InventoryResponse {
	if inv == nil {
		return nil
	}
	return &InventoryResponse{
		ID:             inv.ID,
		BookID:         inv.BookID,
		UnitsPurchased: inv.UnitsPurchased,
		LoanedUnits:    inv.LoanedUnits,
		UnitsAvailable: inv.UnitsAvailable,
		CreatedAt:      formatTime(inv.CreatedAt),
		UpdatedAt:      formatTime(inv.UpdatedAt),
	}
}

// NewInventoryList 批量转换
func NewInventoryList(list []*inventory.Inventory) []*InventoryResponse {
	out := make([]*InventoryResponse, len(list))
	for i, inv := range list {
		out[i] = NewInventoryResponse(inv)
	}
	return out
}

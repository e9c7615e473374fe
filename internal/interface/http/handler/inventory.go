package handler

import (
	"github.com/gin-gonic/gin"

	appinventory "github.com/xiebiao/library/internal/application/inventory"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// InventoryHandler 库存HTTP处理器
type InventoryHandler struct {
	createUseCase *appinventory.CreateInventoryUseCase
	getUseCase    *appinventory.GetInventoryUseCase
	listUseCase   *appinventory.ListInventoriesUseCase
	adjustUseCase *appinventory.AdjustUnitsUseCase
	deleteUseCase *appinventory.DeleteInventoryUseCase
}

// NewInventoryHandler 创建库存处理器
func NewInventoryHandler(
	createUseCase *appinventory.CreateInventoryUseCase,
	getUseCase *appinventory.GetInventoryUseCase,
	listUseCase *appinventory.ListInventoriesUseCase,
	adjustUseCase *appinventory.AdjustUnitsUseCase,
	deleteUseCase *appinventory.DeleteInventoryUseCase,
) *InventoryHandler {
	return &InventoryHandler{
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
		adjustUseCase: adjustUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create 创建库存
// @Summary      创建库存
// @Description  一本书只能有一条库存记录
// @Tags         库存
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateInventoryRequest true "库存信息"
// @Success      201 {object} response.Response{data=dto.InventoryResponse}
// @Failure      400 {object} response.Response "图书不存在或已有库存"
// @Router       /api/v1/inventories [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	var req dto.CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	inv, err := h.createUseCase.Execute(c.Request.Context(), req.BookID, req.Units())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewInventoryResponse(inv))
}

// List 库存列表
// @Summary      库存列表
// @Tags         库存
// @Produce      json
// @Param        page           query int  false "页码"
// @Param        page_size      query int  false "每页数量"
// @Param        only_available query bool false "只看有可借数量的"
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.InventoryResponse}}
// @Router       /api/v1/inventories [get]
func (h *InventoryHandler) List(c *gin.Context) {
	var q dto.ListInventoriesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), appinventory.ListInventoriesRequest{
		Page:          q.Page,
		PageSize:      q.PageSize,
		OnlyAvailable: q.OnlyAvailable,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.NewInventoryList(result.List), result.Total, result.Page, result.PageSize)
}

// Get 库存详情
// @Summary      库存详情
// @Tags         库存
// @Produce      json
// @Param        id path int true "库存ID"
// @Success      200 {object} response.Response{data=dto.InventoryResponse}
// @Failure      404 {object} response.Response "库存不存在"
// @Router       /api/v1/inventories/{id} [get]
func (h *InventoryHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	inv, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewInventoryResponse(inv))
}

// GetByBook 按图书查询库存
// @Summary      按图书查询库存
// @Tags         库存
// @Produce      json
// @Param        bookId path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.InventoryResponse}
// @Failure      404 {object} response.Response "该图书没有库存"
// @Router       /api/v1/inventories/book/{bookId} [get]
func (h *InventoryHandler) GetByBook(c *gin.Context) {
	bookID, ok := pathID(c, "bookId")
	if !ok {
		return
	}
	inv, err := h.getUseCase.ExecuteByBook(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewInventoryResponse(inv))
}

// AddUnits 补货
// @Summary      增加采购数量
// @Tags         库存
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int              true "库存ID"
// @Param        request body dto.UnitsRequest true "数量"
// @Success      200 {object} response.Response{data=dto.InventoryResponse}
// @Router       /api/v1/inventories/{id}/add-units [patch]
func (h *InventoryHandler) AddUnits(c *gin.Context) {
	h.adjust(c, appinventory.OperationAddUnits)
}

// Lend 直接借出数量(不生成借阅记录)
// @Summary      借出数量
// @Description  可借数量为0时返回400
// @Tags         库存
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int              true "库存ID"
// @Param        request body dto.UnitsRequest true "数量"
// @Success      200 {object} response.Response{data=dto.InventoryResponse}
// @Failure      400 {object} response.Response "无可借数量"
// @Router       /api/v1/inventories/{id}/lend [patch]
func (h *InventoryHandler) Lend(c *gin.Context) {
	h.adjust(c, appinventory.OperationLend)
}

// Return 直接归还数量
// @Summary      归还数量
// @Description  归还后借出数量不能为负
// @Tags         库存
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int              true "库存ID"
// @Param        request body dto.UnitsRequest true "数量"
// @Success      200 {object} response.Response{data=dto.InventoryResponse}
// @Failure      400 {object} response.Response "归还数量超过借出数量"
// @Router       /api/v1/inventories/{id}/return [patch]
func (h *InventoryHandler) Return(c *gin.Context) {
	h.adjust(c, appinventory.OperationReturn)
}

func (h *InventoryHandler) adjust(c *gin.Context, op appinventory.Operation) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UnitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	inv, err := h.adjustUseCase.Execute(c.Request.Context(), id, op, req.Units)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewInventoryResponse(inv))
}

// Delete 删除库存
// @Summary      删除库存
// @Description  仍有借出数量时不能删除
// @Tags         库存
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "库存ID"
// @Success      200 {object} response.Response{data=dto.InventoryResponse}
// @Failure      400 {object} response.Response "仍有借出数量"
// @Failure      404 {object} response.Response "库存不存在"
// @Router       /api/v1/inventories/{id} [delete]
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	inv, err := h.deleteUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewInventoryResponse(inv))
}

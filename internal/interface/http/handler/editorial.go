package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/domain/editorial"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// EditorialHandler 出版社HTTP处理器
type EditorialHandler struct {
	editorialService editorial.Service
}

// NewEditorialHandler 创建出版社处理器
func NewEditorialHandler(editorialService editorial.Service) *EditorialHandler {
	return &EditorialHandler{editorialService: editorialService}
}

// Create 创建出版社
// @Summary      创建出版社
// @Tags         出版社
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateEditorialRequest true "出版社信息"
// @Success      201 {object} response.Response{data=dto.EditorialResponse}
// @Failure      400 {object} response.Response "参数错误或名称重复"
// @Router       /api/v1/editorials [post]
func (h *EditorialHandler) Create(c *gin.Context) {
	var req dto.CreateEditorialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	e, err := h.editorialService.CreateEditorial(c.Request.Context(), req.Name, req.Description, editorial.Status(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewEditorialResponse(e))
}

// List 出版社列表
// @Summary      出版社列表
// @Tags         出版社
// @Produce      json
// @Param        page      query int    false "页码"
// @Param        page_size query int    false "每页数量"
// @Param        keyword   query string false "按名称搜索"
// @Param        status    query string false "active或inactive"
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.EditorialResponse}}
// @Router       /api/v1/editorials [get]
func (h *EditorialHandler) List(c *gin.Context) {
	var q dto.StatusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	p, size := page(q.Page, q.PageSize)

	list, total, err := h.editorialService.ListEditorials(c.Request.Context(), editorial.ListParams{
		Page: p, PageSize: size, Keyword: q.Keyword, Status: editorial.Status(q.Status),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.NewEditorialList(list), total, p, size)
}

// Get 出版社详情
// @Summary      出版社详情
// @Tags         出版社
// @Produce      json
// @Param        id path int true "出版社ID"
// @Success      200 {object} response.Response{data=dto.EditorialResponse}
// @Failure      404 {object} response.Response "出版社不存在"
// @Router       /api/v1/editorials/{id} [get]
func (h *EditorialHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	e, err := h.editorialService.GetEditorial(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewEditorialResponse(e))
}

// Update 修改出版社
// @Summary      修改出版社(部分更新)
// @Tags         出版社
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                       true "出版社ID"
// @Param        request body dto.UpdateEditorialRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=dto.EditorialResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "出版社不存在"
// @Router       /api/v1/editorials/{id} [patch]
func (h *EditorialHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateEditorialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	e, err := h.editorialService.UpdateEditorial(c.Request.Context(), id, req.Fields())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewEditorialResponse(e))
}

// Delete 删除出版社
// @Summary      删除出版社
// @Tags         出版社
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "出版社ID"
// @Success      200 {object} response.Response{data=dto.EditorialResponse}
// @Failure      400 {object} response.Response "仍被图书引用"
// @Failure      404 {object} response.Response "出版社不存在"
// @Router       /api/v1/editorials/{id} [delete]
func (h *EditorialHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	e, err := h.editorialService.DeleteEditorial(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewEditorialResponse(e))
}

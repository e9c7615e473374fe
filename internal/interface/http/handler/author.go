package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	authorService author.Service
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(authorService author.Service) *AuthorHandler {
	return &AuthorHandler{authorService: authorService}
}

// Create 创建作者
// @Summary      创建作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateAuthorRequest true "作者信息"
// @Success      201 {object} response.Response{data=dto.AuthorResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/authors [post]
func (h *AuthorHandler) Create(c *gin.Context) {
	var req dto.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	a, err := h.authorService.CreateAuthor(c.Request.Context(), req.FirstName, req.LastName, req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewAuthorResponse(a))
}

// List 作者列表
// @Summary      作者列表
// @Tags         作者
// @Produce      json
// @Param        page      query int    false "页码"
// @Param        page_size query int    false "每页数量"
// @Param        keyword   query string false "按姓名、邮箱搜索"
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.AuthorResponse}}
// @Router       /api/v1/authors [get]
func (h *AuthorHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	p, size := page(q.Page, q.PageSize)

	list, total, err := h.authorService.ListAuthors(c.Request.Context(), author.ListParams{
		Page: p, PageSize: size, Keyword: q.Keyword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.NewAuthorList(list), total, p, size)
}

// Get 作者详情
// @Summary      作者详情
// @Tags         作者
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [get]
func (h *AuthorHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, err := h.authorService.GetAuthor(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthorResponse(a))
}

// Update 修改作者
// @Summary      修改作者(部分更新)
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                     true "作者ID"
// @Param        request body dto.UpdateAuthorRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [patch]
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	a, err := h.authorService.UpdateAuthor(c.Request.Context(), id, req.Fields())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthorResponse(a))
}

// Delete 删除作者，返回被删除的记录
// @Summary      删除作者
// @Description  仍有图书引用该作者时返回400
// @Tags         作者
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Failure      400 {object} response.Response "仍被图书引用"
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [delete]
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, err := h.authorService.DeleteAuthor(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthorResponse(a))
}

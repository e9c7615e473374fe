package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// MemberHandler 读者HTTP处理器，对外路径为/users
type MemberHandler struct {
	memberService member.Service
}

// NewMemberHandler 创建读者处理器
func NewMemberHandler(memberService member.Service) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// Create 登记读者
// @Summary      登记读者
// @Tags         读者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateMemberRequest true "读者信息"
// @Success      201 {object} response.Response{data=dto.MemberResponse}
// @Failure      400 {object} response.Response "参数错误、证件号或邮箱重复"
// @Router       /api/v1/users [post]
func (h *MemberHandler) Create(c *gin.Context) {
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	m, err := h.memberService.RegisterMember(c.Request.Context(),
		req.FirstName, req.LastName, req.Identification, req.Email, req.Observations, member.Status(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewMemberResponse(m))
}

// List 读者列表
// @Summary      读者列表
// @Tags         读者
// @Produce      json
// @Param        page      query int    false "页码"
// @Param        page_size query int    false "每页数量"
// @Param        keyword   query string false "按姓名、证件号、邮箱搜索"
// @Param        status    query string false "active或inactive"
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.MemberResponse}}
// @Router       /api/v1/users [get]
func (h *MemberHandler) List(c *gin.Context) {
	var q dto.StatusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	p, size := page(q.Page, q.PageSize)

	list, total, err := h.memberService.ListMembers(c.Request.Context(), member.ListParams{
		Page: p, PageSize: size, Keyword: q.Keyword, Status: member.Status(q.Status),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.NewMemberList(list), total, p, size)
}

// Get 读者详情
// @Summary      读者详情
// @Tags         读者
// @Produce      json
// @Param        id path int true "读者ID"
// @Success      200 {object} response.Response{data=dto.MemberResponse}
// @Failure      404 {object} response.Response "读者不存在"
// @Router       /api/v1/users/{id} [get]
func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	m, err := h.memberService.GetMember(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewMemberResponse(m))
}

// GetByIdentification 按证件号查询读者
// @Summary      按证件号查询读者
// @Tags         读者
// @Produce      json
// @Param        identification path string true "证件号"
// @Success      200 {object} response.Response{data=dto.MemberResponse}
// @Failure      404 {object} response.Response "读者不存在"
// @Router       /api/v1/users/identification/{identification} [get]
func (h *MemberHandler) GetByIdentification(c *gin.Context) {
	m, err := h.memberService.GetMemberByIdentification(c.Request.Context(), c.Param("identification"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewMemberResponse(m))
}

// Update 修改读者
// @Summary      修改读者(部分更新)
// @Tags         读者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                     true "读者ID"
// @Param        request body dto.UpdateMemberRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=dto.MemberResponse}
// @Failure      400 {object} response.Response "参数错误、证件号或邮箱重复"
// @Failure      404 {object} response.Response "读者不存在"
// @Router       /api/v1/users/{id} [patch]
func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	m, err := h.memberService.UpdateMember(c.Request.Context(), id, req.Fields())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewMemberResponse(m))
}

// Delete 删除读者
// @Summary      删除读者
// @Description  有借阅记录的读者不能删除，可改为停用
// @Tags         读者
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "读者ID"
// @Success      200 {object} response.Response{data=dto.MemberResponse}
// @Failure      400 {object} response.Response "仍有借阅记录"
// @Failure      404 {object} response.Response "读者不存在"
// @Router       /api/v1/users/{id} [delete]
func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	m, err := h.memberService.DeleteMember(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewMemberResponse(m))
}

package handler

import (
	"github.com/gin-gonic/gin"

	apploan "github.com/xiebiao/library/internal/application/loan"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// LoanHandler 借阅HTTP处理器
type LoanHandler struct {
	lendUseCase   *apploan.LendBookUseCase
	returnUseCase *apploan.ReturnBookUseCase
	getUseCase    *apploan.GetLoanUseCase
	listUseCase   *apploan.ListLoansUseCase
}

// NewLoanHandler 创建借阅处理器
func NewLoanHandler(
	lendUseCase *apploan.LendBookUseCase,
	returnUseCase *apploan.ReturnBookUseCase,
	getUseCase *apploan.GetLoanUseCase,
	listUseCase *apploan.ListLoansUseCase,
) *LoanHandler {
	return &LoanHandler{
		lendUseCase:   lendUseCase,
		returnUseCase: returnUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
	}
}

// Lend 借书
// @Summary      借书
// @Description  读者必须启用，图书必须有库存；同一读者同一本书同一应还日期不能重复借
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.LendBookRequest true "借阅信息"
// @Success      201 {object} response.Response{data=dto.LoanDetailResponse}
// @Failure      400 {object} response.Response "参数错误、无可借数量或重复借阅"
// @Failure      404 {object} response.Response "图书没有库存"
// @Router       /api/v1/loans [post]
func (h *LoanHandler) Lend(c *gin.Context) {
	var req dto.LendBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	ucReq, err := req.ToUseCase()
	if err != nil {
		response.Error(c, err)
		return
	}

	detail, err := h.lendUseCase.Execute(c.Request.Context(), ucReq)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewLoanDetailResponse(detail))
}

// Return 还书
// @Summary      还书
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅ID"
// @Success      200 {object} response.Response{data=dto.LoanResponse}
// @Failure      400 {object} response.Response "已归还"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/loans/{id}/return [patch]
func (h *LoanHandler) Return(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	l, err := h.returnUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewLoanResponse(l))
}

// Get 借阅详情
// @Summary      借阅详情
// @Tags         借阅
// @Produce      json
// @Param        id path int true "借阅ID"
// @Success      200 {object} response.Response{data=dto.LoanDetailResponse}
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/loans/{id} [get]
func (h *LoanHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewLoanDetailResponse(detail))
}

// List 借阅列表
// @Summary      借阅列表
// @Tags         借阅
// @Produce      json
// @Param        page      query int    false "页码"
// @Param        page_size query int    false "每页数量"
// @Param        state     query string false "lent或returned"
// @Param        member_id query int    false "读者ID"
// @Param        book_id   query int    false "图书ID"
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.LoanDetailResponse}}
// @Router       /api/v1/loans [get]
func (h *LoanHandler) List(c *gin.Context) {
	var q dto.ListLoansQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), q.ToUseCase())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.NewLoanDetailList(result.List), result.Total, result.Page, result.PageSize)
}

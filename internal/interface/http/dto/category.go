package dto

import (
	"github.com/xiebiao/library/internal/domain/category"
)

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=100" example:"Realismo mágico"`
	Description string `json:"description" binding:"max=500"`
	Status      string `json:"status" binding:"omitempty" example:"active"`
}

// UpdateCategoryRequest 修改分类请求
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Status      *string `json:"status"`
}

// Fields 转换为领域层的部分更新
// 状态值的合法性由领域层校验(返回枚举值不合法)
func (r UpdateCategoryRequest) Fields() category.UpdateFields {
	f := category.UpdateFields{Name: r.Name, Description: r.Description}
	if r.Status != nil {
		s := category.Status(*r.Status)
		f.Status = &s
	}
	return f
}

// CategoryResponse 分类响应
type CategoryResponse struct {
	ID          uint   `json:"id" example:"1"`
	Name        string `json:"name" example:"Realismo mágico"`
	Description string `json:"description"`
	Status      string `json:"status" example:"active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// NewCategoryResponse 领域实体 → 响应
func NewCategoryResponse(c *category.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Status:      string(c.Status),
		CreatedAt:   formatTime(c.CreatedAt),
		UpdatedAt:   formatTime(c.UpdatedAt),
	}
}

// NewCategoryList 批量转换
func NewCategoryList(list []*category.Category) []*CategoryResponse {
	out := make([]*CategoryResponse, len(list))
	for i, c := range list {
		out[i] = NewCategoryResponse(c)
	}
	return out
}

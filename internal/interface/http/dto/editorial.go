package dto

import (
	"github.com/xiebiao/library/internal/domain/editorial"
)

// CreateEditorialRequest 创建出版社请求
type CreateEditorialRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=100" example:"Sudamericana"`
	Description string `json:"description" binding:"max=500"`
	Status      string `json:"status" binding:"omitempty" example:"active"`
}

// UpdateEditorialRequest 修改出版社请求
type UpdateEditorialRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Status      *string `json:"status"`
}

// Fields 转换为领域层的部分更新
// 状态值的合法性由领域层校验(返回枚举值不合法)
func (r UpdateEditorialRequest) Fields() editorial.UpdateFields {
	f := editorial.UpdateFields{Name: r.Name, Description: r.Description}
	if r.Status != nil {
		s := editorial.Status(*r.Status)
		f.Status = &s
	}
	return f
}

// EditorialResponse 出版社响应
type EditorialResponse struct {
	ID          uint   `json:"id" example:"1"`
	Name        string `json:"name" example:"Sudamericana"`
	Description string `json:"description"`
	Status      string `json:"status" example:"active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// NewEditorialResponse 领域实体 → 响应
func NewEditorialResponse(e *editorial.Editorial) *EditorialResponse {
	if e == nil {
		return nil
	}
	return &EditorialResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Status:      string(e.Status),
		CreatedAt:   formatTime(e.CreatedAt),
		UpdatedAt:   formatTime(e.UpdatedAt),
	}
}

// NewEditorialList 批量转换
func NewEditorialList(list []*editorial.Editorial) []*EditorialResponse {
	out := make([]*EditorialResponse, len(list))
	for i, e := range list {
		out[i] = NewEditorialResponse(e)
	}
	return out
}

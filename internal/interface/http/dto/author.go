package dto

import (
	"github.com/xiebiao/library/internal/domain/author"
)

// CreateAuthorRequest 创建作者请求
type CreateAuthorRequest struct {
	FirstName string `json:"first_name" binding:"required,min=3,max=100" example:"Gabriel"`
	LastName  string `json:"last_name" binding:"required,min=3,max=100" example:"García Márquez"`
	Email     string `json:"email" binding:"omitempty,email,max=100" example:"gabo@macondo.co"`
}

// UpdateAuthorRequest 修改作者请求，未提供的字段不修改
type UpdateAuthorRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=3,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,min=3,max=100"`
	Email     *string `json:"email" binding:"omitempty,max=100"`
}

// Fields 转换为领域层的部分更新
func (r UpdateAuthorRequest) Fields() author.UpdateFields {
	return author.UpdateFields{FirstName: r.FirstName, LastName: r.LastName, Email: r.Email}
}

// AuthorResponse 作者响应
type AuthorResponse struct {
	ID        uint   `json:"id" example:"1"`
	FirstName string `json:"first_name" example:"Gabriel"`
	LastName  string `json:"last_name" example:"García Márquez"`
	Email     string `json:"email" example:"gabo@macondo.co"`
	CreatedAt string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt string `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// NewAuthorResponse 领域实体 → 响应
func NewAuthorResponse(a *author.Author) *AuthorResponse {
	if a == nil {
		return nil
	}
	return &AuthorResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		CreatedAt: formatTime(a.CreatedAt),
		UpdatedAt: formatTime(a.UpdatedAt),
	}
}

// NewAuthorList 批量转换
func NewAuthorList(list []*author.Author) []*AuthorResponse {
	out := make([]*AuthorResponse, len(list))
	for i, a := range list {
		out[i] = NewAuthorResponse(a)
	}
	return out
}

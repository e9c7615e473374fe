package dto

import (
	"github.com/xiebiao/library/internal/domain/member"
)

// CreateMemberRequest 登记读者请求(对外路径为/users)
type CreateMemberRequest struct {
	FirstName      string `json:"first_name" binding:"required,min=3,max=100" example:"Clara"`
	LastName       string `json:"last_name" binding:"required,min=3,max=100" example:"del Valle"`
	Identification string `json:"identification" binding:"required,min=6,max=30" example:"1020304050"`
	Email          string `json:"email" binding:"required,email,max=100" example:"clara@library.org"`
	Observations   string `json:"observations" binding:"max=500"`
	Status         string `json:"status" example:"active"`
}

// UpdateMemberRequest 修改读者请求
type UpdateMemberRequest struct {
	FirstName      *string `json:"first_name" binding:"omitempty,min=3,max=100"`
	LastName       *string `json:"last_name" binding:"omitempty,min=3,max=100"`
	Identification *string `json:"identification" binding:"omitempty,min=6,max=30"`
	Email          *string `json:"email" binding:"omitempty,email,max=100"`
	Observations   *string `json:"observations" binding:"omitempty,max=500"`
	Status         *string `json:"status"`
}

// Fields 转换为领域层的部分更新
func (r UpdateMemberRequest) Fields() member.UpdateFields {
	f := member.UpdateFields{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Identification: r.Identification,
		Email:          r.Email,
		Observations:   r.Observations,
	}
	if r.Status != nil {
		s := member.Status(*r.Status)
		f.Status = &s
	}
	return f
}

// MemberResponse 读者响应
type MemberResponse struct {
	ID             uint   `json:"id" example:"1"`
	FirstName      string `json:"first_name" example:"Clara"`
	LastName       string `json:"last_name" example:"del Valle"`
	Identification string `json:"identification" example:"1020304050"`
	Email          string `json:"email" example:"clara@library.org"`
	Observations   string `json:"observations" example:"Sin observaciones"`
	Status         string `json:"status" example:"active"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// NewMemberResponse 领域实体 → 响应
func NewMemberResponse(m *member.Member) *MemberResponse {
	if m == nil {
		return nil
	}
	return &MemberResponse{
		ID:             m.ID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Identification: m.Identification,
		Email:          m.Email,
		Observations:   m.Observations,
		Status:         string(m.Status),
		CreatedAt:      formatTime(m.CreatedAt),
		UpdatedAt:      formatTime(m.UpdatedAt),
	}
}

// NewMemberList 批量转换
func NewMemberList(list []*member.Member) []*MemberResponse {
	out := make([]*MemberResponse, len(list))
	for i, m := range list {
		out[i] = NewMemberResponse(m)
	}
	return out
}

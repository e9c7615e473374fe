package dto

import (
	appauth "github.com/xiebiao/library/internal/application/auth"
)

// RegisterRequest 管理员注册请求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"librarian@library.org"`
	Password string `json:"password" binding:"required,min=8,max=32" example:"Library123"`
	Nickname string `json:"nickname" binding:"required,min=2,max=50" example:"图书管理员"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"librarian@library.org"`
	Password string `json:"password" binding:"required" example:"Library123"`
}

// RefreshRequest 刷新Token请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// StaffResponse 管理员信息
type StaffResponse struct {
	ID       uint   `json:"id" example:"1"`
	Email    string `json:"email" example:"librarian@library.org"`
	Nickname string `json:"nickname" example:"图书管理员"`
}

// NewStaffResponse 用例结果 → 响应
func NewStaffResponse(s *appauth.StaffInfo) *StaffResponse {
	return &StaffResponse{ID: s.ID, Email: s.Email, Nickname: s.Nickname}
}

// LoginResponse 登录响应
type LoginResponse struct {
	Staff        *StaffResponse `json:"staff"`
	AccessToken  string         `json:"access_token" example:"eyJhbGciOiJIUzI1NiIs..."`
	RefreshToken string         `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIs..."`
	TokenType    string         `json:"token_type" example:"Bearer"`
	ExpiresIn    int64          `json:"expires_in" example:"7200"`
}

// NewLoginResponse 用例结果 → 响应
func NewLoginResponse(r *appauth.LoginResponse) *LoginResponse {
	return &LoginResponse{
		Staff:        NewStaffResponse(&r.Staff),
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    r.ExpiresIn,
	}
}

// RefreshResponse 刷新响应
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"Bearer"`
	ExpiresIn   int64  `json:"expires_in" example:"7200"`
}

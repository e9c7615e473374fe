package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/staff"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/logger"
)

// LoginUseCase 管理员登录用例
// 1. 验证邮箱密码
// 2. 生成JWT Token对
// 3. 保存会话，有效期与Refresh Token一致
type LoginUseCase struct {
	staffService staff.Service
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(staffService staff.Service, jwtManager *jwt.Manager, sessionStore SessionStore) *LoginUseCase {
	return &LoginUseCase{
		staffService: staffService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
	ClientIP string
}

// LoginResponse 登录响应
type LoginResponse struct {
	Staff        StaffInfo
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // Access Token过期时间（秒）
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	s, err := uc.staffService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	tokenPair, err := uc.jwtManager.GenerateToken(s.ID, s.Email, s.Nickname)
	if err != nil {
		return nil, err
	}

	sessionData := map[string]interface{}{
		"staff_id": s.ID,
		"email":    s.Email,
		"nickname": s.Nickname,
		"login_at": time.Now().Unix(),
		"ip":       req.ClientIP,
	}
	// 会话保存失败不影响登录，但刷新Token时会要求重新登录
	if err := uc.sessionStore.SaveSession(ctx, s.ID, sessionData, uc.jwtManager.RefreshTokenTTL()); err != nil {
		logger.FromContext(ctx).Warn("保存登录会话失败", zap.Uint("staff_id", s.ID), zap.Error(err))
	}

	return &LoginResponse{
		Staff: StaffInfo{
			ID:       s.ID,
			Email:    s.Email,
			Nickname: s.Nickname,
		},
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 登出用例
type LogoutUseCase struct {
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(jwtManager *jwt.Manager, sessionStore SessionStore) *LogoutUseCase {
	return &LogoutUseCase{jwtManager: jwtManager, sessionStore: sessionStore}
}

// Execute 执行登出
// 1. 删除会话(之后Refresh Token无法再换发)
// 2. Access Token加入黑名单，有效期为Token剩余时间
func (uc *LogoutUseCase) Execute(ctx context.Context, accessToken string) error {
	claims, err := uc.jwtManager.ParseToken(accessToken)
	if err != nil {
		return err
	}

	if err := uc.sessionStore.DeleteSession(ctx, claims.StaffID); err != nil {
		return err
	}

	ttl := uc.jwtManager.AccessTokenTTL()
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, ttl)
}

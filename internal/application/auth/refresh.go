package auth

import (
	"context"

	"github.com/xiebiao/library/pkg/jwt"
)

// RefreshTokenUseCase 使用Refresh Token换发Access Token
// 会话已删除(登出)时拒绝换发
type RefreshTokenUseCase struct {
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

// NewRefreshTokenUseCase 创建刷新用例
func NewRefreshTokenUseCase(jwtManager *jwt.Manager, sessionStore SessionStore) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{jwtManager: jwtManager, sessionStore: sessionStore}
}

// RefreshResponse 刷新响应
type RefreshResponse struct {
	AccessToken string
	ExpiresIn   int64
}

// Execute 执行刷新
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	accessToken, err := uc.jwtManager.RefreshAccessToken(refreshToken)
	if err != nil {
		return nil, err
	}

	claims, err := uc.jwtManager.ParseToken(accessToken)
	if err != nil {
		return nil, err
	}
	if _, err := uc.sessionStore.GetSession(ctx, claims.StaffID); err != nil {
		return nil, err
	}

	return &RefreshResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(uc.jwtManager.AccessTokenTTL().Seconds()),
	}, nil
}

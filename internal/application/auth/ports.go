package auth

import (
	"context"
	"time"
)

// SessionStore 登录会话存储(redis.SessionStore)
type SessionStore interface {
	SaveSession(ctx context.Context, staffID uint, data map[string]interface{}, ttl time.Duration) error
	GetSession(ctx context.Context, staffID uint) (map[string]string, error)
	DeleteSession(ctx context.Context, staffID uint) error
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
	IsInBlacklist(ctx context.Context, token string) (bool, error)
}

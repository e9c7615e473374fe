package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// SessionStore 管理员登录会话
// Key设计：
//   - {prefix}:session:{staff_id}  登录信息（Hash），过期时间与Refresh Token一致
//   - {prefix}:blacklist:{token}   已登出的Access Token，过期时间为Token剩余有效期
type SessionStore struct {
	client *redis.Client
	prefix string
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *redis.Client, prefix string) *SessionStore {
	return &SessionStore{client: client, prefix: prefix}
}

func (s *SessionStore) sessionKey(staffID uint) string {
	return fmt.Sprintf("%s:session:%d", s.prefix, staffID)
}

func (s *SessionStore) blacklistKey(token string) string {
	return fmt.Sprintf("%s:blacklist:%s", s.prefix, token)
}

// SaveSession 保存会话
// HSet和Expire放在一个Pipeline里，减少一次网络往返
func (s *SessionStore) SaveSession(ctx context.Context, staffID uint, data map[string]interface{}, ttl time.Duration) error {
	key := s.sessionKey(staffID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, data)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "保存会话失败")
	}
	return nil
}

// GetSession 获取会话，不存在时返回ErrUnauthorized
func (s *SessionStore) GetSession(ctx context.Context, staffID uint) (map[string]string, error) {
	result, err := s.client.HGetAll(ctx, s.sessionKey(staffID)).Result()
	if err != nil {
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "获取会话失败")
	}
	if len(result) == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	return result, nil
}

// DeleteSession 删除会话（登出）
func (s *SessionStore) DeleteSession(ctx context.Context, staffID uint) error {
	if err := s.client.Del(ctx, s.sessionKey(staffID)).Err(); err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "删除会话失败")
	}
	return nil
}

// AddToBlacklist 将Token加入黑名单
func (s *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.blacklistKey(token), "revoked", ttl).Err(); err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "添加Token到黑名单失败")
	}
	return nil
}

// IsInBlacklist 检查Token是否在黑名单中
func (s *SessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	exists, err := s.client.Exists(ctx, s.blacklistKey(token)).Result()
	if err != nil {
		return false, apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "检查黑名单失败")
	}
	return exists > 0, nil
}

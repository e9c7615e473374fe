package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// JSONCache 基于Redis的JSON缓存（Cache-Aside）
// 读：先查缓存，未命中再查数据库并回填
// 写：更新数据库后删除缓存，而不是更新缓存
type JSONCache struct {
	client *redis.Client
}

// NewJSONCache 创建缓存
func NewJSONCache(client *redis.Client) *JSONCache {
	return &JSONCache{client: client}
}

// GetJSON 命中时反序列化到dest并返回true，未命中返回false
func (c *JSONCache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("获取缓存失败: %w", err)
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("反序列化失败: %w", err)
	}
	return true, nil
}

// SetJSON 序列化后写入，ttl为0表示不过期
func (c *JSONCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	val, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}
	if err := c.client.Set(ctx, key, val, ttl).Err(); err != nil {
		return fmt.Errorf("设置缓存失败: %w", err)
	}
	return nil
}

// Delete 删除缓存
func (c *JSONCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("删除缓存失败: %w", err)
	}
	return nil
}

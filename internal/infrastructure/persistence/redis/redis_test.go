package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/infrastructure/config"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// newTestClient 启动miniredis并返回连接它的客户端
func newTestClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := &config.Config{Redis: config.RedisConfig{
		Host: mr.Host(), Port: port, PoolSize: 2, DialTimeout: time.Second,
		ReadTimeout: time.Second, WriteTimeout: time.Second,
	}}
	client, err := NewClient(cfg, zap.NewNop())
	require.NoError(t, err)
	defer client.Close()

	mr.Close()
	_, err = NewClient(cfg, zap.NewNop())
	assert.Error(t, err, "Redis不可用时启动失败")
}

func TestJSONCache(t *testing.T) {
	client, mr := newTestClient(t)
	cache := NewJSONCache(client)
	ctx := context.Background()

	type detail struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}

	var got detail
	hit, err := cache.GetJSON(ctx, "library:book:1", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.SetJSON(ctx, "library:book:1", detail{ID: 1, Name: "Cien años de soledad"}, time.Minute))
	assert.Equal(t, time.Minute, mr.TTL("library:book:1"))

	hit, err = cache.GetJSON(ctx, "library:book:1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "Cien años de soledad", got.Name)

	require.NoError(t, cache.Delete(ctx, "library:book:1"))
	hit, err = cache.GetJSON(ctx, "library:book:1", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	t.Run("过期", func(t *testing.T) {
		require.NoError(t, cache.SetJSON(ctx, "library:book:2", detail{ID: 2}, time.Minute))
		mr.FastForward(time.Minute)

		hit, err := cache.GetJSON(ctx, "library:book:2", &got)
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("缓存内容损坏", func(t *testing.T) {
		require.NoError(t, mr.Set("library:book:3", "{not-json"))
		_, err := cache.GetJSON(ctx, "library:book:3", &got)
		assert.Error(t, err)
	})

	t.Run("空Key列表", func(t *testing.T) {
		assert.NoError(t, cache.Delete(ctx))
	})
}

func TestSessionStore(t *testing.T) {
	client, mr := newTestClient(t)
	store := NewSessionStore(client, "library-test")
	ctx := context.Background()

	_, err := store.GetSession(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	require.NoError(t, store.SaveSession(ctx, 1, map[string]interface{}{
		"email": "admin@library.local", "staff_id": uint(1), "login_at": int64(1700000000),
	}, time.Hour))
	assert.Equal(t, time.Hour, mr.TTL("library-test:session:1"))

	session, err := store.GetSession(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "admin@library.local", session["email"])
	assert.Equal(t, "1", session["staff_id"])

	// 重新登录覆盖旧会话，不残留旧字段
	require.NoError(t, store.SaveSession(ctx, 1, map[string]interface{}{"email": "admin@library.local"}, time.Hour))
	session, err = store.GetSession(ctx, 1)
	require.NoError(t, err)
	assert.NotContains(t, session, "login_at")

	require.NoError(t, store.DeleteSession(ctx, 1))
	_, err = store.GetSession(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	t.Run("会话过期", func(t *testing.T) {
		require.NoError(t, store.SaveSession(ctx, 2, map[string]interface{}{"email": "desk@library.local"}, time.Minute))
		mr.FastForward(time.Minute)
		_, err := store.GetSession(ctx, 2)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestSessionStore_Blacklist(t *testing.T) {
	client, mr := newTestClient(t)
	store := NewSessionStore(client, "library-test")
	ctx := context.Background()

	require.NoError(t, store.AddToBlacklist(ctx, "token-a", time.Minute))
	revoked, err := store.IsInBlacklist(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsInBlacklist(ctx, "token-b")
	require.NoError(t, err)
	assert.False(t, revoked)

	// Token过期后黑名单记录随之失效
	mr.FastForward(time.Minute)
	revoked, err = store.IsInBlacklist(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	// 已过期的Token不需要加入黑名单
	require.NoError(t, store.AddToBlacklist(ctx, "token-c", 0))
	assert.False(t, mr.Exists("library-test:blacklist:token-c"))
}

func TestSessionStore_RedisDown(t *testing.T) {
	client, mr := newTestClient(t)
	store := NewSessionStore(client, "library-test")
	mr.Close()

	_, err := store.IsInBlacklist(context.Background(), "token-a")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeRedisError))

	err = store.SaveSession(context.Background(), 1, map[string]interface{}{"email": "a@b.co"}, time.Minute)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeRedisError))
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeBlacklist struct {
	tokens map[string]bool
	err    error
}

func (f *fakeBlacklist) IsInBlacklist(_ context.Context, token string) (bool, error) {
	return f.tokens[token], f.err
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/books/:id", func(c *gin.Context) {
		// handler里取到的是带request_id的logger
		logger.FromContext(c.Request.Context()).Info("inside")
		c.Status(http.StatusNotFound)
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/books/7", nil))
	requestID := w.Header().Get(HeaderRequestID)
	require.NotEmpty(t, requestID)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, requestID, entries[0].ContextMap()["request_id"])

	access := entries[1]
	assert.Equal(t, "http request", access.Message)
	assert.Equal(t, zapcore.WarnLevel, access.Level)
	assert.Equal(t, "/books/:id", access.ContextMap()["route"])
	assert.EqualValues(t, http.StatusNotFound, access.ContextMap()["status"])
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(Logger(zap.New(core)), Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":50000,"message":"系统内部错误"}`, w.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestRequireAuth(t *testing.T) {
	manager := jwt.NewManager("middleware-secret", time.Hour, 24*time.Hour)
	pair, err := manager.GenerateToken(3, "ana@library.org", "Ana")
	require.NoError(t, err)

	blacklist := &fakeBlacklist{tokens: map[string]bool{}}
	r := gin.New()
	r.GET("/me", NewAuthMiddleware(manager, blacklist).RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"staff_id": GetStaffID(c), "email": GetEmail(c)})
	})

	call := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		return serve(r, req)
	}

	t.Run("有效Token", func(t *testing.T) {
		w := call("Bearer " + pair.AccessToken)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"staff_id":3,"email":"ana@library.org"}`, w.Body.String())
	})

	t.Run("缺少Token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call("").Code)
	})

	t.Run("格式错误", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call("Token "+pair.AccessToken).Code)
	})

	t.Run("Refresh Token不能访问接口", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call("Bearer "+pair.RefreshToken).Code)
	})

	t.Run("已登出", func(t *testing.T) {
		blacklist.tokens[pair.AccessToken] = true
		defer delete(blacklist.tokens, pair.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, call("Bearer "+pair.AccessToken).Code)
	})

	t.Run("黑名单查询失败", func(t *testing.T) {
		blacklist.err = errors.New("redis down")
		defer func() { blacklist.err = nil }()
		assert.Equal(t, http.StatusInternalServerError, call("Bearer "+pair.AccessToken).Code)
	})
}

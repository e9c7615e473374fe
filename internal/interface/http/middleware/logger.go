package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xiebiao/library/pkg/logger"
)

// HeaderRequestID 请求ID响应头，客户端传入时沿用
const HeaderRequestID = "X-Request-ID"

// slowRequestThreshold 超过该耗时记为慢请求
const slowRequestThreshold = 3 * time.Second

// Logger 请求日志中间件
// 1. 生成(或沿用)请求ID，写入响应头
// 2. 把带request_id的logger放进request context，后续用logger.FromContext取出
// 3. 请求结束后输出一条访问日志，4xx记Warn，5xx记Error
func Logger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header(HeaderRequestID, requestID)

		reqLogger := base.With(zap.String("request_id", requestID))
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLogger))

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		// 用请求结束时的context，带上认证后追加的staff_id和trace_id
		l := logger.FromContext(c.Request.Context())
		level := zapcore.InfoLevel
		switch {
		case status >= 500:
			level = zapcore.ErrorLevel
		case status >= 400:
			level = zapcore.WarnLevel
		}
		if ce := l.Check(level, "http request"); ce != nil {
			ce.Write(fields...)
		}

		if latency > slowRequestThreshold {
			l.Warn("slow request", zap.String("path", c.Request.URL.Path), zap.Duration("latency", latency))
		}
	}
}

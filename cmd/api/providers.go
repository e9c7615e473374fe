package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appbook "github.com/xiebiao/library/internal/application/book"
	appinventory "github.com/xiebiao/library/internal/application/inventory"
	apploan "github.com/xiebiao/library/internal/application/loan"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/pkg/circuitbreaker"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/mq"
	"github.com/xiebiao/library/pkg/tracing"
)

// ========================================
// Custom Providers
// ========================================
// 构造函数参数需要从Config中提取、或者需要返回cleanup的依赖，在这里手写Provider

// provideLogger 创建全局zap Logger，并替换zap.L()
func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	log, err := logger.New(logger.Config{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
		ServiceName:  cfg.Server.Name,
	})
	if err != nil {
		return nil, nil, err
	}
	undo := zap.ReplaceGlobals(log)
	cleanup := func() {
		_ = log.Sync()
		undo()
	}
	return log, cleanup, nil
}

// provideTracer 初始化OpenTelemetry，退出时刷新未上报的Span
func provideTracer(cfg *config.Config, log *zap.Logger) (tracing.Shutdown, func(), error) {
	shutdown, err := tracing.InitTracer(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Server.Name,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			log.Warn("关闭Tracer失败", zap.Error(err))
		}
	}
	return shutdown, cleanup, nil
}

// provideDB 创建MySQL连接，退出时关闭连接池
func provideDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := mysql.Close(db); err != nil {
			log.Warn("关闭数据库连接失败", zap.Error(err))
		}
	}
	return db, cleanup, nil
}

// provideRedis 创建Redis客户端，退出时关闭
func provideRedis(cfg *config.Config, log *zap.Logger) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			log.Warn("关闭Redis连接失败", zap.Error(err))
		}
	}
	return client, cleanup, nil
}

// provideSessionStore Session和Token黑名单使用配置的Key前缀
func provideSessionStore(client *goredis.Client, cfg *config.Config) *redis.SessionStore {
	return redis.NewSessionStore(client, cfg.Redis.CacheKeyPrefix)
}

// provideCacheOptions 图书详情缓存配置
func provideCacheOptions(cfg *config.Config) appbook.CacheOptions {
	return appbook.CacheOptions{
		KeyPrefix: cfg.Redis.CacheKeyPrefix,
		TTL:       cfg.Redis.BookDetailTTL,
	}
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideEventPublisher mq.enabled时连接RabbitMQ并加熔断，否则只记日志
func provideEventPublisher(cfg *config.Config, log *zap.Logger) (mq.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return mq.NewNoopPublisher(log), func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := publisher.Close(); err != nil {
			log.Warn("关闭RabbitMQ连接失败", zap.Error(err))
		}
	}
	guarded := mq.NewGuardedPublisher(publisher, circuitbreaker.Settings{
		FailureThreshold: cfg.MQ.BreakerFailures,
		OpenTimeout:      cfg.MQ.BreakerOpenTimeout,
	}, log)
	return guarded, cleanup, nil
}

func provideInventoryPublisher(p mq.EventPublisher) appinventory.EventPublisher { return p }

func provideLoanPublisher(p mq.EventPublisher) apploan.EventPublisher { return p }

// provideHTTPServer 创建HTTP Server
func provideHTTPServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

// loan-events 订阅借阅与库存事件，写入审计日志
//
// 需要mq.enabled=true，且API服务与本进程使用同一个exchange
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
)

var routingKeys = []string{"loan.*", "inventory.*"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zlog, err := logger.New(logger.Config{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
		ServiceName:  "library-loan-events",
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	metrics.InitMetrics()

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, cfg.MQ.Queue, routingKeys, zlog)
	if err != nil {
		zlog.Fatal("连接RabbitMQ失败", zap.Error(err))
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsServer := newMetricsServer(cfg.MQ.ConsumerMetricsAddr)
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Error("metrics服务启动失败", zap.String("addr", metricsServer.Addr), zap.Error(err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	zlog.Info("loan-events启动",
		zap.String("exchange", cfg.MQ.Exchange),
		zap.String("queue", consumer.Queue()),
		zap.Strings("routing_keys", routingKeys),
		zap.String("metrics_addr", metricsServer.Addr),
	)

	err = consumer.Consume(ctx, auditHandler(zlog, consumer.Queue()))
	if err != nil && ctx.Err() == nil {
		zlog.Error("消费中断", zap.Error(err))
		return
	}
	zlog.Info("消费者已退出")
}

// newMetricsServer 只暴露/metrics，供Prometheus抓取消费计数
func newMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// auditHandler 记录每条事件，无法解析的消息直接确认丢弃(重新入队只会无限重试)
func auditHandler(zlog *zap.Logger, queue string) mq.Handler {
	return func(ctx context.Context, routingKey string, body []byte) error {
		var payload map[string]interface{}
		err := json.Unmarshal(body, &payload)
		metrics.RecordEventConsumed(queue, err)
		if err != nil {
			zlog.Warn("丢弃无法解析的事件", zap.String("routing_key", routingKey), zap.ByteString("body", body), zap.Error(err))
			return nil
		}

		zlog.Info("circulation event",
			zap.String("routing_key", routingKey),
			zap.Any("payload", payload),
		)
		return nil
	}
}

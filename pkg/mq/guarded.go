package mq

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/library/pkg/circuitbreaker"
)

// GuardedPublisher 带熔断的发布者
// RabbitMQ不可用时，连续失败达到阈值后不再尝试发布，借还书请求不会被拖慢
type GuardedPublisher struct {
	inner   EventPublisher
	breaker *circuitbreaker.Breaker
	log     *zap.Logger
}

// NewGuardedPublisher 用熔断器包装发布者，状态变化记录Warn日志
func NewGuardedPublisher(inner EventPublisher, settings circuitbreaker.Settings, log *zap.Logger) *GuardedPublisher {
	settings.OnStateChange = func(name string, from, to circuitbreaker.State) {
		log.Warn("熔断器状态变化",
			zap.String("breaker", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	}
	return &GuardedPublisher{
		inner:   inner,
		breaker: circuitbreaker.New("mq-publisher", settings),
		log:     log,
	}
}

// Publish 熔断器打开时返回circuitbreaker.ErrOpen
func (p *GuardedPublisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	return p.breaker.Execute(func() error {
		return p.inner.Publish(ctx, routingKey, message)
	})
}

// State 熔断器当前状态
func (p *GuardedPublisher) State() circuitbreaker.State {
	return p.breaker.State()
}

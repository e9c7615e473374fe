package loan

import (
	"context"
)

// TxManager 事务管理器(mysql.TxManager、memory.TxManager)
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 领域事件发布(mq.Publisher、mq.NoopPublisher)
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

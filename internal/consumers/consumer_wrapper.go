package consumers

import (
	"context"
	"sync/atomic"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// ConsumerWrapper adapts a health-aware consumer func to the plain handler
// signature the consumer factory expects.
type ConsumerWrapper struct {
	fn     func(ctx context.Context, consumer *kafka.Consumer, health ...*atomic.Bool)
	health []*atomic.Bool
}

func WrapConsumer(fn func(ctx context.Context, consumer *kafka.Consumer, health ...*atomic.Bool), health ...*atomic.Bool) ConsumerWrapper {
	return ConsumerWrapper{fn: fn, health: health}
}

func (w ConsumerWrapper) WithHealthCheck(health *atomic.Bool) ConsumerWrapper {
	w.health = append(w.health, health)
	return w
}

func (w ConsumerWrapper) Handler() func(context.Context, *kafka.Consumer) {
	return func(ctx context.Context, consumer *kafka.Consumer) {
		w.fn(ctx, consumer, w.health...)
	}
}

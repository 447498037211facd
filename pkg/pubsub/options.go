package pubsub

import (
	"log/slog"

	"github.com/shashiranjanraj/pubsub/pkg/metrics"
	"github.com/shashiranjanraj/pubsub/pkg/workerpool"
)

// Option configures an EventBus.
type Option func(*EventBus)

// WithLogger sets the logger used for subscription lifecycle records.
// Without it the bus logs nothing.
func WithLogger(log *slog.Logger) Option {
	return func(b *EventBus) {
		if log != nil {
			b.log = log
		}
	}
}

// WithMetrics records dispatch and subscriber metrics on c.
func WithMetrics(c *metrics.BusCollector) Option {
	return func(b *EventBus) { b.metrics = c }
}

// WithWorkerPool runs asynchronous subscriber invocations on pool instead of
// one goroutine per invocation. The bus does not own the pool: shut it down
// after the last Publish has settled.
//
// A subscriber running on the pool must not wait on the Completion of a
// nested Publish to the same pool, or it can hold the last free worker.
func WithWorkerPool(pool *workerpool.Pool) Option {
	return func(b *EventBus) { b.pool = pool }
}

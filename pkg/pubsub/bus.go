// Package pubsub provides an in-process event bus.
//
// Handlers subscribe to a named event type and receive every event
// published to that type until they unsubscribe:
//
//	bus := pubsub.New()
//
//	sub, _ := bus.Subscribe("user.registered", func(args ...any) error {
//	    return sendWelcomeMail(args[0].(string))
//	})
//	defer sub.Unsubscribe()
//
//	// Sequential, in subscription order, stops at the first error.
//	err := bus.PublishSync("user.registered", "ada@example.com")
//
//	// Concurrent; Wait returns once every subscriber has returned.
//	err = bus.Publish("user.registered", "ada@example.com").Wait()
//
// Every bus is independent; there is no package-level default bus.
package pubsub

import (
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/pubsub/pkg/metrics"
	"github.com/shashiranjanraj/pubsub/pkg/workerpool"
)

// Handler receives the arguments of a published event. A non-nil error
// marks the invocation as failed.
type Handler func(args ...any) error

// BoundHandler is a Handler that also receives the receiver it was bound to
// at subscribe time.
type BoundHandler func(receiver any, args ...any) error

// Bind pins receiver to h. Every call of the returned Handler forwards
// receiver as the first argument of h.
func Bind(receiver any, h BoundHandler) Handler {
	return func(args ...any) error {
		return h(receiver, args...)
	}
}

// token identifies one subscription. It is only ever compared for removal.
type token uuid.UUID

type subscriber struct {
	id      token
	handler Handler
}

// EventBus maps event types to their ordered subscribers. It is safe for
// concurrent use. Handlers never run while the bus lock is held, so they
// may subscribe and unsubscribe freely.
type EventBus struct {
	mu       sync.RWMutex
	registry map[string][]subscriber

	log     *slog.Logger
	metrics *metrics.BusCollector
	pool    *workerpool.Pool
}

// New creates an empty EventBus.
func New(opts ...Option) *EventBus {
	b := &EventBus{
		registry: make(map[string][]subscriber),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CreateInstance is equivalent to New. Each call returns an independent bus.
func CreateInstance(opts ...Option) *EventBus {
	return New(opts...)
}

// Subscribe registers handler for eventType. The returned Subscription
// removes exactly this registration.
func (b *EventBus) Subscribe(eventType string, handler Handler) (*Subscription, error) {
	if eventType == "" {
		return nil, ErrInvalidEventType
	}
	if handler == nil {
		return nil, ErrInvalidSubscriber
	}

	id := token(uuid.New())

	b.mu.Lock()
	b.registry[eventType] = append(b.registry[eventType], subscriber{id: id, handler: handler})
	n := len(b.registry[eventType])
	b.metrics.SetSubscribers(eventType, n)
	b.mu.Unlock()

	b.log.Debug("pubsub: subscribed", "event_type", eventType, "subscribers", n)

	return &Subscription{bus: b, eventType: eventType, id: id}, nil
}

// SubscribeBound registers handler for eventType with receiver bound as its
// first argument on every invocation.
func (b *EventBus) SubscribeBound(eventType string, handler BoundHandler, receiver any) (*Subscription, error) {
	if handler == nil {
		return nil, ErrInvalidSubscriber
	}
	return b.Subscribe(eventType, Bind(receiver, handler))
}

// HasSubscribers reports whether eventType has at least one subscriber.
func (b *EventBus) HasSubscribers(eventType string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.registry[eventType]
	return ok
}

// SubscriberCount returns the number of subscribers for eventType.
func (b *EventBus) SubscriberCount(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.registry[eventType])
}

// remove deletes the subscriber with id from eventType and drops the event
// type once it has no subscribers left. Unknown ids are ignored.
func (b *EventBus) remove(eventType string, id token) {
	b.mu.Lock()
	subs := b.registry[eventType]
	idx := -1
	for i, s := range subs {
		if s.id == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.mu.Unlock()
		return
	}

	n := len(subs) - 1
	if n == 0 {
		delete(b.registry, eventType)
	} else {
		next := make([]subscriber, 0, n)
		next = append(next, subs[:idx]...)
		next = append(next, subs[idx+1:]...)
		b.registry[eventType] = next
	}
	b.metrics.SetSubscribers(eventType, n)
	b.mu.Unlock()

	if n == 0 {
		b.log.Debug("pubsub: event type dropped", "event_type", eventType)
	} else {
		b.log.Debug("pubsub: unsubscribed", "event_type", eventType, "subscribers", n)
	}
}

// snapshot copies the current subscribers of eventType so a dispatch is not
// affected by subscriptions changing underneath it.
func (b *EventBus) snapshot(eventType string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	subs := b.registry[eventType]
	if len(subs) == 0 {
		return nil
	}

	hs := make([]Handler, len(subs))
	for i, s := range subs {
		hs[i] = s.handler
	}
	return hs
}

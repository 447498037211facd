package pubsub

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/shashiranjanraj/pubsub/pkg/metrics"
)

// PublishSync calls every subscriber of eventType in subscription order and
// returns when the last one has returned. Publishing to an event type
// without subscribers is a no-op.
//
// Dispatch is fail-fast: the first subscriber error stops the dispatch and
// is returned as a *SubscriberError; later subscribers are not called. A
// panicking subscriber is not recovered.
func (b *EventBus) PublishSync(eventType string, args ...any) error {
	hs := b.snapshot(eventType)
	if len(hs) == 0 {
		return nil
	}

	start := time.Now()
	failures := 0
	defer func() { b.metrics.ObserveDispatch(eventType, metrics.ModeSync, start, failures) }()

	for i, h := range hs {
		// Stays 1 if h panics, so the deferred observation counts it.
		failures = 1
		if err := h(args...); err != nil {
			return &SubscriberError{EventType: eventType, Position: i, Err: err}
		}
		failures = 0
	}
	return nil
}

// Publish starts every subscriber of eventType concurrently and returns
// without waiting for them. No subscriber runs on the caller's goroutine.
//
// The returned Completion settles once every subscriber has returned, even
// when some of them fail. Its error combines all failures in subscription
// order; use Errors to split it. Panics are recovered and reported as a
// *PanicError inside the *SubscriberError.
func (b *EventBus) Publish(eventType string, args ...any) *Completion {
	hs := b.snapshot(eventType)
	if len(hs) == 0 {
		return settled(nil)
	}

	b.log.Debug("pubsub: publishing", "event_type", eventType, "subscribers", len(hs))

	c := newCompletion()
	start := time.Now()
	errs := make([]error, len(hs))

	var wg sync.WaitGroup
	wg.Add(len(hs))

	go func() {
		for i, h := range hs {
			i, h := i, h
			task := func() {
				defer wg.Done()
				errs[i] = invoke(eventType, i, h, args)
			}

			if b.pool == nil {
				go task()
				continue
			}
			if err := b.pool.Submit(task); err != nil {
				errs[i] = &SubscriberError{EventType: eventType, Position: i, Err: err}
				wg.Done()
			}
		}

		wg.Wait()

		var err error
		failures := 0
		for _, e := range errs {
			if e != nil {
				failures++
				err = multierr.Append(err, e)
			}
		}

		b.metrics.ObserveDispatch(eventType, metrics.ModeAsync, start, failures)
		c.settle(err)
	}()

	return c
}

// invoke runs one asynchronous subscriber, turning a panic into an error.
func invoke(eventType string, pos int, h Handler, args []any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &SubscriberError{
				EventType: eventType,
				Position:  pos,
				Err:       &PanicError{Value: r, Stack: debug.Stack()},
			}
		}
	}()

	if e := h(args...); e != nil {
		return &SubscriberError{EventType: eventType, Position: pos, Err: e}
	}
	return nil
}

// Completion is the pending result of Publish.
type Completion struct {
	done chan struct{}
	err  error
}

func newCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

func settled(err error) *Completion {
	c := newCompletion()
	c.settle(err)
	return c
}

func (c *Completion) settle(err error) {
	c.err = err
	close(c.done)
}

// Done is closed once every subscriber has returned.
func (c *Completion) Done() <-chan struct{} { return c.done }

// Wait blocks until every subscriber has returned and reports their
// combined failures.
func (c *Completion) Wait() error {
	<-c.done
	return c.err
}

// WaitContext is like Wait but gives up when ctx is done. Giving up does not
// stop the subscribers; they keep running to completion.
func (c *Completion) WaitContext(ctx context.Context) error {
	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the combined failures once settled, and nil before.
func (c *Completion) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

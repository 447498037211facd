package pubsub

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

var (
	// ErrInvalidSubscriber is returned by Subscribe for a nil handler.
	ErrInvalidSubscriber = errors.New("pubsub: invalid subscriber")

	// ErrInvalidEventType is returned by Subscribe for an empty event type.
	ErrInvalidEventType = errors.New("pubsub: invalid event type")
)

// SubscriberError reports a failed subscriber invocation.
type SubscriberError struct {
	EventType string
	// Position is the subscriber's index in the dispatch, in subscription order.
	Position int
	Err      error
}

func (e *SubscriberError) Error() string {
	return fmt.Sprintf("pubsub: subscriber %d for %q: %v", e.Position, e.EventType, e.Err)
}

func (e *SubscriberError) Unwrap() error { return e.Err }

// PanicError is the failure recorded for a subscriber that panicked during
// an asynchronous publish.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Errors splits an error returned by Completion.Wait into the individual
// subscriber failures. It returns nil for a nil error.
func Errors(err error) []error {
	return multierr.Errors(err)
}

// Package testkit provides test doubles for code built on the event bus.
//
// HandlerMock is a testify/mock backed subscriber. Its Handle and
// HandleBound methods have the shapes of pubsub.Handler and
// pubsub.BoundHandler, so method values subscribe directly:
//
//	h := testkit.NewHandlerMock("audit")
//	bus.Subscribe("order.created", h.Handle)
//
//	bus.PublishSync("order.created", 42)
//	h.Mock().AssertNumberOfCalls(t, "Handle", 1)
package testkit

import (
	"sync"

	"github.com/stretchr/testify/mock"
)

// HandlerMock records every invocation and returns the configured error.
type HandlerMock struct {
	m    mock.Mock
	name string

	mu        sync.Mutex
	calls     [][]any
	receivers []any
}

// NewHandlerMock creates a HandlerMock named name. It accepts any call and
// returns nil until FailWith is used.
func NewHandlerMock(name string) *HandlerMock {
	hm := &HandlerMock{name: name}
	hm.expectDefault(nil)
	return hm
}

func (hm *HandlerMock) expectDefault(err error) {
	hm.m.On("Handle", mock.Anything).Return(err)
}

// Name returns the name given to NewHandlerMock.
func (hm *HandlerMock) Name() string { return hm.name }

// Handle records args and returns the configured error.
func (hm *HandlerMock) Handle(args ...any) error {
	hm.mu.Lock()
	hm.calls = append(hm.calls, append([]any(nil), args...))
	hm.mu.Unlock()

	ret := hm.m.Called(args)
	if ret.Get(0) == nil {
		return nil
	}
	return ret.Error(0)
}

// HandleBound records receiver, then behaves like Handle.
func (hm *HandlerMock) HandleBound(receiver any, args ...any) error {
	hm.mu.Lock()
	hm.receivers = append(hm.receivers, receiver)
	hm.mu.Unlock()

	return hm.Handle(args...)
}

// FailWith makes every following call return err.
func (hm *HandlerMock) FailWith(err error) *HandlerMock {
	hm.m.ExpectedCalls = nil
	hm.expectDefault(err)
	return hm
}

// Calls returns a copy of the arguments of every invocation, in call order.
func (hm *HandlerMock) Calls() [][]any {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	return append([][]any(nil), hm.calls...)
}

// Receivers returns the receiver of every HandleBound invocation.
func (hm *HandlerMock) Receivers() []any {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	return append([]any(nil), hm.receivers...)
}

// CallCount returns how many times the mock was invoked.
func (hm *HandlerMock) CallCount() int {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	return len(hm.calls)
}

// Reset clears the call history and restores the default nil return.
func (hm *HandlerMock) Reset() {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	hm.calls = nil
	hm.receivers = nil
	hm.m.Calls = nil
	hm.m.ExpectedCalls = nil
	hm.expectDefault(nil)
}

// Mock exposes the underlying testify mock for custom expectations.
func (hm *HandlerMock) Mock() *mock.Mock { return &hm.m }

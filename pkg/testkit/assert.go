package testkit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// AssertCalledOnceWith fails the test unless hm was invoked exactly once
// with exactly args.
func AssertCalledOnceWith(t *testing.T, hm *HandlerMock, args ...any) bool {
	t.Helper()
	calls := hm.Calls()
	if !assert.Len(t, calls, 1, "[%s] expected exactly one call", hm.Name()) {
		return false
	}
	return assert.Equal(t, normalize(args), normalize(calls[0]),
		"[%s] call arguments mismatch", hm.Name())
}

// AssertNotCalled fails the test if hm was invoked.
func AssertNotCalled(t *testing.T, hm *HandlerMock) bool {
	t.Helper()
	return assert.Zero(t, hm.CallCount(), "[%s] expected no calls", hm.Name())
}

// AssertSettles fails the test if done is not closed within timeout.
func AssertSettles(t *testing.T, done <-chan struct{}, timeout time.Duration) bool {
	t.Helper()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return assert.Fail(t, "did not settle", "waited %s", timeout)
	}
}

// normalize maps an empty argument list to nil so "no args" compares equal
// regardless of how the slice was built.
func normalize(args []any) []any {
	if len(args) == 0 {
		return nil
	}
	return args
}

// ─── Sequence ─────────────────────────────────────────────────────────────────

// Sequence records the order in which named handlers run.
//
//	var seq testkit.Sequence
//	bus.Subscribe("test", seq.Handler("A"))
//	bus.Subscribe("test", seq.Handler("B"))
//	bus.PublishSync("test")
//	assert.Equal(t, []string{"A", "B"}, seq.Names())
type Sequence struct {
	mu    sync.Mutex
	names []string
}

// Handler returns a handler that appends name to the sequence and succeeds.
func (s *Sequence) Handler(name string) func(args ...any) error {
	return func(args ...any) error {
		s.Record(name)
		return nil
	}
}

// Record appends name to the sequence.
func (s *Sequence) Record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names = append(s.names, name)
}

// Names returns the recorded names in order.
func (s *Sequence) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.names...)
}

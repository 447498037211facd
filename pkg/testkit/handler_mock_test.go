package testkit_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/pubsub/pkg/testkit"
)

func TestHandlerMock_RecordsCalls(t *testing.T) {
	hm := testkit.NewHandlerMock("audit")

	assert.NoError(t, hm.Handle("a", 1))
	assert.NoError(t, hm.Handle())

	assert.Equal(t, 2, hm.CallCount())
	assert.Equal(t, []any{"a", 1}, hm.Calls()[0])
	hm.Mock().AssertNumberOfCalls(t, "Handle", 2)
}

func TestHandlerMock_FailWith(t *testing.T) {
	boom := errors.New("boom")
	hm := testkit.NewHandlerMock("failing").FailWith(boom)

	assert.ErrorIs(t, hm.Handle(1), boom)
}

func TestHandlerMock_HandleBoundRecordsReceiver(t *testing.T) {
	hm := testkit.NewHandlerMock("bound")
	recv := &struct{ name string }{"ctx"}

	assert.NoError(t, hm.HandleBound(recv, "x"))

	assert.Equal(t, []any{recv}, hm.Receivers())
	testkit.AssertCalledOnceWith(t, hm, "x")
}

func TestHandlerMock_Reset(t *testing.T) {
	hm := testkit.NewHandlerMock("reset").FailWith(errors.New("boom"))
	_ = hm.Handle(1)

	hm.Reset()

	testkit.AssertNotCalled(t, hm)
	assert.NoError(t, hm.Handle(1))
}

func TestSequence(t *testing.T) {
	var seq testkit.Sequence

	_ = seq.Handler("A")()
	seq.Record("B")

	assert.Equal(t, []string{"A", "B"}, seq.Names())
}

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pubsub/pkg/metrics"
)

func TestBusCollector_ObserveDispatch(t *testing.T) {
	c := metrics.NewBusCollector(prometheus.NewRegistry())

	c.ObserveDispatch("test", metrics.ModeSync, time.Now(), 0)
	c.ObserveDispatch("test", metrics.ModeSync, time.Now(), 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.EventsPublished.WithLabelValues("test", metrics.ModeSync)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.SubscriberFailures.WithLabelValues("test", metrics.ModeSync)))
	assert.Equal(t, 1, testutil.CollectAndCount(c.DispatchDuration))
}

func TestBusCollector_SetSubscribersDeletesSeries(t *testing.T) {
	c := metrics.NewBusCollector(nil)

	c.SetSubscribers("test", 3)
	assert.Equal(t, 3.0, testutil.ToFloat64(c.Subscribers.WithLabelValues("test")))
	c.Subscribers.WithLabelValues("other").Set(1)

	c.SetSubscribers("test", 0)
	assert.Equal(t, 1, testutil.CollectAndCount(c.Subscribers))
}

func TestBusCollector_NilIsNoop(t *testing.T) {
	var c *metrics.BusCollector

	assert.NotPanics(t, func() {
		c.ObserveDispatch("test", metrics.ModeAsync, time.Now(), 1)
		c.SetSubscribers("test", 1)
	})
}

func TestHandler_ServesDefaultRegistry(t *testing.T) {
	metrics.Default.SetSubscribers("handler_test", 1)
	t.Cleanup(func() { metrics.Default.SetSubscribers("handler_test", 0) })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metrics.Handler()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `pubsub_bus_subscribers{event_type="handler_test"} 1`)
}

// Package metrics provides Prometheus instrumentation for the event bus.
//
// Attach the default collector to a bus and expose the registry:
//
//	bus := pubsub.New(pubsub.WithMetrics(metrics.Default))
//	r.Get("/metrics", metrics.Handler())
//
// Then scrape http://localhost:9090/metrics from Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pubsub"

// Dispatch modes used as the "mode" label.
const (
	ModeSync  = "sync"
	ModeAsync = "async"
)

// BusCollector holds the event bus metrics. A nil *BusCollector is valid
// and records nothing.
type BusCollector struct {
	// EventsPublished counts publish calls that reached at least one subscriber.
	EventsPublished *prometheus.CounterVec

	// SubscriberFailures counts subscriber invocations that returned an
	// error or panicked.
	SubscriberFailures *prometheus.CounterVec

	// DispatchDuration tracks how long a full dispatch takes, from the
	// publish call until the last subscriber returns.
	DispatchDuration *prometheus.HistogramVec

	// Subscribers tracks the live subscriber count per event type.
	Subscribers *prometheus.GaugeVec
}

// NewBusCollector creates the bus metrics and registers them on reg.
// Pass nil to create unregistered metrics.
func NewBusCollector(reg prometheus.Registerer) *BusCollector {
	c := &BusCollector{
		EventsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "bus",
				Name:      "events_published_total",
				Help:      "Total number of events dispatched to at least one subscriber.",
			},
			[]string{"event_type", "mode"},
		),
		SubscriberFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "bus",
				Name:      "subscriber_failures_total",
				Help:      "Total number of failed subscriber invocations.",
			},
			[]string{"event_type", "mode"},
		),
		DispatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "bus",
				Name:      "dispatch_duration_seconds",
				Help:      "Duration of a complete dispatch in seconds.",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"mode"},
		),
		Subscribers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "bus",
				Name:      "subscribers",
				Help:      "Number of registered subscribers per event type.",
			},
			[]string{"event_type"},
		),
	}

	if reg != nil {
		reg.MustRegister(
			c.EventsPublished,
			c.SubscriberFailures,
			c.DispatchDuration,
			c.Subscribers,
		)
	}

	return c
}

// ObserveDispatch records one finished dispatch that started at start and
// had the given number of failed subscriber invocations.
func (c *BusCollector) ObserveDispatch(eventType, mode string, start time.Time, failures int) {
	if c == nil {
		return
	}
	c.EventsPublished.WithLabelValues(eventType, mode).Inc()
	if failures > 0 {
		c.SubscriberFailures.WithLabelValues(eventType, mode).Add(float64(failures))
	}
	c.DispatchDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
}

// SetSubscribers sets the subscriber gauge for eventType. A count of zero
// deletes the series, matching the bus dropping the event type.
func (c *BusCollector) SetSubscribers(eventType string, n int) {
	if c == nil {
		return
	}
	if n <= 0 {
		c.Subscribers.DeleteLabelValues(eventType)
		return
	}
	c.Subscribers.WithLabelValues(eventType).Set(float64(n))
}

// ─────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────

// DefaultRegistry is the Prometheus registry exposed by Handler.
var DefaultRegistry = prometheus.NewRegistry()

// Default is the bus collector registered on DefaultRegistry.
var Default *BusCollector

func init() {
	// Go runtime metrics (GC, goroutines, memory)
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	// OS process metrics (CPU, open FDs)
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	Default = NewBusCollector(DefaultRegistry)
}

// Register adds your own prometheus.Collector to DefaultRegistry.
func Register(c prometheus.Collector) error {
	return DefaultRegistry.Register(c)
}

// Handler returns an http.HandlerFunc that exposes DefaultRegistry.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}

package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the backend.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// Generation metrics
	ScreensGenerated   *prometheus.CounterVec
	GenerationDuration prometheus.Histogram

	startTime time.Time
	Uptime    prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates a metrics collector on a private registry, so tests
// can construct it repeatedly without duplicate-registration panics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := newMetrics(reg)
	m.registry = reg
	return m
}

// NewMetricsOn registers the collector on the given registerer. A nil
// registerer leaves the metrics unregistered, which suits tests.
func NewMetricsOn(reg prometheus.Registerer) *Metrics {
	return newMetrics(reg)
}

// Gatherer exposes the private registry for scrape handlers. Nil when the
// collector was built on an external registerer.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screenloom_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "screenloom_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "screenloom_ws_connections",
				Help: "Number of open WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screenloom_ws_messages_total",
				Help: "WebSocket messages by direction and type",
			},
			[]string{"direction", "type"},
		),

		ScreensGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screenloom_screens_generated_total",
				Help: "Screen generation outcomes by final status",
			},
			[]string{"status"},
		),
		GenerationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "screenloom_generation_duration_seconds",
				Help:    "Per-screen generation duration in seconds",
				Buckets: []float64{.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
			},
		),

		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "screenloom_uptime_seconds",
				Help: "Process uptime in seconds",
			},
		),
	}

	return m
}

// ConnectionOpened records a new WebSocket connection.
func (m *Metrics) ConnectionOpened() {
	m.WSConnections.Inc()
}

// ConnectionClosed records a closed WebSocket connection.
func (m *Metrics) ConnectionClosed() {
	m.WSConnections.Dec()
}

// MessageReceived records an inbound message by type.
func (m *Metrics) MessageReceived(msgType string) {
	m.WSMessages.WithLabelValues("in", msgType).Inc()
}

// MessageSent records an outbound message by type.
func (m *Metrics) MessageSent(msgType string) {
	m.WSMessages.WithLabelValues("out", msgType).Inc()
}

// ScreenGenerated records one finished generation with its final status
// and duration.
func (m *Metrics) ScreenGenerated(status string, elapsed time.Duration) {
	m.ScreensGenerated.WithLabelValues(status).Inc()
	m.GenerationDuration.Observe(elapsed.Seconds())
}

// UpdateUptime refreshes the uptime gauge.
func (m *Metrics) UpdateUptime() {
	m.Uptime.Set(time.Since(m.startTime).Seconds())
}

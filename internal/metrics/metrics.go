package metrics

import (
	"net/http"
	"time"

	"github.com/hance08/walletsync/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects reconciliation counters. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	writes        *prometheus.CounterVec
	sweeps        *prometheus.CounterVec
	sweepDuration *prometheus.HistogramVec
	notifications *prometheus.CounterVec
	ingestSkips   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "walletsync_ledger_writes_total",
			Help: "Ledger transaction writes by currency and outcome.",
		}, []string{"currency", "outcome"}),
		sweeps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "walletsync_sweeps_total",
			Help: "Batch sweeps by currency and result (complete, incomplete, error).",
		}, []string{"currency", "result"}),
		sweepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "walletsync_sweep_duration_seconds",
			Help:    "Wall-clock duration of batch sweeps.",
			Buckets: prometheus.DefBuckets,
		}, []string{"currency"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "walletsync_notifications_total",
			Help: "Deposit notifications by sink and result (sent, failed, dropped).",
		}, []string{"sink", "result"}),
		ingestSkips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "walletsync_ingest_skipped_total",
			Help: "Transactions skipped by the event ingestor by reason.",
		}, []string{"currency", "reason"}),
	}

	m.registry.MustRegister(
		m.writes,
		m.sweeps,
		m.sweepDuration,
		m.notifications,
		m.ingestSkips,
	)
	return m
}

func (m *Metrics) Write(currency string, outcome model.WriteOutcome) {
	if m == nil {
		return
	}
	m.writes.WithLabelValues(currency, outcome.String()).Inc()
}

func (m *Metrics) Sweep(currency, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.sweeps.WithLabelValues(currency, result).Inc()
	m.sweepDuration.WithLabelValues(currency).Observe(elapsed.Seconds())
}

func (m *Metrics) Notification(sink, result string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(sink, result).Inc()
}

func (m *Metrics) IngestSkip(currency, reason string) {
	if m == nil {
		return
	}
	m.ingestSkips.WithLabelValues(currency, reason).Inc()
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

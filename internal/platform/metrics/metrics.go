package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the edit server.
type Metrics struct {
	registry         *prometheus.Registry
	requestsTotal    prometheus.Counter
	errorsTotal      prometheus.Counter
	editsTotal       *prometheus.CounterVec
	historyTotal     *prometheus.CounterVec
	chunkErrorsTotal prometheus.Counter
	activeSessions   prometheus.Gauge
}

// New creates and registers Prometheus metrics for the edit server.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cuedit_requests_total",
		Help: "Total number of HTTP requests received",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cuedit_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})
	editsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cuedit_edits_total",
		Help: "Edit requests by type and whether they were applied",
	}, []string{"type", "result"})
	historyTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cuedit_history_steps_total",
		Help: "Undo and redo requests by direction and whether they moved",
	}, []string{"direction", "result"})
	chunkErrorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cuedit_import_chunk_errors_total",
		Help: "Caption chunks skipped on import",
	})
	activeSessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cuedit_active_sessions",
		Help: "Number of open edit sessions",
	})

	registry.MustRegister(
		requestsTotal,
		errorsTotal,
		editsTotal,
		historyTotal,
		chunkErrorsTotal,
		activeSessions,
	)

	return &Metrics{
		registry:         registry,
		requestsTotal:    requestsTotal,
		errorsTotal:      errorsTotal,
		editsTotal:       editsTotal,
		historyTotal:     historyTotal,
		chunkErrorsTotal: chunkErrorsTotal,
		activeSessions:   activeSessions,
	}
}

func result(ok bool) string {
	if ok {
		return "applied"
	}
	return "rejected"
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// ObserveEdit counts one edit request of the given wire type.
func (m *Metrics) ObserveEdit(editType string, applied bool) {
	m.editsTotal.WithLabelValues(editType, result(applied)).Inc()
}

// ObserveUndo counts one undo request.
func (m *Metrics) ObserveUndo(moved bool) {
	m.historyTotal.WithLabelValues("undo", result(moved)).Inc()
}

// ObserveRedo counts one redo request.
func (m *Metrics) ObserveRedo(moved bool) {
	m.historyTotal.WithLabelValues("redo", result(moved)).Inc()
}

// AddChunkErrors counts caption chunks dropped by an import.
func (m *Metrics) AddChunkErrors(n int) {
	m.chunkErrorsTotal.Add(float64(n))
}

// SetActiveSessions sets the active sessions gauge.
func (m *Metrics) SetActiveSessions(n int) {
	m.activeSessions.Set(float64(n))
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values (e.g. active sessions).
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}

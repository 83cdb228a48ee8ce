// Package metrics exposes Prometheus instrumentation for the gate.
//
// A nil *Metrics is valid and records nothing, so components can be built
// without metrics in tests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Check outcomes
const (
	CheckAuthorized = "authorized"
	CheckDenied     = "denied"
	CheckUnknown    = "unknown_path"
)

// Metrics holds the collectors and the registry they are registered in
type Metrics struct {
	registry *prometheus.Registry

	checksTotal         *prometheus.CounterVec
	auditRecordsTotal   *prometheus.CounterVec
	auditDroppedTotal   prometheus.Counter
	streamObservers     prometheus.Gauge
	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them in a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		checksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lanauthgate_checks_total",
			Help: "Authorization checks by outcome.",
		}, []string{"result"}),
		auditRecordsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lanauthgate_audit_records_total",
			Help: "Audit entries written by action kind.",
		}, []string{"action"}),
		auditDroppedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lanauthgate_audit_dropped_total",
			Help: "Audit records dropped because the action kind is not audited.",
		}),
		streamObservers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lanauthgate_stream_observers",
			Help: "Connected audit log tail observers.",
		}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.checksTotal,
		m.auditRecordsTotal,
		m.auditDroppedTotal,
		m.streamObservers,
		m.httpInFlight,
		m.httpRequestsTotal,
		m.httpRequestDuration,
	)

	return m
}

// Registry returns the registry the collectors live in
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveCheck counts one authorization check
func (m *Metrics) ObserveCheck(result string) {
	if m == nil {
		return
	}
	m.checksTotal.WithLabelValues(result).Inc()
}

// ObserveAuditRecord counts one persisted audit entry
func (m *Metrics) ObserveAuditRecord(action string) {
	if m == nil {
		return
	}
	m.auditRecordsTotal.WithLabelValues(action).Inc()
}

// ObserveAuditDropped counts one audit record filtered by the allow-list
func (m *Metrics) ObserveAuditDropped() {
	if m == nil {
		return
	}
	m.auditDroppedTotal.Inc()
}

// ObserverConnected tracks a new tail stream
func (m *Metrics) ObserverConnected() {
	if m == nil {
		return
	}
	m.streamObservers.Inc()
}

// ObserverDisconnected tracks a closed tail stream
func (m *Metrics) ObserverDisconnected() {
	if m == nil {
		return
	}
	m.streamObservers.Dec()
}

// Instrument records request count, latency and in-flight requests.
// Routes are labelled by their chi pattern to keep cardinality bounded.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		labels := []string{r.Method, route, strconv.Itoa(status)}
		m.httpRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		m.httpRequestsTotal.WithLabelValues(labels...).Inc()
	})
}

// Package metrics exposes Prometheus instrumentation for the generation
// pipeline and the HTTP API.
package metrics

import (
	"time"

	"github.com/phrazzld/productgen/internal/generation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "productgen"

// Metrics holds every collector. Create one per registry.
type Metrics struct {
	GenerationsTotal   *prometheus.CounterVec
	GenerationDuration *prometheus.HistogramVec

	BackendCallsTotal   *prometheus.CounterVec
	BackendCallDuration *prometheus.HistogramVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

var _ generation.Recorder = (*Metrics)(nil)

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		GenerationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Total number of product generations by task and outcome",
			},
			[]string{"task", "outcome"},
		),
		GenerationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "End-to-end product generation duration in seconds",
				Buckets:   []float64{.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
			},
			[]string{"task"},
		),
		BackendCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "backend",
				Name:      "calls_total",
				Help:      "Total number of backend calls by backend, task and status",
			},
			[]string{"backend", "task", "status"},
		),
		BackendCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "backend",
				Name:      "call_duration_seconds",
				Help:      "Backend call duration in seconds",
				Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 20, 30, 60, 120},
			},
			[]string{"backend", "task"},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"method", "route"},
		),
	}
}

// ObserveGeneration implements generation.Recorder.
func (m *Metrics) ObserveGeneration(task generation.Task, outcome string, duration time.Duration) {
	m.GenerationsTotal.WithLabelValues(string(task), outcome).Inc()
	m.GenerationDuration.WithLabelValues(string(task)).Observe(duration.Seconds())
}

// ObserveBackendCall implements generation.Recorder.
func (m *Metrics) ObserveBackendCall(backend string, task generation.Task, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.BackendCallsTotal.WithLabelValues(backend, string(task), status).Inc()
	m.BackendCallDuration.WithLabelValues(backend, string(task)).Observe(duration.Seconds())
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "glprojects"

// Metrics contains all Prometheus metrics for glprojects.
type Metrics struct {
	// GitLab API.
	APIRequestsTotal   *prometheus.CounterVec
	APIErrorsTotal     *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec
	APIThrottledTotal  prometheus.Counter

	// Build info.
	BuildInfo *prometheus.GaugeVec
}

// New creates a new Metrics instance and registers all metrics with reg.
// A nil reg registers with the default registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	m := &Metrics{
		APIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of GitLab API requests",
			},
			[]string{"method", "status"},
		),
		APIErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_errors_total",
				Help:      "Total number of failed GitLab API requests",
			},
			[]string{"method", "kind"},
		),
		APIRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "GitLab API request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		APIThrottledTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_throttled_total",
				Help:      "Total number of GitLab API requests delayed by the client-side rate limiter",
			},
		),

		// Build info.
		BuildInfo: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "build_info",
				Help:      "Build information",
			},
			[]string{"version", "commit", "date"},
		),
	}

	return m
}

// SetBuildInfo sets the build info metric.
func (m *Metrics) SetBuildInfo(version, commit, date string) {
	m.BuildInfo.WithLabelValues(version, commit, date).Set(1)
}

// RecordAPIRequest records a completed GitLab API request.
func (m *Metrics) RecordAPIRequest(method, status string, duration float64) {
	m.APIRequestsTotal.WithLabelValues(method, status).Inc()
	m.APIRequestDuration.WithLabelValues(method).Observe(duration)
}

// RecordAPIError records a failed GitLab API request. kind is "remote" or
// "transport".
func (m *Metrics) RecordAPIError(method, kind string) {
	m.APIErrorsTotal.WithLabelValues(method, kind).Inc()
}

// RecordThrottled records a request delayed by the rate limiter.
func (m *Metrics) RecordThrottled() {
	m.APIThrottledTotal.Inc()
}

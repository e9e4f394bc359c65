package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the skill service.
type Metrics struct {
	// Upstream API metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: service={kma,naver}, endpoint, outcome={success,api_error,transport_error}
	UpstreamDuration *prometheus.HistogramVec // labels: service, endpoint

	// Cache metrics.
	CacheLookups *prometheus.CounterVec // labels: backend={memory,sqlite}, result={hit,miss}

	// Skill execution metrics.
	SkillRuns     *prometheus.CounterVec   // labels: skill, outcome={success,error}
	SkillDuration *prometheus.HistogramVec // labels: skill
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.CacheLookups,
		m.SkillRuns,
		m.SkillDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kweather",
			Name:      "upstream_requests_total",
			Help:      "Upstream API requests by service, endpoint, and outcome.",
		}, []string{"service", "endpoint", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kweather",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"service", "endpoint"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kweather",
			Name:      "cache_lookups_total",
			Help:      "Forecast cache lookups by backend and result.",
		}, []string{"backend", "result"}),
		SkillRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kweather",
			Name:      "skill_runs_total",
			Help:      "Skill executions by skill name and outcome.",
		}, []string{"skill", "outcome"}),
		SkillDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kweather",
			Name:      "skill_run_duration_seconds",
			Help:      "End-to-end skill execution duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"skill"}),
	}
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Nightwatch
type MetricsRegistry struct {
	// HTTP Metrics (ops server)
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Slash-command Metrics
	InteractionsTotal   prometheus.CounterVec
	InteractionDuration prometheus.HistogramVec

	// Directory Metrics
	DirectoryQueriesTotal prometheus.CounterVec
	DirectoryQueryErrors  prometheus.CounterVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Business Metrics
	DigestPublishesTotal prometheus.CounterVec
	GrantFailuresTotal   prometheus.CounterVec
	MembersVerifiedTotal prometheus.Counter
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nightwatch_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nightwatch_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "nightwatch_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		InteractionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nightwatch_interactions_total",
				Help: "Total slash-command interactions by command and outcome",
			},
			[]string{"command", "outcome"},
		),
		InteractionDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nightwatch_interaction_duration_seconds",
				Help:    "Slash-command handling time in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"command"},
		),

		DirectoryQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nightwatch_directory_queries_total",
				Help: "Total member-directory operations by collection and operation",
			},
			[]string{"collection", "operation"},
		),
		DirectoryQueryErrors: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nightwatch_directory_query_errors_total",
				Help: "Failed member-directory operations by collection and operation",
			},
			[]string{"collection", "operation"},
		),

		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nightwatch_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nightwatch_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		DigestPublishesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nightwatch_digest_publishes_total",
				Help: "Daily digest publish attempts by trigger and result",
			},
			[]string{"trigger", "result"},
		),
		GrantFailuresTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nightwatch_grant_failures_total",
				Help: "Failed platform-side provisioning steps by kind",
			},
			[]string{"kind"},
		),
		MembersVerifiedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "nightwatch_members_verified_total",
				Help: "Successful first-time membership verifications",
			},
		),
	}
}

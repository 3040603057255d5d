// Package metrics provides Prometheus metrics for restwell.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderRequestsTotal counts provider data requests by endpoint and outcome kind.
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "restwell",
			Name:      "provider_requests_total",
			Help:      "Total number of Fitbit API requests",
		},
		[]string{"endpoint", "outcome"},
	)

	// ProviderRetriesTotal counts backoff retries by error kind.
	ProviderRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "restwell",
			Name:      "provider_retries_total",
			Help:      "Total number of retried Fitbit API requests",
		},
		[]string{"kind"},
	)

	// TokenRefreshTotal counts token refresh attempts by result.
	TokenRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "restwell",
			Name:      "token_refresh_total",
			Help:      "Total number of OAuth token refresh attempts",
		},
		[]string{"result"},
	)

	// SyncTotal counts sync runs by status.
	SyncTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "restwell",
			Name:      "sync_total",
			Help:      "Total number of user data syncs",
		},
		[]string{"status"},
	)

	// SyncDuration measures sync duration.
	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "restwell",
			Name:      "sync_duration_seconds",
			Help:      "Duration of user data syncs in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// RecommendationsTotal counts generated recommendation sets by source.
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "restwell",
			Name:      "recommendations_total",
			Help:      "Total number of generated recommendation sets",
		},
		[]string{"source"},
	)

	// HTTPRequestsTotal counts API requests by route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "restwell",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP API requests",
		},
		[]string{"method", "route", "status"},
	)
)

// RecordProviderRequest records a provider request outcome.
func RecordProviderRequest(endpoint, outcome string) {
	ProviderRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
}

// RecordRetry records a backoff retry.
func RecordRetry(kind string) {
	ProviderRetriesTotal.WithLabelValues(kind).Inc()
}

// RecordTokenRefresh records a refresh attempt.
func RecordTokenRefresh(result string) {
	TokenRefreshTotal.WithLabelValues(result).Inc()
}

// RecordSync records a sync run.
func RecordSync(status string, duration float64) {
	SyncTotal.WithLabelValues(status).Inc()
	SyncDuration.Observe(duration)
}

// RecordRecommendations records a generated recommendation set.
func RecordRecommendations(source string) {
	RecommendationsTotal.WithLabelValues(source).Inc()
}

// RecordHTTPRequest records a served API request.
func RecordHTTPRequest(method, route string, status int) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

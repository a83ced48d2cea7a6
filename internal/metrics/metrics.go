// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Feed Metrics
	FeedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_requests_total",
			Help: "Total number of remote feed API calls",
		},
		[]string{"operation", "outcome"}, // outcome: "ok", "absent"
	)

	FeedRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_request_duration_seconds",
			Help:    "Duration of remote feed API calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	FeedRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_rate_limited_total",
			Help: "Feed calls dropped by the client-side rate limiter",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit hits",
		},
		[]string{"endpoint"},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// Sync Metrics
	SyncRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_rows_total",
			Help: "CSV log rows processed by the sync job",
		},
		[]string{"metric", "outcome"}, // outcome: "inserted", "duplicate", "skipped"
	)

	SyncFiles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_files_total",
			Help: "CSV log files processed by the sync job",
		},
		[]string{"metric", "outcome"}, // outcome: "committed", "missing", "failed"
	)

	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sync_duration_seconds",
			Help:    "Duration of one day's sync in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	SyncLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sync_last_success_timestamp",
			Help: "Unix timestamp of the last day synced without errors",
		},
	)
)

// Feed call outcomes.
const (
	OutcomeOK     = "ok"
	OutcomeAbsent = "absent"
)

// RecordFeedRequest records one remote feed call
func RecordFeedRequest(operation string, ok bool, duration time.Duration) {
	outcome := OutcomeAbsent
	if ok {
		outcome = OutcomeOK
	}
	FeedRequestsTotal.WithLabelValues(operation, outcome).Inc()
	FeedRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordSyncFile records the row and file outcome of one CSV log file.
func RecordSyncFile(metric, outcome string, inserted, duplicates, skipped int) {
	SyncFiles.WithLabelValues(metric, outcome).Inc()
	if inserted > 0 {
		SyncRows.WithLabelValues(metric, "inserted").Add(float64(inserted))
	}
	if duplicates > 0 {
		SyncRows.WithLabelValues(metric, "duplicate").Add(float64(duplicates))
	}
	if skipped > 0 {
		SyncRows.WithLabelValues(metric, "skipped").Add(float64(skipped))
	}
}

// RecordSyncDay records the duration of one day's sync. A clean day also
// moves the last-success timestamp forward.
func RecordSyncDay(duration time.Duration, failed bool) {
	SyncDuration.Observe(duration.Seconds())
	if !failed {
		SyncLastSuccess.Set(float64(time.Now().Unix()))
	}
}

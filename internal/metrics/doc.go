// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

/*
Package metrics provides Prometheus instrumentation for DomSafe.

All collectors are registered on the default registry through promauto and
are exported at /metrics by the dashboard server.

# Available Metrics

Feed Metrics:
  - feed_requests_total: Calls to the remote feed API (counter)
    Labels: operation, outcome
  - feed_request_duration_seconds: Feed call latency (histogram)
    Labels: operation

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Requests by result (counter)
  - circuit_breaker_consecutive_failures: Current failure streak (gauge)
  - circuit_breaker_state_transitions_total: Transitions (counter)

HTTP Metrics:
  - api_requests_total: Requests by method, endpoint and status (counter)
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Requests rejected by the rate limiter (counter)

Database Metrics:
  - duckdb_query_duration_seconds: Query time by operation and table (histogram)
  - duckdb_query_errors_total: Failed queries (counter)

Sync Metrics:
  - sync_rows_total: CSV rows by metric and outcome (counter)
    Outcomes: inserted, duplicate, skipped
  - sync_files_total: Log files by metric and outcome (counter)
  - sync_duration_seconds: Duration of one day's sync (histogram)
  - sync_last_success_timestamp: Unix time of the last clean day (gauge)

# Usage

	start := time.Now()
	value, ok := client.FetchLatest(ctx, "temperature")
	metrics.RecordFeedRequest("fetch_latest", ok, time.Since(start))
*/
package metrics

// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

/*
Package middleware provides HTTP middleware shared by the dashboard router.

Key Components:

  - PrometheusMetrics: request count, latency and in-flight instrumentation
  - AccessLog: one structured zerolog line per completed request

Both are written as http.HandlerFunc decorators and adapted to chi's
func(http.Handler) http.Handler form by the api package:

	r.Use(chiMiddleware(middleware.PrometheusMetrics))
	r.Use(chiMiddleware(middleware.AccessLog))

Endpoint labels use the matched chi route pattern when one is available so
that query strings and unknown paths do not inflate metric cardinality.
*/
package middleware

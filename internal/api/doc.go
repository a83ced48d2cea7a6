// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

/*
Package api serves the dashboard: a JSON API under /api and a handful of
HTML pages.

# Endpoints

Live values come from the feed broker on every request:

	GET  /api/live-data        latest alarm status, temperature and humidity
	GET  /api/system-status    the same values under a "status" key

History comes from the store:

	GET  /api/historical-data?date=YYYY-MM-DD&sensor=temperature
	GET  /api/daily-averages?start_date=...&end_date=...&sensor=...
	GET  /api/daily-alerts?start_date=...&end_date=...
	GET  /api/intrusions?date=YYYY-MM-DD

daily-averages returns every raw reading in the range; the dashboard
depends on the name, so it was kept after averaging was removed.

Commands are forwarded to device feeds:

	POST /api/control          {"device": "light", "action": "ON"}
	POST /api/security-toggle  {"enabled": true}

A numeric action is forwarded as written (1, 2.5); a boolean action is
forwarded as True or False.

Operations endpoints:

	GET  /api/health/live      process is up
	GET  /api/health/ready     store reachable
	GET  /metrics              Prometheus exposition

# Response Envelope

Every /api response is a models.APIResponse:

	{"success": true, "data": {...}}
	{"success": false, "error": "Date parameter required", "code": "VALIDATION_ERROR"}

A broker that cannot be reached never fails a request: the affected values
are reported as "unknown" or null. A store that cannot be reached fails the
request with 500. Bad query parameters fail it with 400 before the store is
touched.

# Middleware

Routes are served by chi with request IDs bound to the logging context,
real-IP extraction, panic recovery, CORS (go-chi/cors), per-IP rate
limiting on /api (go-chi/httprate), Prometheus metrics and access logging.
*/
package api

// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

/*
Package feed talks to the cloud IoT broker that carries the live sensor,
alarm and device-control feeds.

The broker exposes one REST root per account ({base}/{username}) and a
key-value feed per sensor or device:

	GET  {account}/feeds/{key}/data/last   latest value
	POST {account}/feeds/{key}/data        push {"value": "..."}
	GET  {account}/feeds                   list feeds

Requests authenticate with the X-AIO-Key header.

# Layers

  - Client: raw HTTP calls that return errors (5s timeout for reads and
    writes, 10s for listing), guarded by an optional x/time/rate limiter
  - CircuitBreakerClient: sony/gobreaker wrapper; an open breaker rejects
    calls without touching the network
  - Relay: the best-effort view used by the dashboard. FetchLatest reports
    absent and SendCommand reports false on any failure; errors are logged
    and counted, never returned

Each call is a single attempt. There is no retry and no backoff.

# Usage

	relay := feed.New(&cfg.Feed)
	if v, ok := relay.FetchLatest(ctx, models.FeedTemperature); ok {
	    t, _ := v.Float()
	    ...
	}
	if !relay.SendCommand(ctx, "light", "ON") {
	    ...
	}
*/
package feed

// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/domsafe/internal/logging"
)

// AccessLog writes one log line per request. Server errors log at warn level,
// everything else at debug so that dashboard polling stays quiet.
func AccessLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := newStatusRecorder(w)

		next(wrapper, r)

		logger := logging.Ctx(r.Context())
		var event *zerolog.Event
		if wrapper.statusCode >= http.StatusInternalServerError {
			event = logger.Warn()
		} else {
			event = logger.Debug()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapper.statusCode).
			Dur("duration", time.Since(start)).
			Str("remote_addr", r.RemoteAddr).
			Msg("request completed")
	}
}

// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

/*
Package logging provides the zerolog-based logger shared by every DomSafe binary.

The global logger is configured once from main:

	logging.Init(logging.Config{
	    Level:  cfg.Logging.Level,
	    Format: cfg.Logging.Format,
	    Caller: cfg.Logging.Caller,
	})

and then used through the level helpers:

	logging.Info().Str("date", date).Int64("inserted", n).Msg("Synced sensor readings")
	logging.Warn().Err(err).Str("feed", key).Msg("Feed unavailable")

HTTP handlers log through Ctx, which adds the request_id and correlation_id
placed in the context by the router's request ID middleware:

	logging.Ctx(r.Context()).Error().Err(err).Msg("Query failed")

The slog bridge (NewSlogLogger) lets libraries that only accept *slog.Logger,
such as sutureslog, write through the same zerolog output.

Environment variables (read by internal/config):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: include caller file:line (default: false)
*/
package logging

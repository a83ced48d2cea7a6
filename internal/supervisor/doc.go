// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

/*
Package supervisor runs the dashboard server under a suture v4 supervisor tree.

The tree has a root ("domsafe") and an "api-layer" child that owns the HTTP
server. A crashed server is restarted with suture's backoff; a canceled
context stops every service, waiting at most TreeConfig.ShutdownTimeout.

Supervisor events are logged through a *slog.Logger via sutureslog. The
server passes logging.NewSlogLogger() so events land in the zerolog stream:

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}

The CSV sync job is a batch process (cmd/sync) and is not supervised.
*/
package supervisor

// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

// Package services adapts long-running DomSafe components to suture.Service.
//
// HTTPServerService turns the blocking ListenAndServe/Shutdown pair of an
// *http.Server into a context-aware Serve: the server runs until the
// supervisor cancels the context, then drains connections for at most the
// configured shutdown timeout.
package services

// DomSafe - Home Security Monitoring Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/domsafe

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/domsafe/internal/models"
)

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK while the process is serving.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondData(w, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Returns 200 OK only if the store answers a ping, 503 otherwise. The
// broker is not checked: live values degrade instead of failing.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.store != nil && h.store.Ping(r.Context()) == nil

	statusCode := http.StatusOK
	resp := &models.APIResponse{Success: dbConnected}
	if !dbConnected {
		statusCode = http.StatusServiceUnavailable
		resp.Error = msgDatabaseUnavailable
		resp.Code = codeNotReady
	}
	resp.Data = map[string]interface{}{
		"database_connected": dbConnected,
		"ready_to_serve":     dbConnected,
		"uptime":             time.Since(h.startTime).Seconds(),
	}

	respondJSON(w, statusCode, resp)
}

// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/reelhouse/internal/logging"
)

// readinessTimeout bounds the database ping of the readiness probe.
const readinessTimeout = 2 * time.Second

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Uptime  string `json:"uptime,omitempty"`
}

// Health reports that the process is serving requests. It does not touch
// the database, so it doubles as a liveness probe.
//
// Method: GET
// Path: /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Message: "API is running"})
}

// HealthReady additionally pings the database.
//
// Method: GET
// Path: /api/health/ready
// Returns 503 when the database is unreachable.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	uptime := time.Since(h.startTime).Round(time.Second).String()
	if err := h.store.Ping(ctx); err != nil {
		logging.CtxErr(r.Context(), err).Msg("Readiness check failed")
		respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:  "unavailable",
			Message: "Database is not reachable",
			Uptime:  uptime,
		})
		return
	}

	respondJSON(w, http.StatusOK, HealthResponse{Status: "ready", Message: "API is running", Uptime: uptime})
}

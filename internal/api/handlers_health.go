// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the payload returned by the health endpoint.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health reports service liveness and store connectivity.
//
// Method: GET
// Path: /api/v1/health
//
// Response:
//   - 200: service healthy, database reachable
//   - 503: database unreachable
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	status := HealthStatus{Status: "ok", Database: "ok"}
	code := http.StatusOK

	if h.db == nil {
		status.Status = "degraded"
		status.Database = "unavailable"
		code = http.StatusServiceUnavailable
	} else if err := h.db.Ping(r.Context()); err != nil {
		status.Status = "degraded"
		status.Database = "unreachable"
		code = http.StatusServiceUnavailable
	}

	respondSuccess(w, code, status, start)
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of dependencies.
//
// Method: GET
// Path: /api/v1/health/live
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	respondSuccess(w, http.StatusOK, map[string]any{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, start)
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Returns 200 OK only if the store is reachable, 503 otherwise.
//
// Method: GET
// Path: /api/v1/health/ready
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil

	code := http.StatusOK
	if !dbConnected {
		code = http.StatusServiceUnavailable
	}

	respondSuccess(w, code, map[string]any{
		"database_connected": dbConnected,
		"ready_to_serve":     dbConnected,
		"uptime":             time.Since(h.startTime).Seconds(),
	}, start)
}

// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

// Package api provides the HTTP surface of Chesthound using the Chi router.
//
// Endpoints (all JSON, wrapped in models.APIResponse):
//
//	POST /api/v1/worlds/upload           multipart save upload (db_file + fwl_file)
//	GET  /api/v1/worlds                  list known worlds
//	GET  /api/v1/worlds/{id}             single world
//	GET  /api/v1/worlds/{id}/chests      all chests in a world
//	GET  /api/v1/worlds/{id}/items/summary  per-item-name quantity totals
//	GET  /api/v1/chests/{id}/items       paginated chest inventory
//	GET  /api/v1/items/{id}              single item
//	GET  /api/v1/health                  liveness and store connectivity
//	GET  /metrics                        Prometheus metrics
//
// File organization:
//   - handlers.go: Handler type and shared guards
//   - handlers_helpers.go: JSON response and parameter helpers
//   - handlers_worlds.go, handlers_chests.go, handlers_items.go,
//     handlers_health.go: per-entity endpoints
//   - chi_middleware.go: CORS, rate limiting, request ID, metrics middleware
//   - router.go: route tree assembly
//
// All handlers follow a consistent pattern:
//  1. Parameter parsing and validation
//  2. Store call with the request context
//  3. JSON response with timestamp and query time metadata
package api

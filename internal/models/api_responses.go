// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

package models

import (
	"time"

	"github.com/google/uuid"
)

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "WORLD_NOT_NEWER", "message": "..."},
//	  "metadata": {"timestamp": "2026-08-26T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string    `json:"status"`
	Data     any       `json:"data"`
	Metadata Metadata  `json:"metadata"`
	Error    *APIError `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
// QueryTimeMS is the store round-trip time in milliseconds.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError carries structured error details.
//
// Codes used by Chesthound:
//   - VALIDATION_ERROR: invalid request parameters
//   - PARSE_ERROR: the uploaded save file could not be decoded
//   - WORLD_NOT_NEWER: the uploaded save does not supersede the stored world
//   - NOT_FOUND: requested entity does not exist
//   - DATABASE_ERROR: store failure (detail logged server-side only)
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// UploadResult is the payload returned by a successful world upload.
type UploadResult struct {
	WorldID     uuid.UUID `json:"world_id"`
	WorldName   string    `json:"world_name"`
	Created     bool      `json:"created"`
	TotalChests int       `json:"total_chests"`
	TotalItems  int       `json:"total_items"`
}

// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/chesthound/chesthound/internal/config"
	"github.com/chesthound/chesthound/internal/database"
	"github.com/chesthound/chesthound/internal/ingest"
	"github.com/chesthound/chesthound/internal/savefile"
)

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	db        *database.DB
	ingestor  *ingest.Ingestor
	cfg       *config.Config
	startTime time.Time
}

// NewHandler creates a new API handler.
func NewHandler(db *database.DB, ingestor *ingest.Ingestor, cfg *config.Config) *Handler {
	return &Handler{
		db:        db,
		ingestor:  ingestor,
		cfg:       cfg,
		startTime: time.Now(),
	}
}

// requireDB checks database availability and returns true if available,
// false if an error was sent.
func (h *Handler) requireDB(w http.ResponseWriter) bool {
	if h.db == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_ERROR", "Database not available", nil)
		return false
	}
	return true
}

// pathID extracts and parses a UUID path parameter. Returns uuid.Nil and
// false after sending a 400 when the parameter is missing or malformed.
func pathID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", param+" must be a valid UUID", nil)
		return uuid.Nil, false
	}
	return id, true
}

// respondDomainError maps store and ingestion errors to HTTP responses.
//
//	ErrNotFound      -> 404 NOT_FOUND
//	*NotNewerError   -> 409 WORLD_NOT_NEWER
//	*ParseError      -> 422 PARSE_ERROR
//	anything else    -> 500 DATABASE_ERROR (detail logged, not exposed)
func respondDomainError(w http.ResponseWriter, err error) {
	var notNewer *database.NotNewerError
	var parseErr *savefile.ParseError

	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Requested resource does not exist", nil)
	case errors.As(err, &notNewer):
		respondError(w, http.StatusConflict, "WORLD_NOT_NEWER", notNewer.Error(), nil)
	case errors.As(err, &parseErr):
		respondError(w, http.StatusUnprocessableEntity, "PARSE_ERROR", parseErr.Error(), nil)
	default:
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Internal server error", err)
	}
}

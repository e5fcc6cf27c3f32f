// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

package api

import (
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/chesthound/chesthound/internal/logging"
)

// Form field names for the save upload endpoint.
const (
	uploadFieldWorldData = "db_file"
	uploadFieldWorldMeta = "fwl_file"
)

// UploadWorld ingests a Valheim save upload.
//
// Method: POST
// Path: /api/v1/worlds/upload
// Body: multipart/form-data with db_file (.db world state) and
// fwl_file (.fwl world metadata)
//
// Response:
//   - 201: world created (first upload for its UID)
//   - 200: world updated
//   - 400: missing form fields
//   - 409: save is not newer than the stored world
//   - 413: request body exceeds the configured limit
//   - 422: save files could not be decoded
//   - 500: store failure (nothing was written)
func (h *Handler) UploadWorld(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Upload.MaxBodyBytes)
	if err := r.ParseMultipartForm(h.cfg.Upload.MaxBodyBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge, "VALIDATION_ERROR", "Upload exceeds size limit", nil)
			return
		}
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Request body must be multipart/form-data", nil)
		return
	}
	defer cleanupMultipart(r)

	dbFile, _, err := r.FormFile(uploadFieldWorldData)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "db_file form field is required", nil)
		return
	}
	defer closeUploadFile(dbFile)

	fwlFile, _, err := r.FormFile(uploadFieldWorldMeta)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "fwl_file form field is required", nil)
		return
	}
	defer closeUploadFile(fwlFile)

	result, err := h.ingestor.IngestSave(r.Context(), dbFile, fwlFile)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	respondSuccess(w, status, result, start)
}

// ListWorlds returns all known worlds.
//
// Method: GET
// Path: /api/v1/worlds
func (h *Handler) ListWorlds(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	start := time.Now()

	worlds, err := h.db.ListWorlds(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, worlds, start)
}

// GetWorld returns a single world by ID.
//
// Method: GET
// Path: /api/v1/worlds/{id}
func (h *Handler) GetWorld(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()

	world, err := h.db.GetWorld(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, world, start)
}

// cleanupMultipart removes temporary files created during multipart parsing
func cleanupMultipart(r *http.Request) {
	if r.MultipartForm == nil {
		return
	}
	if err := r.MultipartForm.RemoveAll(); err != nil {
		logging.Warn().Err(err).Msg("Failed to clean up multipart form")
	}
}

// closeUploadFile closes an uploaded form file
func closeUploadFile(f multipart.File) {
	if err := f.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close uploaded file")
	}
}

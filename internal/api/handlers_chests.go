// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

package api

import (
	"net/http"
	"time"
)

// ListChests returns every chest in a world.
//
// Method: GET
// Path: /api/v1/worlds/{id}/chests
//
// Response:
//   - 200: chests retrieved (empty array for a world with no chests)
//   - 400: malformed world ID
//   - 404: world does not exist
func (h *Handler) ListChests(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	worldID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()

	chests, err := h.db.ListChestsByWorld(r.Context(), worldID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, chests, start)
}

// GetChest returns a single chest by ID.
//
// Method: GET
// Path: /api/v1/chests/{id}
func (h *Handler) GetChest(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()

	chest, err := h.db.GetChest(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, chest, start)
}

// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

package api

import (
	"fmt"
	"net/http"
	"time"
)

// ChestItemsRequest holds validated pagination parameters for the chest
// inventory endpoint.
type ChestItemsRequest struct {
	Limit  int `validate:"min=1"`
	Offset int `validate:"min=0"`
}

// ListChestItems returns one page of a chest's inventory.
//
// Method: GET
// Path: /api/v1/chests/{id}/items
// Query: limit (default from config, at most api.max_page_size),
// offset (default 0)
//
// Response:
//   - 200: page retrieved; total and has_more describe the full inventory
//   - 400: malformed chest ID or out-of-range pagination parameters
//   - 404: chest does not exist
func (h *Handler) ListChestItems(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	chestID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	req := ChestItemsRequest{
		Limit:  getIntParam(r, "limit", h.cfg.API.DefaultPageSize),
		Offset: getIntParam(r, "offset", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	// The maximum is configured, so it cannot live in the struct tag.
	if req.Limit > h.cfg.API.MaxPageSize {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			fmt.Sprintf("limit must be at most %d", h.cfg.API.MaxPageSize), nil)
		return
	}

	start := time.Now()

	page, err := h.db.ListItemsByChest(r.Context(), chestID, req.Limit, req.Offset)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, page, start)
}

// GetItem returns a single item by ID.
//
// Method: GET
// Path: /api/v1/items/{id}
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()

	item, err := h.db.GetItem(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, item, start)
}

// ItemSummary returns total quantities per item name across all chests in
// a world.
//
// Method: GET
// Path: /api/v1/worlds/{id}/items/summary
//
// Response:
//   - 200: map of item name to summed quantity (empty object when the
//     world holds no items)
//   - 400: malformed world ID
//   - 404: world does not exist
func (h *Handler) ItemSummary(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	worldID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()

	summary, err := h.db.SummarizeItemsByWorld(r.Context(), worldID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, summary, start)
}

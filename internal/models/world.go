// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

package models

import (
	"time"

	"github.com/google/uuid"
)

// World represents one persistent Valheim world instance, synchronized to the
// most recent save ever uploaded for its UID.
//
// Identity:
//   - ID: store-assigned surrogate key, immutable, never reused
//   - UID: 64-bit identity assigned by the game, stable across saves of the
//     same world; this is the natural key used for synchronization
//
// Freshness:
//   - NetTime: monotonic in-game time counter from the save file. A stored
//     world's NetTime is the maximum NetTime of any save ever merged for its
//     UID. Uploads with a NetTime less than or equal to the stored value are
//     rejected.
//   - ModifiedTime: advisory wall-clock timestamp from the save; never used
//     for ordering decisions.
//
// A world row is created on the first upload for a UID and updated in place
// on every accepted later upload. It is never re-created and never deleted
// by the ingestion path.
type World struct {
	ID           uuid.UUID `json:"id"`
	UID          int64     `json:"uid"`
	Name         string    `json:"name"`
	Version      int       `json:"version"`
	Seed         int64     `json:"seed"`
	SeedName     string    `json:"seed_name"`
	NetTime      float64   `json:"net_time"`
	ModifiedTime int64     `json:"modified_time"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// WorldDraft is the create/update record for a world, produced by extraction
// from a parsed save. All fields default to their zero value when the source
// document omits them.
type WorldDraft struct {
	UID          int64
	Name         string
	Version      int
	Seed         int64
	SeedName     string
	NetTime      float64
	ModifiedTime int64
}

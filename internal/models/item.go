// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultDurability is the full-durability sentinel applied when the save
// omits an item's durability field.
const DefaultDurability = 100.0

// Item represents one inventory entry belonging to exactly one chest.
//
// Items are created only as part of a bulk inventory replace and are never
// individually mutated; they disappear when their chest (or world) is
// replaced or removed.
//
// Fields:
//   - Name: item type identifier (free-form, not unique)
//   - Quantity: stack size, non-negative
//   - Durability: remaining durability; DefaultDurability when the save
//     omits it
//   - Quality: upgrade tier
//   - Variant: sub-type index
//   - PositionX/PositionY: slot coordinates within the chest grid
//   - CrafterID: player ID of the crafter, 0 for unknown or world-generated
//   - CrafterName: crafter display name, nil when unknown
type Item struct {
	ID          uuid.UUID `json:"id"`
	ChestID     uuid.UUID `json:"chest_id"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	Durability  float64   `json:"durability"`
	Quality     int       `json:"quality"`
	Variant     int       `json:"variant"`
	PositionX   int       `json:"position_x"`
	PositionY   int       `json:"position_y"`
	Equipped    bool      `json:"equipped"`
	CrafterID   int64     `json:"crafter_id"`
	CrafterName *string   `json:"crafter_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ItemDraft is the create record for an item, produced by extraction from a
// decoded inventory entry.
type ItemDraft struct {
	ChestID     uuid.UUID
	Name        string
	Quantity    int
	Durability  float64
	Quality     int
	Variant     int
	PositionX   int
	PositionY   int
	Equipped    bool
	CrafterID   int64
	CrafterName *string
}

// ItemPage is one page of a chest's items together with offset pagination
// bookkeeping. Total is the exact item count for the chest; HasMore reports
// whether offset+len(Items) is still short of Total.
type ItemPage struct {
	Items   []Item `json:"items"`
	Total   int64  `json:"total"`
	Limit   int    `json:"limit"`
	Offset  int    `json:"offset"`
	HasMore bool   `json:"has_more"`
}

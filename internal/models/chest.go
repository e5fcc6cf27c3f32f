// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

package models

import (
	"time"

	"github.com/google/uuid"
)

// Chest represents one container object found in a world save.
//
// Chests have no cross-save identity: every accepted upload discards the
// world's entire chest set and inserts a fresh one, so a chest's surrogate ID
// is only meaningful until the next upload for its world.
//
// Spatial fields mirror the ZDO (zone data object) record in the save:
// Position is the continuous world coordinate, Sector the discrete zone grid
// cell, Rotation the orientation.
type Chest struct {
	ID         uuid.UUID `json:"id"`
	WorldID    uuid.UUID `json:"world_id"`
	PrefabName string    `json:"prefab_name"`
	CreatorID  int64     `json:"creator_id"`
	PositionX  float64   `json:"position_x"`
	PositionY  float64   `json:"position_y"`
	PositionZ  float64   `json:"position_z"`
	SectorX    int       `json:"sector_x"`
	SectorY    int       `json:"sector_y"`
	RotationX  float64   `json:"rotation_x"`
	RotationY  float64   `json:"rotation_y"`
	RotationZ  float64   `json:"rotation_z"`
	CreatedAt  time.Time `json:"created_at"`
}

// ChestDraft is the create record for a chest, produced by extraction from a
// ZDO document. Missing sub-documents or fields default to zero. The owning
// world is supplied at insert time, once its row exists.
type ChestDraft struct {
	PrefabName string
	CreatorID  int64
	PositionX  float64
	PositionY  float64
	PositionZ  float64
	SectorX    int
	SectorY    int
	RotationX  float64
	RotationY  float64
	RotationZ  float64

	// ItemBlob is the base64-encoded inventory payload carried alongside the
	// chest ZDO. It is decoded after the chest row exists; a decode failure
	// leaves the chest empty rather than failing the upload.
	ItemBlob string
}

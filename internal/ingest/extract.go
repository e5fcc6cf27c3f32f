// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

package ingest

import (
	"github.com/chesthound/chesthound/internal/models"
)

// chestPrefabs is the allow-list of ZDO prefab names treated as storage
// chests. Every other object in the save is ignored.
var chestPrefabs = map[string]struct{}{
	"piece_chest":            {},
	"piece_chest_wood":       {},
	"piece_chest_iron":       {},
	"piece_chest_blackmetal": {},
}

// IsChestPrefab reports whether a prefab name belongs to a storage chest.
func IsChestPrefab(name string) bool {
	_, ok := chestPrefabs[name]
	return ok
}

// ExtractWorldDraft builds a world record from the parsed .db snapshot and
// .fwl metadata documents. Missing fields default to zero values.
func ExtractWorldDraft(snapshot models.RawSnapshot, meta models.RawMeta) models.WorldDraft {
	saveMeta := snapshot.Doc("meta")

	return models.WorldDraft{
		UID:          meta.Int64("uid", 0),
		Name:         meta.String("name", ""),
		Seed:         meta.Int64("seed", 0),
		SeedName:     meta.String("seedName", ""),
		Version:      saveMeta.Int("worldVersion", 0),
		NetTime:      saveMeta.Float("netTime", 0),
		ModifiedTime: saveMeta.Int64("modified", 0),
	}
}

// ExtractChestDraft builds a chest record from a ZDO document. The item
// blob is carried along undecoded; sub-documents that are missing yield
// zero coordinates.
func ExtractChestDraft(zdo models.RawDocument) models.ChestDraft {
	position := zdo.Doc("position")
	sector := zdo.Doc("sector")
	rotation := zdo.Doc("rotation")
	longs := zdo.Doc("longsByName")
	strings := zdo.Doc("stringsByName")

	return models.ChestDraft{
		PrefabName: zdo.String("prefabName", ""),
		CreatorID:  longs.Int64("creator", 0),
		PositionX:  position.Float("x", 0),
		PositionY:  position.Float("y", 0),
		PositionZ:  position.Float("z", 0),
		SectorX:    sector.Int("x", 0),
		SectorY:    sector.Int("y", 0),
		RotationX:  rotation.Float("x", 0),
		RotationY:  rotation.Float("y", 0),
		RotationZ:  rotation.Float("z", 0),
		ItemBlob:   strings.String("items", ""),
	}
}

// ExtractItemDraft builds an item record from one decoded inventory entry.
// Durability defaults to full; the crafter is unknown unless the entry
// names one.
func ExtractItemDraft(raw models.RawItem) models.ItemDraft {
	draft := models.ItemDraft{
		Name:       raw.String("name", ""),
		Quantity:   raw.Int("stack", 0),
		Durability: raw.Float("durability", models.DefaultDurability),
		Quality:    raw.Int("quality", 0),
		Variant:    raw.Int("variant", 0),
		PositionX:  raw.Int("pos_x", 0),
		PositionY:  raw.Int("pos_y", 0),
		Equipped:   raw.Bool("equipped", false),
		CrafterID:  raw.Int64("crafter_id", 0),
	}

	if name, ok := raw["crafter_name"].(string); ok {
		draft.CrafterName = &name
	}

	return draft
}

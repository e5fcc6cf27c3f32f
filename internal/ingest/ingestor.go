// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

// Package ingest turns uploaded save files into inventory updates.
//
// The flow for one upload:
//  1. Parse the .db snapshot and .fwl metadata through savefile.Parser.
//  2. Extract the world draft and filter the ZDO list down to chests.
//  3. Decode each chest's item blob. A blob that fails to decode skips
//     that chest's items with a warning; it never aborts the upload.
//  4. Hand the complete write set to the store, which applies the
//     freshness gate and the atomic replace.
package ingest

import (
	"context"
	"fmt"
	"io"

	"github.com/chesthound/chesthound/internal/database"
	"github.com/chesthound/chesthound/internal/logging"
	"github.com/chesthound/chesthound/internal/metrics"
	"github.com/chesthound/chesthound/internal/models"
	"github.com/chesthound/chesthound/internal/savefile"
)

// Store is the subset of the database the ingestor writes through.
type Store interface {
	ApplySnapshot(ctx context.Context, update database.InventoryUpdate) (*database.SnapshotResult, error)
}

// Ingestor converts uploaded save files into store updates.
type Ingestor struct {
	store  Store
	parser savefile.Parser
}

// New creates an Ingestor backed by the given store and parser.
func New(store Store, parser savefile.Parser) *Ingestor {
	return &Ingestor{store: store, parser: parser}
}

// IngestSave parses an uploaded .db/.fwl pair and applies it to the store.
//
// Returns *savefile.ParseError when either file cannot be decoded,
// *database.NotNewerError when the save is stale, and an UploadResult on
// success. Item blob decode failures are logged and skipped per chest.
func (ing *Ingestor) IngestSave(ctx context.Context, dbFile, fwlFile io.Reader) (*models.UploadResult, error) {
	snapshot, err := ing.parser.ParseSnapshot(dbFile)
	if err != nil {
		metrics.RecordIngest(metrics.IngestResultParseError)
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}

	meta, err := ing.parser.ParseWorldMeta(fwlFile)
	if err != nil {
		metrics.RecordIngest(metrics.IngestResultParseError)
		return nil, fmt.Errorf("parse world meta: %w", err)
	}

	update := ing.buildUpdate(ctx, snapshot, meta)

	result, err := ing.store.ApplySnapshot(ctx, update)
	if err != nil {
		metrics.RecordIngestError(err)
		return nil, err
	}

	metrics.RecordIngest(metrics.IngestResultAccepted)
	metrics.RecordInventory(result.ChestCount, result.ItemCount)

	return &models.UploadResult{
		WorldID:     result.World.ID,
		WorldName:   result.World.Name,
		Created:     result.Created,
		TotalChests: result.ChestCount,
		TotalItems:  result.ItemCount,
	}, nil
}

// buildUpdate extracts the world draft, chest drafts and decoded item lists
// from the parsed documents.
func (ing *Ingestor) buildUpdate(ctx context.Context, snapshot models.RawSnapshot, meta models.RawMeta) database.InventoryUpdate {
	world := ExtractWorldDraft(snapshot, meta)

	update := database.InventoryUpdate{World: world}

	for _, zdo := range snapshot.List("zdoList") {
		if !IsChestPrefab(zdo.String("prefabName", "")) {
			continue
		}

		chest := ExtractChestDraft(zdo)

		items, err := ing.parser.DecodeItemBlob(chest.ItemBlob)
		if err != nil {
			logging.Ctx(ctx).Warn().
				Err(err).
				Int64("world_uid", world.UID).
				Str("prefab", chest.PrefabName).
				Float64("pos_x", chest.PositionX).
				Float64("pos_z", chest.PositionZ).
				Msg("Failed to decode chest item blob, chest kept empty")
			metrics.RecordItemBlobFailure()
			items = nil
		}

		drafts := make([]models.ItemDraft, 0, len(items))
		for _, raw := range items {
			drafts = append(drafts, ExtractItemDraft(raw))
		}

		update.Chests = append(update.Chests, chest)
		update.Items = append(update.Items, drafts)
	}

	logging.Ctx(ctx).Debug().
		Int64("world_uid", world.UID).
		Int("chests", len(update.Chests)).
		Msg("Built inventory update from save")

	return update
}

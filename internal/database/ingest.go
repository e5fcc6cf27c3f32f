// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

package database

import (
	"context"
	"fmt"

	"github.com/chesthound/chesthound/internal/logging"
	"github.com/chesthound/chesthound/internal/models"
)

// InventoryUpdate is the complete write set produced from one accepted save
// upload: the world record plus every chest and its decoded items.
//
// Items is index-aligned with Chests: Items[i] holds the decoded inventory
// of Chests[i]. The drafts carry no chest IDs; ApplySnapshot assigns them
// at insert time.
type InventoryUpdate struct {
	World  models.WorldDraft
	Chests []models.ChestDraft
	Items  [][]models.ItemDraft
}

// SnapshotResult describes the outcome of an accepted upload.
type SnapshotResult struct {
	World      *models.World
	Created    bool
	ChestCount int
	ItemCount  int
}

// ApplySnapshot atomically synchronizes the world row and replaces its
// entire chest and item set.
//
// Concurrency: uploads for the same world UID are serialized by a per-UID
// mutex; uploads for different worlds proceed in parallel.
//
// Freshness: the update is rejected with *NotNewerError unless its net_time
// strictly exceeds the stored world's net_time.
//
// Atomicity: world sync, inventory deletion and inventory insertion share
// one transaction. A failure at any point leaves the previous state intact.
func (db *DB) ApplySnapshot(ctx context.Context, update InventoryUpdate) (result *SnapshotResult, err error) {
	if len(update.Items) != len(update.Chests) {
		return nil, fmt.Errorf("inventory update mismatch: %d chests, %d item lists",
			len(update.Chests), len(update.Items))
	}

	unlock := db.lockWorld(update.World.UID)
	defer unlock()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error().
					Err(rbErr).
					AnErr("original_error", err).
					Msg("Transaction rollback failed")
			}
		}
	}()

	world, created, err := syncWorldTx(ctx, tx, update.World)
	if err != nil {
		return nil, err
	}

	if err = deleteWorldInventoryTx(ctx, tx, world.ID); err != nil {
		return nil, err
	}

	chestIDs, err := insertChestsTx(ctx, tx, world.ID, update.Chests)
	if err != nil {
		return nil, err
	}

	itemCount := 0
	for i, drafts := range update.Items {
		for j := range drafts {
			drafts[j].ChestID = chestIDs[i]
		}
		if err = insertItemsTx(ctx, tx, drafts); err != nil {
			return nil, err
		}
		itemCount += len(drafts)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot: %w", err)
	}

	logging.Info().
		Int64("uid", world.UID).
		Str("name", world.Name).
		Bool("created", created).
		Int("chests", len(update.Chests)).
		Int("items", itemCount).
		Float64("net_time", world.NetTime).
		Msg("Snapshot applied")

	return &SnapshotResult{
		World:      world,
		Created:    created,
		ChestCount: len(update.Chests),
		ItemCount:  itemCount,
	}, nil
}

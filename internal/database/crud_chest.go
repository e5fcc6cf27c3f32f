// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/chesthound/chesthound/internal/logging"
	"github.com/chesthound/chesthound/internal/models"
)

const chestColumns = `id, world_id, prefab_name, creator_id,
	position_x, position_y, position_z, sector_x, sector_y,
	rotation_x, rotation_y, rotation_z, created_at`

// GetChest retrieves a chest by ID.
// Returns ErrNotFound if no chest with that ID exists.
func (db *DB) GetChest(ctx context.Context, id uuid.UUID) (*models.Chest, error) {
	query := `SELECT ` + chestColumns + ` FROM chests WHERE id = ?`

	var c models.Chest
	err := db.conn.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.WorldID, &c.PrefabName, &c.CreatorID,
		&c.PositionX, &c.PositionY, &c.PositionZ, &c.SectorX, &c.SectorY,
		&c.RotationX, &c.RotationY, &c.RotationZ, &c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan chest: %w", err)
	}
	return &c, nil
}

// ListChestsByWorld returns every chest in a world, ordered by sector then
// position for a stable spatial layout. Returns ErrNotFound if the world
// does not exist.
func (db *DB) ListChestsByWorld(ctx context.Context, worldID uuid.UUID) ([]models.Chest, error) {
	if _, err := db.GetWorld(ctx, worldID); err != nil {
		return nil, err
	}

	query := `SELECT ` + chestColumns + ` FROM chests
		WHERE world_id = ?
		ORDER BY sector_x, sector_y, position_x, position_z`

	rows, err := db.conn.QueryContext(ctx, query, worldID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chests: %w", err)
	}
	defer closeQuietly(rows)

	chests := make([]models.Chest, 0)
	for rows.Next() {
		var c models.Chest
		if err := rows.Scan(
			&c.ID, &c.WorldID, &c.PrefabName, &c.CreatorID,
			&c.PositionX, &c.PositionY, &c.PositionZ, &c.SectorX, &c.SectorY,
			&c.RotationX, &c.RotationY, &c.RotationZ, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chest: %w", err)
		}
		chests = append(chests, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chests: %w", err)
	}

	return chests, nil
}

// deleteWorldInventoryTx removes all chests and items belonging to a world
// inside tx, items first. The schema has no declared foreign keys, so this
// ordering is what keeps the tables referentially consistent.
func deleteWorldInventoryTx(ctx context.Context, tx *sql.Tx, worldID uuid.UUID) error {
	_, err := tx.ExecContext(ctx,
		`DELETE FROM items WHERE chest_id IN (SELECT id FROM chests WHERE world_id = ?)`,
		worldID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete items for world %s: %w", worldID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM chests WHERE world_id = ?`, worldID); err != nil {
		return fmt.Errorf("failed to delete chests for world %s: %w", worldID, err)
	}

	return nil
}

// insertChestsTx bulk-inserts chest drafts inside tx using a prepared
// statement, assigning each a fresh ID. The returned IDs are index-aligned
// with the drafts.
func insertChestsTx(ctx context.Context, tx *sql.Tx, worldID uuid.UUID, drafts []models.ChestDraft) ([]uuid.UUID, error) {
	if len(drafts) == 0 {
		return nil, nil
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO chests (
			id, world_id, prefab_name, creator_id,
			position_x, position_y, position_z, sector_x, sector_y,
			rotation_x, rotation_y, rotation_z
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare chest insert: %w", err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Msg("Failed to close prepared statement")
		}
	}()

	ids := make([]uuid.UUID, len(drafts))
	for i, d := range drafts {
		ids[i] = uuid.New()
		if _, err := stmt.ExecContext(ctx,
			ids[i], worldID, d.PrefabName, d.CreatorID,
			d.PositionX, d.PositionY, d.PositionZ, d.SectorX, d.SectorY,
			d.RotationX, d.RotationY, d.RotationZ,
		); err != nil {
			return nil, fmt.Errorf("failed to insert chest %d: %w", i, err)
		}
	}

	return ids, nil
}

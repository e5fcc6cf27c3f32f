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

const worldColumns = `id, uid, name, version, seed, seed_name, net_time, modified_time, created_at, updated_at`

// GetWorld retrieves a world by its surrogate ID.
// Returns ErrNotFound if no world with that ID exists.
func (db *DB) GetWorld(ctx context.Context, id uuid.UUID) (*models.World, error) {
	query := `SELECT ` + worldColumns + ` FROM worlds WHERE id = ?`
	return db.scanWorldRow(db.conn.QueryRowContext(ctx, query, id))
}

// GetWorldByUID retrieves a world by its game-assigned UID.
// Returns ErrNotFound if no world with that UID exists.
func (db *DB) GetWorldByUID(ctx context.Context, uid int64) (*models.World, error) {
	query := `SELECT ` + worldColumns + ` FROM worlds WHERE uid = ?`
	return db.scanWorldRow(db.conn.QueryRowContext(ctx, query, uid))
}

// ListWorlds returns all known worlds ordered by most recently updated first.
func (db *DB) ListWorlds(ctx context.Context) ([]models.World, error) {
	query := `SELECT ` + worldColumns + ` FROM worlds ORDER BY updated_at DESC, uid ASC`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query worlds: %w", err)
	}
	defer closeQuietly(rows)

	worlds := make([]models.World, 0)
	for rows.Next() {
		var w models.World
		if err := rows.Scan(
			&w.ID, &w.UID, &w.Name, &w.Version, &w.Seed, &w.SeedName,
			&w.NetTime, &w.ModifiedTime, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan world: %w", err)
		}
		worlds = append(worlds, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate worlds: %w", err)
	}

	return worlds, nil
}

// scanWorldRow scans a single world row, translating sql.ErrNoRows
func (db *DB) scanWorldRow(row *sql.Row) (*models.World, error) {
	var w models.World
	err := row.Scan(
		&w.ID, &w.UID, &w.Name, &w.Version, &w.Seed, &w.SeedName,
		&w.NetTime, &w.ModifiedTime, &w.CreatedAt, &w.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan world: %w", err)
	}
	return &w, nil
}

// syncWorldTx creates or updates the world row for draft.UID inside tx and
// returns the current row plus whether it was created.
//
// The freshness gate lives here: an existing world whose stored net_time is
// greater than or equal to the draft's is rejected with *NotNewerError.
func syncWorldTx(ctx context.Context, tx *sql.Tx, draft models.WorldDraft) (*models.World, bool, error) {
	var existing models.World
	err := tx.QueryRowContext(ctx,
		`SELECT `+worldColumns+` FROM worlds WHERE uid = ?`, draft.UID,
	).Scan(
		&existing.ID, &existing.UID, &existing.Name, &existing.Version,
		&existing.Seed, &existing.SeedName, &existing.NetTime,
		&existing.ModifiedTime, &existing.CreatedAt, &existing.UpdatedAt,
	)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		world := &models.World{
			ID:           uuid.New(),
			UID:          draft.UID,
			Name:         draft.Name,
			Version:      draft.Version,
			Seed:         draft.Seed,
			SeedName:     draft.SeedName,
			NetTime:      draft.NetTime,
			ModifiedTime: draft.ModifiedTime,
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO worlds (id, uid, name, version, seed, seed_name, net_time, modified_time)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			world.ID, world.UID, world.Name, world.Version,
			world.Seed, world.SeedName, world.NetTime, world.ModifiedTime,
		)
		if err != nil {
			return nil, false, fmt.Errorf("failed to insert world %d: %w", draft.UID, err)
		}
		logging.Info().
			Int64("uid", world.UID).
			Str("name", world.Name).
			Msg("World created")
		return world, true, nil

	case err != nil:
		return nil, false, fmt.Errorf("failed to query world %d: %w", draft.UID, err)
	}

	if draft.NetTime <= existing.NetTime {
		return nil, false, &NotNewerError{
			UID:      draft.UID,
			Uploaded: draft.NetTime,
			Stored:   existing.NetTime,
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE worlds
		 SET name = ?, version = ?, seed = ?, seed_name = ?,
		     net_time = ?, modified_time = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE uid = ?`,
		draft.Name, draft.Version, draft.Seed, draft.SeedName,
		draft.NetTime, draft.ModifiedTime, draft.UID,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to update world %d: %w", draft.UID, err)
	}

	existing.Name = draft.Name
	existing.Version = draft.Version
	existing.Seed = draft.Seed
	existing.SeedName = draft.SeedName
	existing.NetTime = draft.NetTime
	existing.ModifiedTime = draft.ModifiedTime

	return &existing, false, nil
}

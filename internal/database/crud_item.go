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

const itemColumns = `id, chest_id, name, quantity, durability, quality, variant,
	position_x, position_y, equipped, crafter_id, crafter_name, created_at`

// GetItem retrieves an item by ID.
// Returns ErrNotFound if no item with that ID exists.
func (db *DB) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ?`

	var it models.Item
	err := db.conn.QueryRowContext(ctx, query, id).Scan(
		&it.ID, &it.ChestID, &it.Name, &it.Quantity, &it.Durability,
		&it.Quality, &it.Variant, &it.PositionX, &it.PositionY,
		&it.Equipped, &it.CrafterID, &it.CrafterName, &it.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}
	return &it, nil
}

// ListItemsByChest returns one page of a chest's items, ordered by slot
// position. Returns ErrNotFound if the chest does not exist. Total always
// reflects the full item count regardless of the requested window.
//
// Existence check, count and page run in one transaction so they share a
// snapshot; a concurrent inventory replace cannot tear the page apart from
// its total.
func (db *DB) ListItemsByChest(ctx context.Context, chestID uuid.UUID, limit, offset int) (*models.ItemPage, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logging.Warn().Err(rbErr).Msg("Failed to roll back item page transaction")
		}
	}()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM chests WHERE id = ?`, chestID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check chest: %w", err)
	}

	var total int64
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE chest_id = ?`, chestID,
	).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count items: %w", err)
	}

	query := `SELECT ` + itemColumns + ` FROM items
		WHERE chest_id = ?
		ORDER BY position_y, position_x, id
		LIMIT ? OFFSET ?`

	rows, err := tx.QueryContext(ctx, query, chestID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer closeQuietly(rows)

	items := make([]models.Item, 0, limit)
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(
			&it.ID, &it.ChestID, &it.Name, &it.Quantity, &it.Durability,
			&it.Quality, &it.Variant, &it.PositionX, &it.PositionY,
			&it.Equipped, &it.CrafterID, &it.CrafterName, &it.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	closeQuietly(rows)

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit item page transaction: %w", err)
	}

	return &models.ItemPage{
		Items:   items,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(items)) < total,
	}, nil
}

// SummarizeItemsByWorld returns total quantities per item name across every
// chest in a world, computed in a single grouped join. Returns ErrNotFound
// if the world does not exist; a world with no items yields an empty map.
func (db *DB) SummarizeItemsByWorld(ctx context.Context, worldID uuid.UUID) (map[string]int64, error) {
	if _, err := db.GetWorld(ctx, worldID); err != nil {
		return nil, err
	}

	query := `SELECT i.name, SUM(i.quantity)
		FROM items i
		JOIN chests c ON c.id = i.chest_id
		WHERE c.world_id = ?
		GROUP BY i.name
		ORDER BY i.name`

	rows, err := db.conn.QueryContext(ctx, query, worldID)
	if err != nil {
		return nil, fmt.Errorf("failed to query item summary: %w", err)
	}
	defer closeQuietly(rows)

	summary := make(map[string]int64)
	for rows.Next() {
		var name string
		var quantity int64
		if err := rows.Scan(&name, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan item summary: %w", err)
		}
		summary[name] = quantity
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item summary: %w", err)
	}

	return summary, nil
}

// insertItemsTx bulk-inserts item drafts inside tx using a prepared
// statement, assigning each a fresh ID.
func insertItemsTx(ctx context.Context, tx *sql.Tx, drafts []models.ItemDraft) error {
	if len(drafts) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO items (
			id, chest_id, name, quantity, durability, quality, variant,
			position_x, position_y, equipped, crafter_id, crafter_name
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare item insert: %w", err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Msg("Failed to close prepared statement")
		}
	}()

	for i, d := range drafts {
		if _, err := stmt.ExecContext(ctx,
			uuid.New(), d.ChestID, d.Name, d.Quantity, d.Durability,
			d.Quality, d.Variant, d.PositionX, d.PositionY,
			d.Equipped, d.CrafterID, d.CrafterName,
		); err != nil {
			return fmt.Errorf("failed to insert item %d: %w", i, err)
		}
	}

	return nil
}

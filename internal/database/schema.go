// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// getTableCreationQueries returns the table creation SQL statements.
//
// No declared foreign keys: DuckDB's FK checking rejects deleting a parent
// row in the same transaction that removed its children, which is exactly
// what the inventory replace does. Referential integrity is owned by the
// ingestion transaction (explicit child-first deletes, single write path)
// and the join paths are covered by indexes instead.
func getTableCreationQueries() []string {
	return []string{
		// Worlds - one row per world UID, updated in place on every
		// accepted upload. net_time is the freshness gate.
		`CREATE TABLE IF NOT EXISTS worlds (
			id UUID PRIMARY KEY,
			uid BIGINT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			version INTEGER NOT NULL DEFAULT 0,
			seed BIGINT NOT NULL DEFAULT 0,
			seed_name TEXT NOT NULL DEFAULT '',
			net_time DOUBLE NOT NULL DEFAULT 0,
			modified_time BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,

		// Chests - fully replaced on every accepted upload for their world
		`CREATE TABLE IF NOT EXISTS chests (
			id UUID PRIMARY KEY,
			world_id UUID NOT NULL,
			prefab_name TEXT NOT NULL,
			creator_id BIGINT NOT NULL DEFAULT 0,
			position_x DOUBLE NOT NULL DEFAULT 0,
			position_y DOUBLE NOT NULL DEFAULT 0,
			position_z DOUBLE NOT NULL DEFAULT 0,
			sector_x INTEGER NOT NULL DEFAULT 0,
			sector_y INTEGER NOT NULL DEFAULT 0,
			rotation_x DOUBLE NOT NULL DEFAULT 0,
			rotation_y DOUBLE NOT NULL DEFAULT 0,
			rotation_z DOUBLE NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,

		// Items - belong to exactly one chest, never individually mutated
		`CREATE TABLE IF NOT EXISTS items (
			id UUID PRIMARY KEY,
			chest_id UUID NOT NULL,
			name TEXT NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 0,
			durability DOUBLE NOT NULL DEFAULT 100,
			quality INTEGER NOT NULL DEFAULT 0,
			variant INTEGER NOT NULL DEFAULT 0,
			position_x INTEGER NOT NULL DEFAULT 0,
			position_y INTEGER NOT NULL DEFAULT 0,
			equipped BOOLEAN NOT NULL DEFAULT FALSE,
			crafter_id BIGINT NOT NULL DEFAULT 0,
			crafter_name TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
	}
}

// createIndexes creates indexes for common query patterns
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_worlds_uid ON worlds(uid);`,
		`CREATE INDEX IF NOT EXISTS idx_chests_world_id ON chests(world_id);`,
		`CREATE INDEX IF NOT EXISTS idx_items_chest_id ON items(chest_id);`,
		`CREATE INDEX IF NOT EXISTS idx_items_name ON items(name);`,
	}

	for _, query := range indexes {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}

	return nil
}

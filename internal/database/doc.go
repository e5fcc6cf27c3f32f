// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

// Package database provides the DuckDB-backed store for worlds, chests and
// items.
//
// File organization:
//   - database.go: DB type, connection lifecycle, per-world write locks
//   - schema.go: table and index creation
//   - crud_world.go: world reads
//   - crud_chest.go: chest reads and transactional chest replacement
//   - crud_item.go: item reads, pagination and per-world aggregation
//   - ingest.go: ApplySnapshot, the atomic synchronize-and-replace operation
//   - errors.go: sentinel and typed errors surfaced to the API layer
//
// Write model:
// The only write path is ApplySnapshot. It holds a per-world-UID mutex,
// enforces the net_time freshness gate and replaces the world's entire chest
// and item set inside a single transaction. The schema declares no foreign
// keys (DuckDB's FK checking cannot handle parent and child deletes in one
// transaction), so referential integrity is this write path's job: child
// rows are deleted explicitly, children first.
package database

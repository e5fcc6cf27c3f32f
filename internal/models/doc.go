// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

// Package models defines the data structures used throughout Chesthound.
// These cover the three persisted entities (World, Chest, Item), the draft
// records produced by extraction, the raw documents delivered by the save
// file parser, and the shared API response envelope.
package models

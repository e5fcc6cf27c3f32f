// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

// Package savefile defines the boundary between Chesthound and Valheim save
// file decoding.
//
// The Parser interface is the seam: ingestion consumes RawSnapshot/RawMeta
// documents and decoded item lists, and never touches bytes itself. The
// shipped JSONParser consumes the JSON export format produced by
// valheim-save-tools (a .db/.fwl file already converted to JSON); a native
// binary decoder can be plugged in behind the same interface without
// touching ingestion.
//
// All decode failures are reported as *ParseError so callers can map them to
// client-input errors (HTTP 422) rather than internal faults.
package savefile

// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

package savefile

import (
	"fmt"
	"io"

	"github.com/chesthound/chesthound/internal/models"
)

// Input kinds reported by ParseError.
const (
	KindWorldData = ".db"
	KindWorldMeta = ".fwl"
	KindItemBlob  = "item-blob"
)

// ParseError reports a save file or item blob that could not be decoded.
// It is a client-input error: the payload was malformed or empty, not a
// system fault.
type ParseError struct {
	// Kind identifies which input failed: KindWorldData, KindWorldMeta or
	// KindItemBlob.
	Kind string

	// Msg describes the failure.
	Msg string

	// Err is the underlying decode error, when one exists.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s data: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("invalid %s data: %s", e.Kind, e.Msg)
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error { return e.Err }

// Parser decodes uploaded Valheim save files into raw documents.
//
// Implementations must return *ParseError for any undecodable or empty
// input; ingestion relies on that to distinguish client-input failures from
// store failures.
type Parser interface {
	// ParseSnapshot decodes a .db world state file into a RawSnapshot
	// document (meta sub-document plus zdoList array).
	ParseSnapshot(r io.Reader) (models.RawSnapshot, error)

	// ParseWorldMeta decodes a .fwl world metadata file into a RawMeta
	// document (name, uid, seed, seedName).
	ParseWorldMeta(r io.Reader) (models.RawMeta, error)

	// DecodeItemBlob decodes one chest's base64-encoded inventory payload
	// into a list of item records.
	DecodeItemBlob(blob string) ([]models.RawItem, error)
}

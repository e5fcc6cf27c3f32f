// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

package models

// RawDocument is a loosely-typed key/value document as delivered by the save
// file parser. Accessors return the zero value (or a supplied default) when
// a key is missing or has the wrong type, so extraction never fails on
// incomplete documents.
//
// Numeric accessors accept float64, int, and int64 values because JSON-based
// parsers decode all numbers as float64 while binary parsers produce native
// integer types.
type RawDocument map[string]any

// RawSnapshot is the parsed representation of a .db world state file.
// Expected layout: a "meta" sub-document (worldVersion, netTime, modified)
// and a "zdoList" array of object records.
type RawSnapshot = RawDocument

// RawMeta is the parsed representation of a .fwl world metadata file.
// Expected keys: name, uid, seed, seedName.
type RawMeta = RawDocument

// RawItem is one decoded inventory entry from a chest's item blob.
type RawItem = RawDocument

// String returns the string value for key, or def when absent.
func (d RawDocument) String(key, def string) string {
	if v, ok := d[key].(string); ok {
		return v
	}
	return def
}

// Float returns the numeric value for key as a float64, or def when absent.
func (d RawDocument) Float(key string, def float64) float64 {
	switch v := d[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

// Int returns the numeric value for key as an int, or def when absent.
func (d RawDocument) Int(key string, def int) int {
	switch v := d[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return def
}

// Int64 returns the numeric value for key as an int64, or def when absent.
// Valheim UIDs and player IDs do not fit in 32 bits.
func (d RawDocument) Int64(key string, def int64) int64 {
	switch v := d[key].(type) {
	case float64:
		return int64(v)
	case int:
		return int64(v)
	case int64:
		return v
	}
	return def
}

// Bool returns the boolean value for key, or def when absent.
func (d RawDocument) Bool(key string, def bool) bool {
	if v, ok := d[key].(bool); ok {
		return v
	}
	return def
}

// Doc returns the nested sub-document for key, or an empty document when
// absent. The empty document makes chained lookups safe.
func (d RawDocument) Doc(key string) RawDocument {
	switch v := d[key].(type) {
	case map[string]any:
		return RawDocument(v)
	case RawDocument:
		return v
	}
	return RawDocument{}
}

// List returns the array of sub-documents for key, or nil when absent.
func (d RawDocument) List(key string) []RawDocument {
	raw, ok := d[key].([]any)
	if !ok {
		return nil
	}
	docs := make([]RawDocument, 0, len(raw))
	for _, entry := range raw {
		if m, ok := entry.(map[string]any); ok {
			docs = append(docs, RawDocument(m))
		}
	}
	return docs
}

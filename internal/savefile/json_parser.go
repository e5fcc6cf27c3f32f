// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

package savefile

import (
	"encoding/base64"
	"io"

	"github.com/goccy/go-json"

	"github.com/chesthound/chesthound/internal/models"
)

// JSONParser decodes the JSON export format produced by valheim-save-tools.
// Item blobs are expected to be base64-encoded JSON arrays of item records.
type JSONParser struct{}

// NewJSONParser returns a parser for JSON-exported save files.
func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

// ParseSnapshot decodes a JSON-exported .db world state file.
func (p *JSONParser) ParseSnapshot(r io.Reader) (models.RawSnapshot, error) {
	doc, err := decodeDocument(r, KindWorldData)
	if err != nil {
		return nil, err
	}
	return models.RawSnapshot(doc), nil
}

// ParseWorldMeta decodes a JSON-exported .fwl world metadata file.
func (p *JSONParser) ParseWorldMeta(r io.Reader) (models.RawMeta, error) {
	doc, err := decodeDocument(r, KindWorldMeta)
	if err != nil {
		return nil, err
	}
	return models.RawMeta(doc), nil
}

// DecodeItemBlob decodes a base64-encoded JSON array of item records.
// An empty blob is a decode failure, not an empty inventory: chests without
// items still carry an encoded empty list.
func (p *JSONParser) DecodeItemBlob(blob string) ([]models.RawItem, error) {
	if blob == "" {
		return nil, &ParseError{Kind: KindItemBlob, Msg: "blob is empty"}
	}

	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, &ParseError{Kind: KindItemBlob, Msg: "invalid base64", Err: err}
	}

	var entries []map[string]any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, &ParseError{Kind: KindItemBlob, Msg: "invalid item list", Err: err}
	}

	items := make([]models.RawItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, models.RawItem(entry))
	}
	return items, nil
}

// decodeDocument decodes a JSON object from r, rejecting empty documents.
func decodeDocument(r io.Reader, kind string) (models.RawDocument, error) {
	var doc map[string]any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &ParseError{Kind: kind, Msg: "invalid JSON", Err: err}
	}
	if len(doc) == 0 {
		return nil, &ParseError{Kind: kind, Msg: "document is empty"}
	}
	return models.RawDocument(doc), nil
}

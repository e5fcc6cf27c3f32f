// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

package ingest

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/chesthound/chesthound/internal/database"
	"github.com/chesthound/chesthound/internal/models"
	"github.com/chesthound/chesthound/internal/savefile"
)

// fakeParser returns canned documents and treats the blob "bad" as
// undecodable.
type fakeParser struct {
	snapshot models.RawSnapshot
	meta     models.RawMeta
	items    map[string][]models.RawItem
}

func (p *fakeParser) ParseSnapshot(io.Reader) (models.RawSnapshot, error) {
	if p.snapshot == nil {
		return nil, &savefile.ParseError{Kind: savefile.KindWorldData, Msg: "invalid JSON"}
	}
	return p.snapshot, nil
}

func (p *fakeParser) ParseWorldMeta(io.Reader) (models.RawMeta, error) {
	if p.meta == nil {
		return nil, &savefile.ParseError{Kind: savefile.KindWorldMeta, Msg: "invalid JSON"}
	}
	return p.meta, nil
}

func (p *fakeParser) DecodeItemBlob(blob string) ([]models.RawItem, error) {
	if blob == "bad" {
		return nil, &savefile.ParseError{Kind: savefile.KindItemBlob, Msg: "invalid base64"}
	}
	return p.items[blob], nil
}

// captureStore records the update it receives and returns a canned result.
type captureStore struct {
	update database.InventoryUpdate
	err    error
}

func (s *captureStore) ApplySnapshot(_ context.Context, update database.InventoryUpdate) (*database.SnapshotResult, error) {
	s.update = update
	if s.err != nil {
		return nil, s.err
	}
	chests := 0
	items := 0
	for i := range update.Chests {
		chests++
		items += len(update.Items[i])
	}
	return &database.SnapshotResult{
		World: &models.World{
			ID:   uuid.New(),
			UID:  update.World.UID,
			Name: update.World.Name,
		},
		Created:    true,
		ChestCount: chests,
		ItemCount:  items,
	}, nil
}

func chestZDO(prefab, blob string) map[string]any {
	return map[string]any{
		"prefabName":    prefab,
		"position":      map[string]any{"x": 1.0, "y": 2.0, "z": 3.0},
		"sector":        map[string]any{"x": float64(0), "y": float64(0)},
		"rotation":      map[string]any{},
		"stringsByName": map[string]any{"items": blob},
	}
}

func testSnapshot(zdos ...map[string]any) models.RawSnapshot {
	list := make([]any, 0, len(zdos))
	for _, z := range zdos {
		list = append(list, z)
	}
	return models.RawSnapshot{
		"meta":    map[string]any{"worldVersion": float64(34), "netTime": float64(100)},
		"zdoList": list,
	}
}

func testMeta() models.RawMeta {
	return models.RawMeta{"name": "Midgard", "uid": float64(777), "seed": float64(1), "seedName": "s"}
}

func TestIngestSaveFiltersAndDecodes(t *testing.T) {
	parser := &fakeParser{
		snapshot: testSnapshot(
			chestZDO("piece_chest_wood", "blobA"),
			chestZDO("Greydwarf", "ignored"),
			chestZDO("piece_chest_iron", "blobB"),
		),
		meta: testMeta(),
		items: map[string][]models.RawItem{
			"blobA": {{"name": "Wood", "stack": float64(10)}},
			"blobB": {{"name": "Iron", "stack": float64(4)}, {"name": "Coal", "stack": float64(8)}},
		},
	}
	store := &captureStore{}
	ing := New(store, parser)

	result, err := ing.IngestSave(context.Background(), strings.NewReader("{}"), strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("IngestSave failed: %v", err)
	}

	if result.TotalChests != 2 {
		t.Errorf("want 2 chests (non-chest ZDO filtered), got %d", result.TotalChests)
	}
	if result.TotalItems != 3 {
		t.Errorf("want 3 items, got %d", result.TotalItems)
	}
	if result.WorldName != "Midgard" || !result.Created {
		t.Errorf("unexpected result: %+v", result)
	}
	if store.update.World.UID != 777 {
		t.Errorf("want world UID 777, got %d", store.update.World.UID)
	}
}

func TestIngestSaveSkipsUndecodableBlobs(t *testing.T) {
	// Three chests, the middle one carries an undecodable blob. The chest
	// itself must survive with an empty inventory; the upload succeeds.
	parser := &fakeParser{
		snapshot: testSnapshot(
			chestZDO("piece_chest_wood", "blobA"),
			chestZDO("piece_chest_wood", "bad"),
			chestZDO("piece_chest_wood", "blobB"),
		),
		meta: testMeta(),
		items: map[string][]models.RawItem{
			"blobA": {{"name": "Wood", "stack": float64(1)}},
			"blobB": {{"name": "Stone", "stack": float64(2)}},
		},
	}
	store := &captureStore{}
	ing := New(store, parser)

	result, err := ing.IngestSave(context.Background(), strings.NewReader("{}"), strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("IngestSave failed: %v", err)
	}

	if result.TotalChests != 3 {
		t.Errorf("undecodable blob must not drop its chest: want 3, got %d", result.TotalChests)
	}
	if result.TotalItems != 2 {
		t.Errorf("want 2 items from decodable chests, got %d", result.TotalItems)
	}
	if len(store.update.Items[1]) != 0 {
		t.Errorf("chest with bad blob must be empty, got %d items", len(store.update.Items[1]))
	}
}

func TestIngestSaveParseErrors(t *testing.T) {
	store := &captureStore{}

	t.Run("snapshot parse failure", func(t *testing.T) {
		ing := New(store, &fakeParser{meta: testMeta()})
		_, err := ing.IngestSave(context.Background(), strings.NewReader(""), strings.NewReader("{}"))
		var parseErr *savefile.ParseError
		if err == nil || !errors.As(err, &parseErr) {
			t.Fatalf("want *ParseError, got %v", err)
		}
	})

	t.Run("meta parse failure", func(t *testing.T) {
		ing := New(store, &fakeParser{snapshot: testSnapshot()})
		_, err := ing.IngestSave(context.Background(), strings.NewReader("{}"), strings.NewReader(""))
		var parseErr *savefile.ParseError
		if err == nil || !errors.As(err, &parseErr) {
			t.Fatalf("want *ParseError, got %v", err)
		}
	})
}

func TestIngestSavePropagatesStoreError(t *testing.T) {
	notNewer := &database.NotNewerError{UID: 777, Uploaded: 100, Stored: 200}
	ing := New(&captureStore{err: notNewer}, &fakeParser{snapshot: testSnapshot(), meta: testMeta()})

	_, err := ing.IngestSave(context.Background(), strings.NewReader("{}"), strings.NewReader("{}"))
	var got *database.NotNewerError
	if !errors.As(err, &got) {
		t.Fatalf("want *NotNewerError, got %v", err)
	}
}

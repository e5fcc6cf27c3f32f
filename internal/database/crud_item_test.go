// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

package database

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/chesthound/chesthound/internal/models"
)

// seedPagedChest stores one world with a single chest holding n items and
// returns the chest ID.
func seedPagedChest(t *testing.T, db *DB, uid int64, n int) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	items := make([]models.ItemDraft, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, models.ItemDraft{
			Name:       "Wood",
			Quantity:   1,
			Durability: 100,
			PositionX:  i % 8,
			PositionY:  i / 8,
		})
	}

	res, err := db.ApplySnapshot(ctx, InventoryUpdate{
		World:  testWorldDraft(uid, 100),
		Chests: []models.ChestDraft{testChestDraft(0, 0)},
		Items:  [][]models.ItemDraft{items},
	})
	if err != nil {
		t.Fatalf("seed ApplySnapshot failed: %v", err)
	}

	chests, err := db.ListChestsByWorld(ctx, res.World.ID)
	if err != nil {
		t.Fatalf("ListChestsByWorld failed: %v", err)
	}
	if len(chests) != 1 {
		t.Fatalf("want 1 chest, got %d", len(chests))
	}
	return chests[0].ID
}

func TestListItemsByChestPagination(t *testing.T) {
	db := setupTestDB(t)
	chestID := seedPagedChest(t, db, 2001, 5)
	ctx := context.Background()

	tests := []struct {
		name        string
		limit       int
		offset      int
		wantLen     int
		wantHasMore bool
	}{
		{"first page", 2, 0, 2, true},
		{"middle page", 2, 2, 2, true},
		{"last partial page", 2, 4, 1, false},
		{"offset past end", 2, 10, 0, false},
		{"whole inventory", 100, 0, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := db.ListItemsByChest(ctx, chestID, tt.limit, tt.offset)
			if err != nil {
				t.Fatalf("ListItemsByChest failed: %v", err)
			}
			if len(page.Items) != tt.wantLen {
				t.Errorf("want %d items, got %d", tt.wantLen, len(page.Items))
			}
			if page.Total != 5 {
				t.Errorf("want total 5, got %d", page.Total)
			}
			if page.HasMore != tt.wantHasMore {
				t.Errorf("want has_more=%v, got %v", tt.wantHasMore, page.HasMore)
			}
			if page.Limit != tt.limit || page.Offset != tt.offset {
				t.Errorf("echoed window mismatch: limit=%d offset=%d", page.Limit, page.Offset)
			}
		})
	}
}

func TestListItemsByChestPageNotTornByReplace(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	chestID := seedPagedChest(t, db, 2100, 3)

	// Replace the inventory repeatedly while reading the original chest.
	// Every observed page must be internally consistent: either the chest
	// is gone, or its total matches the items actually returned.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			_, err := db.ApplySnapshot(ctx, InventoryUpdate{
				World:  testWorldDraft(2100, float64(200+i)),
				Chests: []models.ChestDraft{testChestDraft(0, 0)},
				Items:  [][]models.ItemDraft{{{Name: "Wood", Quantity: 1, Durability: 100}}},
			})
			if err != nil {
				t.Errorf("concurrent ApplySnapshot failed: %v", err)
				return
			}
		}
	}()

	for i := 0; i < 10000; i++ {
		page, err := db.ListItemsByChest(ctx, chestID, 100, 0)
		if err == ErrNotFound {
			break
		}
		if err != nil {
			t.Fatalf("ListItemsByChest failed: %v", err)
		}
		if int64(len(page.Items)) != page.Total {
			t.Fatalf("torn page: %d items with total %d", len(page.Items), page.Total)
		}
	}
	<-done
}

func TestListItemsByChestNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.ListItemsByChest(context.Background(), uuid.New(), 10, 0)
	if err != ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGetItemRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	crafter := "Sigrid"
	res, err := db.ApplySnapshot(ctx, InventoryUpdate{
		World:  testWorldDraft(2002, 100),
		Chests: []models.ChestDraft{testChestDraft(0, 0)},
		Items: [][]models.ItemDraft{{
			{
				Name:        "SwordIron",
				Quantity:    1,
				Durability:  72.5,
				Quality:     3,
				Variant:     0,
				PositionX:   2,
				PositionY:   1,
				Equipped:    true,
				CrafterID:   42,
				CrafterName: &crafter,
			},
		}},
	})
	if err != nil {
		t.Fatalf("ApplySnapshot failed: %v", err)
	}

	chests, err := db.ListChestsByWorld(ctx, res.World.ID)
	if err != nil {
		t.Fatalf("ListChestsByWorld failed: %v", err)
	}
	page, err := db.ListItemsByChest(ctx, chests[0].ID, 10, 0)
	if err != nil {
		t.Fatalf("ListItemsByChest failed: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("want 1 item, got %d", len(page.Items))
	}

	item, err := db.GetItem(ctx, page.Items[0].ID)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if item.Name != "SwordIron" || item.Quality != 3 || !item.Equipped {
		t.Errorf("unexpected item: %+v", item)
	}
	if item.Durability != 72.5 {
		t.Errorf("want durability 72.5, got %v", item.Durability)
	}
	if item.CrafterName == nil || *item.CrafterName != "Sigrid" {
		t.Errorf("want crafter Sigrid, got %v", item.CrafterName)
	}
	if item.ChestID != chests[0].ID {
		t.Error("item not linked to its chest")
	}
}

func TestSummarizeItemsByWorldAggregates(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	res, err := db.ApplySnapshot(ctx, InventoryUpdate{
		World:  testWorldDraft(2003, 100),
		Chests: []models.ChestDraft{testChestDraft(0, 0), testChestDraft(64, 0)},
		Items: [][]models.ItemDraft{
			{
				{Name: "Wood", Quantity: 10, Durability: 100},
				{Name: "Stone", Quantity: 2, Durability: 100},
			},
			{
				{Name: "Wood", Quantity: 5, Durability: 100},
			},
		},
	})
	if err != nil {
		t.Fatalf("ApplySnapshot failed: %v", err)
	}

	summary, err := db.SummarizeItemsByWorld(ctx, res.World.ID)
	if err != nil {
		t.Fatalf("SummarizeItemsByWorld failed: %v", err)
	}
	if summary["Wood"] != 15 || summary["Stone"] != 2 || len(summary) != 2 {
		t.Errorf("want Wood:15 Stone:2, got %v", summary)
	}
}

func TestSummarizeItemsByWorldNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.SummarizeItemsByWorld(context.Background(), uuid.New())
	if err != ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

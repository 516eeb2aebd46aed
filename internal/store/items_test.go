package store

import (
	"context"
	"testing"

	"github.com/unilost/unilost/internal/db"
	"github.com/unilost/unilost/internal/model"
)

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "Reporter", "rep@campus.edu", "", "hash", model.RoleStudent)

	item, err := CreateItem(ctx, database, model.Item{
		Title:       "Red Backpack",
		Description: "Red backpack with laptop stickers",
		Category:    "bags",
		Status:      model.ItemStatusFound,
		Location:    "Student Center",
		ContactInfo: "rep@campus.edu",
		ReportedBy:  user.Name,
		ReporterID:  &user.ID,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Title != "Red Backpack" {
		t.Errorf("expected title 'Red Backpack', got %q", item.Title)
	}
	if item.Verified {
		t.Error("expected new item to be unverified")
	}
	if item.DateReported.IsZero() {
		t.Error("expected server-assigned report timestamp")
	}

	got, err := GetItem(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got == nil || got.ReportedBy != "Reporter" {
		t.Errorf("expected reporter snapshot, got %+v", got)
	}
}

func TestListItemsNewestFirst(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, _ := CreateItem(ctx, database, model.Item{
		Title: "First", Description: "d", Category: "misc",
		Status: model.ItemStatusLost, Location: "A",
	})
	second, _ := CreateItem(ctx, database, model.Item{
		Title: "Second", Description: "d", Category: "misc",
		Status: model.ItemStatusFound, Location: "B",
	})

	items, err := ListItems(ctx, database)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != second.ID || items[1].ID != first.ID {
		t.Errorf("expected newest first, got order %d, %d", items[0].ID, items[1].ID)
	}
}

func TestGetItemMissing(t *testing.T) {
	database := db.NewTestDB(t)

	got, err := GetItem(context.Background(), database, 42)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing item, got %+v", got)
	}
}

func TestUpdateItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, model.Item{
		Title: "Keys", Description: "Key ring", Category: "keys",
		Status: model.ItemStatusFound, Location: "Gym",
	})

	item.Title = "Key Ring"
	item.Location = "Gym Lobby"
	if err := UpdateItem(ctx, database, *item); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.Title != "Key Ring" || got.Location != "Gym Lobby" {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestDeleteItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, model.Item{
		Title: "Gone", Description: "d", Category: "misc",
		Status: model.ItemStatusLost, Location: "X",
	})

	if err := DeleteItem(ctx, database, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got != nil {
		t.Errorf("expected item to be gone, got %+v", got)
	}
}

func TestDeleteItemCascadesClaims(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "Claimer", "c@campus.edu", "", "hash", model.RoleStudent)
	item, _ := CreateItem(ctx, database, model.Item{
		Title: "Claimed", Description: "d", Category: "misc",
		Status: model.ItemStatusFound, Location: "X",
	})
	claim, _ := CreateClaim(ctx, database, item.ID, user.ID, item.Title, user.Name, user.Email)

	if err := DeleteItem(ctx, database, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	got, _ := GetClaim(ctx, database, claim.ID)
	if got != nil {
		t.Errorf("expected claim removed with its item, got %+v", got)
	}
}

func TestToggleVerifiedInvolution(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, model.Item{
		Title: "Wallet", Description: "d", Category: "misc",
		Status: model.ItemStatusFound, Location: "X",
	})

	once, err := ToggleVerified(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("ToggleVerified: %v", err)
	}
	if !once.Verified {
		t.Error("expected verified=true after first toggle")
	}

	twice, err := ToggleVerified(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("ToggleVerified: %v", err)
	}
	if twice.Verified != item.Verified {
		t.Errorf("expected toggling twice to restore original value %v, got %v", item.Verified, twice.Verified)
	}
}

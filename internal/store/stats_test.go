package store

import (
	"context"
	"testing"

	"github.com/unilost/unilost/internal/db"
	"github.com/unilost/unilost/internal/model"
)

func TestCountStatsEmpty(t *testing.T) {
	database := db.NewTestDB(t)

	stats, err := CountStats(context.Background(), database)
	if err != nil {
		t.Fatalf("CountStats: %v", err)
	}
	if stats.TotalItems != 0 || stats.PendingClaims != 0 || stats.UnverifiedItems != 0 || stats.ResolvedClaims != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestCountStatsAfterDecision(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "U", "u@campus.edu", "", "hash", model.RoleStudent)
	item, _ := CreateItem(ctx, database, model.Item{
		Title: "Phone", Description: "d", Category: "electronics",
		Status: model.ItemStatusFound, Location: "Lab",
	})
	claim, _ := CreateClaim(ctx, database, item.ID, user.ID, item.Title, user.Name, user.Email)

	before, err := CountStats(ctx, database)
	if err != nil {
		t.Fatalf("CountStats: %v", err)
	}
	if before.TotalItems != 1 || before.PendingClaims != 1 || before.UnverifiedItems != 1 || before.ResolvedClaims != 0 {
		t.Fatalf("unexpected stats before decision: %+v", before)
	}

	SetClaimStatus(ctx, database, claim.ID, model.ClaimStatusApproved)

	after, err := CountStats(ctx, database)
	if err != nil {
		t.Fatalf("CountStats: %v", err)
	}
	if after.ResolvedClaims != before.ResolvedClaims+1 {
		t.Errorf("expected resolvedClaims to increase by 1, got %d", after.ResolvedClaims)
	}
	if after.PendingClaims != before.PendingClaims-1 {
		t.Errorf("expected pendingClaims to decrease by 1, got %d", after.PendingClaims)
	}
	if after.TotalItems != before.TotalItems || after.UnverifiedItems != before.UnverifiedItems {
		t.Errorf("expected item counts unchanged, got %+v", after)
	}
}

func TestCountStatsVerification(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, model.Item{
		Title: "Scarf", Description: "d", Category: "clothing",
		Status: model.ItemStatusLost, Location: "Quad",
	})

	ToggleVerified(ctx, database, item.ID)

	stats, err := CountStats(ctx, database)
	if err != nil {
		t.Fatalf("CountStats: %v", err)
	}
	if stats.UnverifiedItems != 0 {
		t.Errorf("expected 0 unverified items after verification, got %d", stats.UnverifiedItems)
	}
	if stats.TotalItems != 1 {
		t.Errorf("expected 1 total item, got %d", stats.TotalItems)
	}
}

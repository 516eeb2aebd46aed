package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/unilost/unilost/internal/db"
	"github.com/unilost/unilost/internal/model"
)

func claimFixture(t *testing.T, database *sql.DB) (*model.User, *model.Item) {
	t.Helper()
	ctx := context.Background()

	user, err := CreateUser(ctx, database, "Claimer", "claimer@campus.edu", "", "hash", model.RoleStudent)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	item, err := CreateItem(ctx, database, model.Item{
		Title: "Blue Jacket", Description: "Denim jacket", Category: "clothing",
		Status: model.ItemStatusFound, Location: "Cafeteria",
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	return user, item
}

func TestCreateClaim(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user, item := claimFixture(t, database)

	claim, err := CreateClaim(ctx, database, item.ID, user.ID, item.Title, user.Name, user.Email)
	if err != nil {
		t.Fatalf("CreateClaim: %v", err)
	}
	if claim.Status != model.ClaimStatusPending {
		t.Errorf("expected status 'pending', got %q", claim.Status)
	}
	if claim.ItemTitle != "Blue Jacket" || claim.ClaimerName != "Claimer" || claim.ClaimerEmail != "claimer@campus.edu" {
		t.Errorf("expected denormalized display fields, got %+v", claim)
	}
	if claim.DateSubmitted.IsZero() {
		t.Error("expected server-assigned submission timestamp")
	}
}

func TestDuplicateClaimRejectedByConstraint(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user, item := claimFixture(t, database)

	if _, err := CreateClaim(ctx, database, item.ID, user.ID, item.Title, user.Name, user.Email); err != nil {
		t.Fatalf("first CreateClaim: %v", err)
	}

	// Second insert bypasses any handler-level existence check and must
	// still fail on the unique constraint.
	_, err := CreateClaim(ctx, database, item.ID, user.ID, item.Title, user.Name, user.Email)
	if err != ErrDuplicateClaim {
		t.Errorf("expected ErrDuplicateClaim, got %v", err)
	}

	all, _ := ListClaims(ctx, database)
	if len(all) != 1 {
		t.Errorf("expected exactly 1 claim for the pair, got %d", len(all))
	}
}

func TestDistinctClaimersMayClaimSameItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user, item := claimFixture(t, database)

	other, _ := CreateUser(ctx, database, "Other", "other@campus.edu", "", "hash", model.RoleStudent)

	if _, err := CreateClaim(ctx, database, item.ID, user.ID, item.Title, user.Name, user.Email); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if _, err := CreateClaim(ctx, database, item.ID, other.ID, item.Title, other.Name, other.Email); err != nil {
		t.Fatalf("second claimer should be allowed: %v", err)
	}
}

func TestGetClaimByItemAndClaimer(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user, item := claimFixture(t, database)

	got, err := GetClaimByItemAndClaimer(ctx, database, item.ID, user.ID)
	if err != nil {
		t.Fatalf("GetClaimByItemAndClaimer: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil before submission, got %+v", got)
	}

	created, _ := CreateClaim(ctx, database, item.ID, user.ID, item.Title, user.Name, user.Email)

	got, err = GetClaimByItemAndClaimer(ctx, database, item.ID, user.ID)
	if err != nil {
		t.Fatalf("GetClaimByItemAndClaimer: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Errorf("expected to find the submitted claim, got %+v", got)
	}
}

func TestSetClaimStatus(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user, item := claimFixture(t, database)

	claim, _ := CreateClaim(ctx, database, item.ID, user.ID, item.Title, user.Name, user.Email)

	updated, err := SetClaimStatus(ctx, database, claim.ID, model.ClaimStatusApproved)
	if err != nil {
		t.Fatalf("SetClaimStatus: %v", err)
	}
	if updated.Status != model.ClaimStatusApproved {
		t.Errorf("expected status 'approved', got %q", updated.Status)
	}

	// Re-deciding is not locked out; writing the same value is a no-op.
	again, err := SetClaimStatus(ctx, database, claim.ID, model.ClaimStatusApproved)
	if err != nil {
		t.Fatalf("SetClaimStatus again: %v", err)
	}
	if again.Status != model.ClaimStatusApproved {
		t.Errorf("expected status unchanged, got %q", again.Status)
	}
}

func TestListClaimsNewestFirst(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user, item := claimFixture(t, database)

	other, _ := CreateUser(ctx, database, "Other", "other@campus.edu", "", "hash", model.RoleStudent)

	first, _ := CreateClaim(ctx, database, item.ID, user.ID, item.Title, user.Name, user.Email)
	second, _ := CreateClaim(ctx, database, item.ID, other.ID, item.Title, other.Name, other.Email)

	claims, err := ListClaims(ctx, database)
	if err != nil {
		t.Fatalf("ListClaims: %v", err)
	}
	if len(claims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(claims))
	}
	if claims[0].ID != second.ID || claims[1].ID != first.ID {
		t.Errorf("expected newest first, got order %d, %d", claims[0].ID, claims[1].ID)
	}
}

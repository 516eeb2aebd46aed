package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/unilost/unilost/internal/model"
)

// CreateClaim creates a pending claim with its display fields denormalized
// from the given item and claimer. The UNIQUE(item_id, claimer_id)
// constraint makes duplicate submissions fail with ErrDuplicateClaim even
// when two requests race past the handler's existence check.
func CreateClaim(ctx context.Context, db *sql.DB, itemID, claimerID int64, itemTitle, claimerName, claimerEmail string) (*model.Claim, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO claims (item_id, claimer_id, item_title, claimer_name, claimer_email)
		 VALUES (?, ?, ?, ?, ?)`,
		itemID, claimerID, itemTitle, claimerName, claimerEmail,
	)
	if isUniqueViolation(err, "claims.item_id") {
		return nil, ErrDuplicateClaim
	}
	if err != nil {
		return nil, fmt.Errorf("creating claim: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting claim id: %w", err)
	}

	return GetClaim(ctx, db, id)
}

// GetClaim returns a claim by ID, or nil if absent.
func GetClaim(ctx context.Context, db *sql.DB, id int64) (*model.Claim, error) {
	c := &model.Claim{}
	err := db.QueryRowContext(ctx,
		`SELECT id, item_id, claimer_id, item_title, claimer_name, claimer_email, status, date_submitted
		 FROM claims WHERE id = ?`, id,
	).Scan(&c.ID, &c.ItemID, &c.ClaimerID, &c.ItemTitle, &c.ClaimerName, &c.ClaimerEmail, &c.Status, &c.DateSubmitted)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting claim: %w", err)
	}
	return c, nil
}

// GetClaimByItemAndClaimer returns the claim for an (item, claimer) pair,
// or nil if none exists. At most one can exist by constraint.
func GetClaimByItemAndClaimer(ctx context.Context, db *sql.DB, itemID, claimerID int64) (*model.Claim, error) {
	c := &model.Claim{}
	err := db.QueryRowContext(ctx,
		`SELECT id, item_id, claimer_id, item_title, claimer_name, claimer_email, status, date_submitted
		 FROM claims WHERE item_id = ? AND claimer_id = ?`, itemID, claimerID,
	).Scan(&c.ID, &c.ItemID, &c.ClaimerID, &c.ItemTitle, &c.ClaimerName, &c.ClaimerEmail, &c.Status, &c.DateSubmitted)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting claim by item and claimer: %w", err)
	}
	return c, nil
}

// ListClaims returns all claims, newest first.
func ListClaims(ctx context.Context, db *sql.DB) ([]model.Claim, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, item_id, claimer_id, item_title, claimer_name, claimer_email, status, date_submitted
		 FROM claims ORDER BY date_submitted DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing claims: %w", err)
	}
	defer rows.Close()

	var claims []model.Claim
	for rows.Next() {
		var c model.Claim
		if err := rows.Scan(&c.ID, &c.ItemID, &c.ClaimerID, &c.ItemTitle, &c.ClaimerName, &c.ClaimerEmail, &c.Status, &c.DateSubmitted); err != nil {
			return nil, fmt.Errorf("scanning claim: %w", err)
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

// SetClaimStatus writes a claim's status and returns the updated claim.
// Writing the current value again is a no-op; there is no terminal-state
// lock, matching the admin review workflow.
func SetClaimStatus(ctx context.Context, db *sql.DB, id int64, status string) (*model.Claim, error) {
	_, err := db.ExecContext(ctx,
		`UPDATE claims SET status = ? WHERE id = ?`, status, id,
	)
	if err != nil {
		return nil, fmt.Errorf("setting claim status: %w", err)
	}
	return GetClaim(ctx, db, id)
}

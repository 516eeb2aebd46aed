package model

import "time"

// Claim is a user's assertion of ownership over an item, reviewed by an
// admin. ItemTitle, ClaimerName and ClaimerEmail are denormalized at
// creation time for display, and survive deletion of the referenced rows.
type Claim struct {
	ID            int64     `json:"id"`
	ItemID        int64     `json:"itemId"`
	ClaimerID     *int64    `json:"claimerId,omitempty"`
	ItemTitle     string    `json:"itemTitle"`
	ClaimerName   string    `json:"claimerName"`
	ClaimerEmail  string    `json:"claimerEmail"`
	Status        string    `json:"status"`
	DateSubmitted time.Time `json:"dateSubmitted"`
}

// Claim statuses.
const (
	ClaimStatusPending  = "pending"
	ClaimStatusApproved = "approved"
	ClaimStatusRejected = "rejected"
)

// ValidDecision reports whether status is a value an admin may decide a
// claim into. Pending is not a decision.
func ValidDecision(status string) bool {
	return status == ClaimStatusApproved || status == ClaimStatusRejected
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalItems      int64 `json:"totalItems"`
	PendingClaims   int64 `json:"pendingClaims"`
	UnverifiedItems int64 `json:"unverifiedItems"`
	ResolvedClaims  int64 `json:"resolvedClaims"`
}

package model

import "testing"

func TestValidItemStatus(t *testing.T) {
	for _, status := range []string{ItemStatusLost, ItemStatusFound} {
		if !ValidItemStatus(status) {
			t.Errorf("ValidItemStatus(%q) = false, want true", status)
		}
	}
	for _, status := range []string{"", "claimed", "Lost", "active"} {
		if ValidItemStatus(status) {
			t.Errorf("ValidItemStatus(%q) = true, want false", status)
		}
	}
}

func TestValidDecision(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{ClaimStatusApproved, true},
		{ClaimStatusRejected, true},
		// Pending is the default state, not an admin decision.
		{ClaimStatusPending, false},
		{"", false},
		{"denied", false},
	}

	for _, tt := range tests {
		got := ValidDecision(tt.status)
		if got != tt.expected {
			t.Errorf("ValidDecision(%q) = %v, want %v", tt.status, got, tt.expected)
		}
	}
}

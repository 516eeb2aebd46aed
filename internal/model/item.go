package model

import "time"

// Item is a reported lost or found object. ReportedBy snapshots the
// reporter's display name at creation time so listings need no join.
type Item struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Status       string    `json:"status"`
	Location     string    `json:"location"`
	ContactInfo  string    `json:"contactInfo,omitempty"`
	ReportedBy   string    `json:"reportedBy,omitempty"`
	ReporterID   *int64    `json:"reporterId,omitempty"`
	Verified     bool      `json:"verified"`
	DateReported time.Time `json:"dateReported"`
}

// Item statuses. The status describes how the item entered the system and
// does not change afterwards.
const (
	ItemStatusLost  = "lost"
	ItemStatusFound = "found"
)

// ValidItemStatus reports whether status is one of the known item statuses.
func ValidItemStatus(status string) bool {
	return status == ItemStatusLost || status == ItemStatusFound
}

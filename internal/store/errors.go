package store

import (
	"errors"
	"strings"
)

// Sentinel errors handlers branch on. Both are produced by translating
// SQLite unique-constraint violations, so they hold even when two requests
// race past an application-level existence check.
var (
	ErrDuplicateEmail = errors.New("email already in use")
	ErrDuplicateClaim = errors.New("claim already exists for this item and user")
)

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure on the given column target (e.g. "users.email").
func isUniqueViolation(err error, target string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, target)
}

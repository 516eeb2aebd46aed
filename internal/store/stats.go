package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/unilost/unilost/internal/model"
)

// CountStats computes the admin dashboard summary. Pure read-side
// aggregation, recomputed on every call.
func CountStats(ctx context.Context, db *sql.DB) (*model.Stats, error) {
	stats := &model.Stats{}

	counts := []struct {
		query string
		dest  *int64
	}{
		{`SELECT COUNT(*) FROM items`, &stats.TotalItems},
		{`SELECT COUNT(*) FROM claims WHERE status = 'pending'`, &stats.PendingClaims},
		{`SELECT COUNT(*) FROM items WHERE verified = 0`, &stats.UnverifiedItems},
		{`SELECT COUNT(*) FROM claims WHERE status != 'pending'`, &stats.ResolvedClaims},
	}

	for _, c := range counts {
		if err := db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("counting stats: %w", err)
		}
	}

	return stats, nil
}

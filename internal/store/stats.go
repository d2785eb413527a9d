package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/invtracker/invtracker/internal/model"
)

// GetStats returns the dashboard counters. Low-stock counting uses the
// same derived availability as item listings.
func GetStats(ctx context.Context, db *sql.DB) (*model.Stats, error) {
	s := &model.Stats{}

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM items`, &s.Items},
		{`SELECT COUNT(*) FROM items WHERE ` + availabilityExpr + ` <= safety_stock`, &s.Low},
		{`SELECT COUNT(*) FROM events`, &s.Events},
		{`SELECT COUNT(*) FROM checkouts`, &s.Checkouts},
	}
	for _, c := range counts {
		if err := db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("counting stats: %w", err)
		}
	}
	return s, nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Outstanding returns the quantity of an item currently out: the sum of
// checkout line quantities minus the sum of returned quantities, across
// all checkouts. Recomputed from the ledgers on every call, no caching.
//
// The result is negative only if returns ever exceeded checkouts, which
// SubmitReturns prevents; callers must still tolerate the value.
func Outstanding(ctx context.Context, db *sql.DB, itemID string) (int, error) {
	return outstanding(ctx, db, itemID)
}

func outstanding(ctx context.Context, q queryer, itemID string) (int, error) {
	var out int
	err := q.QueryRowContext(ctx,
		`SELECT COALESCE((SELECT SUM(qty) FROM checkout_lines WHERE item_id = ?), 0)
		      - COALESCE((SELECT SUM(qty) FROM returns WHERE item_id = ?), 0)`,
		itemID, itemID,
	).Scan(&out)
	if err != nil {
		return 0, fmt.Errorf("computing outstanding quantity: %w", err)
	}
	return out, nil
}

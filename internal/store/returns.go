package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/invtracker/invtracker/internal/model"
)

// ReturnResult reports what one SubmitReturns call actually recorded.
type ReturnResult struct {
	Accepted    []model.Return `json:"accepted"`
	AllReturned bool           `json:"all_returned"`
}

// SubmitReturns appends return records against a checkout and updates the
// derived returned flag, all in one transaction.
//
// Entries with a non-positive quantity are dropped, not errors. Every
// accepted quantity is capped server-side at the line's checked-out-minus-
// already-returned remainder, so returns can never drive an item's
// outstanding quantity negative regardless of what the client computed.
// Entries for items not on the checkout have no remainder and are dropped.
// A call that accepts nothing is a no-op: no records, no audit entry.
func SubmitReturns(ctx context.Context, db *sql.DB, checkoutID string, entries []model.ReturnEntry) (*ReturnResult, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var eventID string
	var alreadyReturned bool
	err = tx.QueryRowContext(ctx,
		`SELECT event_id, returned FROM checkouts WHERE id = ?`, checkoutID,
	).Scan(&eventID, &alreadyReturned)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("checkout %s: %w", checkoutID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("checking checkout: %w", err)
	}

	// Per-item remainder: line quantity minus everything returned so far.
	remaining, err := remainingByItem(ctx, tx, checkoutID)
	if err != nil {
		return nil, err
	}

	var accepted []model.Return
	for _, e := range entries {
		if e.Qty <= 0 {
			continue
		}
		qty := e.Qty
		if rem := remaining[e.ItemID]; qty > rem {
			qty = rem
		}
		if qty <= 0 {
			continue
		}
		remaining[e.ItemID] -= qty

		res, err := tx.ExecContext(ctx,
			`INSERT INTO returns (checkout_id, item_id, qty) VALUES (?, ?, ?)`,
			checkoutID, e.ItemID, qty,
		)
		if err != nil {
			return nil, fmt.Errorf("recording return: %w", err)
		}
		id, _ := res.LastInsertId()
		accepted = append(accepted, model.Return{
			ID:         id,
			CheckoutID: checkoutID,
			ItemID:     e.ItemID,
			Qty:        qty,
		})
	}

	allReturned := alreadyReturned
	if !allReturned {
		allReturned = true
		for _, rem := range remaining {
			if rem > 0 {
				allReturned = false
				break
			}
		}
	}

	if len(accepted) == 0 {
		// Nothing to record; leave the ledger untouched.
		return &ReturnResult{AllReturned: allReturned}, nil
	}

	if allReturned && !alreadyReturned {
		if _, err := tx.ExecContext(ctx,
			`UPDATE checkouts SET returned = 1 WHERE id = ?`, checkoutID,
		); err != nil {
			return nil, fmt.Errorf("marking checkout returned: %w", err)
		}
	}

	eventName := eventNameOrFallback(ctx, tx, eventID)
	if err := logActivity(ctx, tx, model.ActivityReturn, checkoutID, eventName+" • processed returns"); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing returns: %w", err)
	}

	return &ReturnResult{Accepted: accepted, AllReturned: allReturned}, nil
}

// ListReturns returns all return records for a checkout, oldest first.
func ListReturns(ctx context.Context, db *sql.DB, checkoutID string) ([]model.Return, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, checkout_id, item_id, qty, returned_at
		 FROM returns WHERE checkout_id = ? ORDER BY id`, checkoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing returns: %w", err)
	}
	defer rows.Close()

	var returns []model.Return
	for rows.Next() {
		var r model.Return
		if err := rows.Scan(&r.ID, &r.CheckoutID, &r.ItemID, &r.Qty, &r.ReturnedAt); err != nil {
			return nil, fmt.Errorf("scanning return: %w", err)
		}
		returns = append(returns, r)
	}
	return returns, rows.Err()
}

// remainingByItem computes, for every line on a checkout, how many units
// are still out (line quantity minus returns recorded so far).
func remainingByItem(ctx context.Context, tx *sql.Tx, checkoutID string) (map[string]int, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT cl.item_id,
		        cl.qty - COALESCE((SELECT SUM(r.qty) FROM returns r
		                           WHERE r.checkout_id = cl.checkout_id AND r.item_id = cl.item_id), 0)
		 FROM checkout_lines cl
		 WHERE cl.checkout_id = ?`, checkoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("computing remaining quantities: %w", err)
	}
	defer rows.Close()

	remaining := make(map[string]int)
	for rows.Next() {
		var itemID string
		var rem int
		if err := rows.Scan(&itemID, &rem); err != nil {
			return nil, fmt.Errorf("scanning remaining quantity: %w", err)
		}
		remaining[itemID] = rem
	}
	return remaining, rows.Err()
}

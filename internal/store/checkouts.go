package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/invtracker/invtracker/internal/model"
)

// CreateCheckout validates and commits a checkout draft as a single
// atomic unit: the checkout row, its lines, and the audit record all land
// or none do.
//
// Each line's availability is re-derived inside the transaction, so a
// draft assembled against stale inventory is rejected as a whole and two
// concurrent checkouts cannot both over-commit the same item. SKU and
// name are snapshotted from the item at commit time.
func CreateCheckout(ctx context.Context, db *sql.DB, eventID, dueDate string, lines []model.Line) (*model.Checkout, error) {
	if eventID == "" {
		return nil, validationf("an event is required")
	}
	if len(lines) == 0 {
		return nil, validationf("at least one line is required")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var taxRate float64
	if err := tx.QueryRowContext(ctx, `SELECT tax_rate FROM settings WHERE id = 1`).Scan(&taxRate); err != nil {
		return nil, fmt.Errorf("reading tax rate: %w", err)
	}

	// Validate every line against current availability before writing
	// anything. No partial commits.
	var subtotal float64
	snapshots := make([]model.Line, 0, len(lines))
	for _, l := range lines {
		if l.Qty <= 0 {
			return nil, validationf("quantity must be at least 1")
		}
		if l.UnitPrice < 0 {
			return nil, validationf("unit price must not be negative")
		}

		var sku, name string
		var avail int
		err := tx.QueryRowContext(ctx,
			`SELECT sku, name, `+availabilityExpr+` FROM items WHERE id = ?`, l.ItemID,
		).Scan(&sku, &name, &avail)
		if err == sql.ErrNoRows {
			return nil, validationf("item %s no longer exists", l.SKU)
		}
		if err != nil {
			return nil, fmt.Errorf("checking availability: %w", err)
		}
		if l.Qty > avail {
			return nil, validationf("insufficient availability for %s: have %d, need %d", name, avail, l.Qty)
		}

		subtotal += float64(l.Qty) * l.UnitPrice
		snapshots = append(snapshots, model.Line{
			ItemID:    l.ItemID,
			SKU:       sku,
			Name:      name,
			Qty:       l.Qty,
			UnitPrice: l.UnitPrice,
		})
	}

	tax := subtotal * taxRate / 100
	total := subtotal + tax

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO checkouts (id, event_id, due_date, subtotal, tax, total)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, eventID, dueDate, subtotal, tax, total,
	)
	if err != nil {
		return nil, fmt.Errorf("creating checkout: %w", err)
	}

	for _, s := range snapshots {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO checkout_lines (checkout_id, item_id, sku, name, qty, unit_price)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, s.ItemID, s.SKU, s.Name, s.Qty, s.UnitPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("creating checkout line: %w", err)
		}
	}

	eventName := eventNameOrFallback(ctx, tx, eventID)
	details := fmt.Sprintf("%s • %d item(s)", eventName, len(snapshots))
	if err := logActivity(ctx, tx, model.ActivityCheckout, id, details); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing checkout: %w", err)
	}

	return GetCheckout(ctx, db, id)
}

const checkoutColumns = `c.id, c.event_id, c.date, c.due_date, c.subtotal, c.tax, c.total, c.returned,
	COALESCE(e.name, '') AS event_name,
	(SELECT COUNT(*) FROM checkout_lines cl WHERE cl.checkout_id = c.id) AS line_count`

// GetCheckout returns a checkout by ID, or (nil, nil) if absent. The
// event join is a LEFT JOIN: a deleted event yields an empty name.
func GetCheckout(ctx context.Context, db *sql.DB, id string) (*model.Checkout, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+checkoutColumns+`
		 FROM checkouts c LEFT JOIN events e ON e.id = c.event_id
		 WHERE c.id = ?`, id,
	)
	c, err := scanCheckout(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting checkout: %w", err)
	}
	return c, nil
}

// ListCheckouts returns all checkouts, newest first.
func ListCheckouts(ctx context.Context, db *sql.DB) ([]model.Checkout, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+checkoutColumns+`
		 FROM checkouts c LEFT JOIN events e ON e.id = c.event_id
		 ORDER BY c.date DESC, c.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing checkouts: %w", err)
	}
	defer rows.Close()

	var checkouts []model.Checkout
	for rows.Next() {
		c, err := scanCheckout(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning checkout: %w", err)
		}
		checkouts = append(checkouts, *c)
	}
	return checkouts, rows.Err()
}

// ListLines returns a checkout's lines in insertion order, each with the
// total quantity already returned against it.
func ListLines(ctx context.Context, db *sql.DB, checkoutID string) ([]model.Line, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT cl.id, cl.checkout_id, cl.item_id, cl.sku, cl.name, cl.qty, cl.unit_price,
		        COALESCE((SELECT SUM(r.qty) FROM returns r
		                  WHERE r.checkout_id = cl.checkout_id AND r.item_id = cl.item_id), 0)
		 FROM checkout_lines cl
		 WHERE cl.checkout_id = ?
		 ORDER BY cl.id`, checkoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing checkout lines: %w", err)
	}
	defer rows.Close()

	return scanLines(rows)
}

func scanCheckout(scan func(...any) error) (*model.Checkout, error) {
	c := &model.Checkout{}
	err := scan(&c.ID, &c.EventID, &c.Date, &c.DueDate, &c.Subtotal, &c.Tax, &c.Total,
		&c.Returned, &c.EventName, &c.LineCount)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func scanLines(rows *sql.Rows) ([]model.Line, error) {
	var lines []model.Line
	for rows.Next() {
		var l model.Line
		if err := rows.Scan(&l.ID, &l.CheckoutID, &l.ItemID, &l.SKU, &l.Name, &l.Qty,
			&l.UnitPrice, &l.ReturnedQty); err != nil {
			return nil, fmt.Errorf("scanning checkout line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// eventNameOrFallback resolves an event name for audit details, tolerating
// dangling references.
func eventNameOrFallback(ctx context.Context, q queryer, eventID string) string {
	var name string
	err := q.QueryRowContext(ctx, `SELECT name FROM events WHERE id = ?`, eventID).Scan(&name)
	if err != nil || name == "" {
		return "Event"
	}
	return name
}

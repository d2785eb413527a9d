package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/invtracker/invtracker/internal/model"
)

// maxActivityEntries caps how many audit records a listing returns.
const maxActivityEntries = 200

// logActivity appends an audit trail record. It runs against the same
// transaction as the mutation it describes, so the record commits or rolls
// back with the write.
func logActivity(ctx context.Context, ex execer, typ, ref, details string) error {
	_, err := ex.ExecContext(ctx,
		`INSERT INTO activity (type, ref, details) VALUES (?, ?, ?)`,
		typ, ref, details,
	)
	if err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	return nil
}

// ListActivity returns audit records newest first. limit values outside
// (0, maxActivityEntries] fall back to the cap.
func ListActivity(ctx context.Context, db *sql.DB, limit int) ([]model.Activity, error) {
	if limit <= 0 || limit > maxActivityEntries {
		limit = maxActivityEntries
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, type, ref, details, date
		 FROM activity ORDER BY date DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	defer rows.Close()

	var entries []model.Activity
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.Type, &a.Ref, &a.Details, &a.Date); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		entries = append(entries, a)
	}
	return entries, rows.Err()
}

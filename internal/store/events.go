package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/invtracker/invtracker/internal/model"
)

const eventColumns = `id, name, client, date, location, contact, status, notes, created_at, updated_at`

// CreateEvent creates a new event, assigning an identifier if absent.
func CreateEvent(ctx context.Context, db *sql.DB, event *model.Event) (*model.Event, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Status == "" {
		event.Status = model.EventStatusPlanned
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO events (id, name, client, date, location, contact, status, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Name, event.Client, event.Date, event.Location, event.Contact, event.Status, event.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}

	if err := logActivity(ctx, tx, model.ActivityEventAdd, event.Name, "Created event"); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing event: %w", err)
	}

	return GetEvent(ctx, db, event.ID)
}

// GetEvent returns an event by ID, or (nil, nil) if absent.
func GetEvent(ctx context.Context, db *sql.DB, id string) (*model.Event, error) {
	e := &model.Event{}
	err := db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id,
	).Scan(&e.ID, &e.Name, &e.Client, &e.Date, &e.Location, &e.Contact, &e.Status, &e.Notes,
		&e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting event: %w", err)
	}
	return e, nil
}

// ListEvents returns all events, most recent event date first.
func ListEvents(ctx context.Context, db *sql.DB) ([]model.Event, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY date DESC, created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Client, &e.Date, &e.Location, &e.Contact,
			&e.Status, &e.Notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// UpdateEvent replaces an event's editable fields.
func UpdateEvent(ctx context.Context, db *sql.DB, id string, patch *model.Event) (*model.Event, error) {
	if patch.Status == "" {
		patch.Status = model.EventStatusPlanned
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE events SET name = ?, client = ?, date = ?, location = ?, contact = ?,
		        status = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		patch.Name, patch.Client, patch.Date, patch.Location, patch.Contact,
		patch.Status, patch.Notes, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	if err := logActivity(ctx, tx, model.ActivityEventUpdate, patch.Name, "Updated event"); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing event update: %w", err)
	}

	return GetEvent(ctx, db, id)
}

// DeleteEvent removes an event. Checkouts referencing it keep a dangling
// reference and render a placeholder name.
func DeleteEvent(ctx context.Context, db *sql.DB, id string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var name string
	err = tx.QueryRowContext(ctx, `SELECT name FROM events WHERE id = ?`, id).Scan(&name)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking event: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	if err := logActivity(ctx, tx, model.ActivityEventDelete, name, "Deleted event"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing event deletion: %w", err)
	}
	return nil
}

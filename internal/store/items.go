package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/invtracker/invtracker/internal/model"
)

// availabilityExpr derives an item's available quantity from the single
// source of truth: total owned minus outstanding (checked out minus
// returned). Valid in any query where the items table is in scope.
const availabilityExpr = `qty_total
	- (COALESCE((SELECT SUM(cl.qty) FROM checkout_lines cl WHERE cl.item_id = items.id), 0)
	 - COALESCE((SELECT SUM(r.qty) FROM returns r WHERE r.item_id = items.id), 0))`

const itemColumns = `id, sku, name, category, location, unit, safety_stock, qty_total,
	cost, price, tags, notes, image_mime, created_at, updated_at, ` + availabilityExpr

// CreateItem creates a new item, assigning an identifier if absent.
// Nothing can reference a brand-new item, so no outstanding check applies.
func CreateItem(ctx context.Context, db *sql.DB, item *model.Item) (*model.Item, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO items (id, sku, name, category, location, unit, safety_stock,
		                    qty_total, cost, price, tags, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.SKU, item.Name, item.Category, item.Location, item.Unit,
		item.SafetyStock, item.QtyTotal, item.Cost, item.Price, encodeTags(item.Tags), item.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	if err := logActivity(ctx, tx, model.ActivityInventoryAdd, item.SKU, "Added "+item.Name); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item: %w", err)
	}

	return GetItem(ctx, db, item.ID)
}

// GetItem returns an item by ID with its derived availability, or
// (nil, nil) if absent.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	row := db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ItemFilter narrows an item listing. Zero value lists everything.
type ItemFilter struct {
	Category string
	// Search matches name or SKU, case-insensitive substring.
	Search string
	// LowOnly keeps items whose availability is at or below safety stock.
	LowOnly bool
}

// ListItems returns items newest first, narrowed by the filter.
func ListItems(ctx context.Context, db *sql.DB, filter ItemFilter) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE 1=1`
	var args []any

	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	if filter.Search != "" {
		query += ` AND (name LIKE ? OR sku LIKE ?)`
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.LowOnly {
		query += ` AND ` + availabilityExpr + ` <= safety_stock`
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItem replaces an item's editable fields. The conservation check
// runs inside the same transaction as the write: the new total may not
// drop below the quantity currently out on checkout.
func UpdateItem(ctx context.Context, db *sql.DB, id string, patch *model.Item) (*model.Item, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM items WHERE id = ?`, id).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("checking item: %w", err)
	}

	out, err := outstanding(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if patch.QtyTotal < out {
		return nil, validationf("total quantity %d is less than the %d currently out on checkout", patch.QtyTotal, out)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE items SET sku = ?, name = ?, category = ?, location = ?, unit = ?,
		        safety_stock = ?, qty_total = ?, cost = ?, price = ?, tags = ?, notes = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		patch.SKU, patch.Name, patch.Category, patch.Location, patch.Unit,
		patch.SafetyStock, patch.QtyTotal, patch.Cost, patch.Price, encodeTags(patch.Tags), patch.Notes,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}

	if err := logActivity(ctx, tx, model.ActivityInventoryUpdate, patch.SKU, "Updated "+patch.Name); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item update: %w", err)
	}

	return GetItem(ctx, db, id)
}

// DeleteItem removes an item unconditionally and reports how many units
// were still out on checkout, so the caller can warn the operator.
// Checkout lines keep their snapshotted SKU and name, so history keeps
// rendering after the item is gone.
func DeleteItem(ctx context.Context, db *sql.DB, id string) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var sku, name string
	err = tx.QueryRowContext(ctx, `SELECT sku, name FROM items WHERE id = ?`, id).Scan(&sku, &name)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("checking item: %w", err)
	}

	out, err := outstanding(ctx, tx, id)
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return 0, fmt.Errorf("deleting item: %w", err)
	}

	if err := logActivity(ctx, tx, model.ActivityInventoryDelete, sku, "Deleted "+name); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing item deletion: %w", err)
	}

	return out, nil
}

// SetItemImage sets an item's image data.
func SetItemImage(ctx context.Context, db *sql.DB, id string, image []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET image = ?, image_mime = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		image, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}
	return nil
}

// GetItemImage returns an item's image data and MIME type.
func GetItemImage(ctx context.Context, db *sql.DB, id string) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM items WHERE id = ?`, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return image, mime.String, nil
}

func scanItem(scan func(...any) error) (*model.Item, error) {
	item := &model.Item{}
	var tags string
	var imageMime sql.NullString
	err := scan(&item.ID, &item.SKU, &item.Name, &item.Category, &item.Location, &item.Unit,
		&item.SafetyStock, &item.QtyTotal, &item.Cost, &item.Price, &tags, &item.Notes,
		&imageMime, &item.CreatedAt, &item.UpdatedAt, &item.QtyAvailable)
	if err != nil {
		return nil, err
	}
	item.ImageMime = imageMime.String
	item.Tags = decodeTags(tags)
	return item, nil
}

func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeTags(data string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(data), &tags); err != nil {
		return nil
	}
	return tags
}

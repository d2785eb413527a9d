// Package checkout holds the in-memory draft a caller assembles before
// finalizing it through the store. The draft owns the clamping rules;
// the store owns validation against current availability and the atomic
// commit.
package checkout

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/invtracker/invtracker/internal/model"
	"github.com/invtracker/invtracker/internal/store"
)

// Draft is an in-progress, uncommitted checkout. A failed finalize leaves
// it intact for correction.
type Draft struct {
	EventID string
	DueDate string
	Lines   []model.Line
}

// AddItem adds one unit of an item to the draft. An item already present
// gets its quantity incremented, capped at the item's availability; a new
// item starts at quantity 1 and the item's list price.
func (d *Draft) AddItem(item *model.Item) error {
	if item.QtyAvailable <= 0 {
		return fmt.Errorf("no available quantity for %s", item.Name)
	}

	for i := range d.Lines {
		if d.Lines[i].ItemID == item.ID {
			if d.Lines[i].Qty < item.QtyAvailable {
				d.Lines[i].Qty++
			}
			return nil
		}
	}

	d.Lines = append(d.Lines, model.Line{
		ItemID:    item.ID,
		SKU:       item.SKU,
		Name:      item.Name,
		Qty:       1,
		UnitPrice: item.Price,
	})
	return nil
}

// SetQty sets a line's quantity, clamped to [1, avail].
func (d *Draft) SetQty(itemID string, qty, avail int) {
	line := d.line(itemID)
	if line == nil {
		return
	}
	if qty < 1 {
		qty = 1
	}
	if qty > avail {
		qty = avail
	}
	line.Qty = qty
}

// SetPrice sets a line's unit price, clamped to >= 0.
func (d *Draft) SetPrice(itemID string, price float64) {
	line := d.line(itemID)
	if line == nil {
		return
	}
	if price < 0 {
		price = 0
	}
	line.UnitPrice = price
}

// RemoveLine drops an item's line from the draft.
func (d *Draft) RemoveLine(itemID string) {
	for i := range d.Lines {
		if d.Lines[i].ItemID == itemID {
			d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
			return
		}
	}
}

// Subtotal sums quantity times unit price over all lines.
func (d *Draft) Subtotal() float64 {
	var sum float64
	for _, l := range d.Lines {
		sum += float64(l.Qty) * l.UnitPrice
	}
	return sum
}

// Clear resets the draft.
func (d *Draft) Clear() {
	*d = Draft{}
}

// Finalize commits the draft as one new checkout. Validation failures
// (missing event, empty draft, stale availability) come back as
// store.ValidationError values and leave the draft untouched; on success
// the draft is cleared and the committed checkout returned.
func (d *Draft) Finalize(ctx context.Context, db *sql.DB) (*model.Checkout, error) {
	co, err := store.CreateCheckout(ctx, db, d.EventID, d.DueDate, d.Lines)
	if err != nil {
		return nil, err
	}
	d.Clear()
	return co, nil
}

func (d *Draft) line(itemID string) *model.Line {
	for i := range d.Lines {
		if d.Lines[i].ItemID == itemID {
			return &d.Lines[i]
		}
	}
	return nil
}

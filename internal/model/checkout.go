package model

import "time"

// Checkout is an immutable record of items committed to an event.
// Monetary fields are computed once at creation and stored; only the
// Returned flag changes afterwards.
type Checkout struct {
	ID       string    `json:"id"`
	EventID  string    `json:"event_id"`
	Date     time.Time `json:"date"`
	DueDate  string    `json:"due_date,omitempty"`
	Subtotal float64   `json:"subtotal"`
	Tax      float64   `json:"tax"`
	Total    float64   `json:"total"`
	Returned bool      `json:"returned"`

	// Joined fields (not always populated). EventName is empty when the
	// referenced event has been deleted.
	EventName string `json:"event_name,omitempty"`
	LineCount int    `json:"line_count,omitempty"`
}

// Line is one item entry within a checkout. SKU and name are snapshotted
// at checkout time so later item edits or deletions do not rewrite history.
type Line struct {
	ID         int64   `json:"id,omitempty"`
	CheckoutID string  `json:"checkout_id,omitempty"`
	ItemID     string  `json:"item_id"`
	SKU        string  `json:"sku"`
	Name       string  `json:"name"`
	Qty        int     `json:"qty"`
	UnitPrice  float64 `json:"unit_price"`

	// ReturnedQty is populated by line listings that join the returns
	// ledger.
	ReturnedQty int `json:"returned_qty"`
}

// Return is one append-only return record against a checkout line.
// Multiple returns may target the same line; they are never merged,
// updated, or deleted.
type Return struct {
	ID         int64     `json:"id"`
	CheckoutID string    `json:"checkout_id"`
	ItemID     string    `json:"item_id"`
	Qty        int       `json:"qty"`
	ReturnedAt time.Time `json:"returned_at"`
}

// ReturnEntry is a caller-supplied quantity to return for one item on a
// checkout.
type ReturnEntry struct {
	ItemID string `json:"item_id"`
	Qty    int    `json:"qty"`
}

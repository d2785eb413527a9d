package model

import "time"

// Item represents a rentable inventory item (quantity-based, not
// individually tracked).
//
// QtyAvailable is derived: qty_total minus the outstanding quantity
// (checked out minus returned) across all checkouts. It is never stored.
type Item struct {
	ID           string    `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Category     string    `json:"category,omitempty"`
	Location     string    `json:"location,omitempty"`
	Unit         string    `json:"unit,omitempty"`
	SafetyStock  int       `json:"safety_stock"`
	QtyTotal     int       `json:"qty_total"`
	QtyAvailable int       `json:"qty_available"`
	Cost         float64   `json:"cost"`
	Price        float64   `json:"price"`
	Tags         []string  `json:"tags,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	ImageMime    string    `json:"image_mime,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Low reports whether the item's availability is at or below its safety
// stock threshold.
func (i *Item) Low() bool {
	return i.QtyAvailable <= i.SafetyStock
}

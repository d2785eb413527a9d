package model

import "time"

// Activity is one append-only audit trail entry. Records are never
// updated or deleted; they are read newest-first.
type Activity struct {
	ID      int64     `json:"id"`
	Type    string    `json:"type"`
	Ref     string    `json:"ref,omitempty"`
	Details string    `json:"details,omitempty"`
	Date    time.Time `json:"date"`
}

// Activity types.
const (
	ActivityInventoryAdd    = "inventory.add"
	ActivityInventoryUpdate = "inventory.update"
	ActivityInventoryDelete = "inventory.delete"
	ActivityEventAdd        = "event.add"
	ActivityEventUpdate     = "event.update"
	ActivityEventDelete     = "event.delete"
	ActivityCheckout        = "checkout"
	ActivityReturn          = "return"
)

package model

import "time"

// Event represents a client event that consumes inventory via checkouts.
// Checkouts reference events weakly: deleting an event leaves its
// checkouts in place with a dangling reference.
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Client    string    `json:"client,omitempty"`
	Date      string    `json:"date,omitempty"`
	Location  string    `json:"location,omitempty"`
	Contact   string    `json:"contact,omitempty"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Expected event statuses. The column is an open string; these are the
// values the UI offers.
const (
	EventStatusPlanned   = "planned"
	EventStatusConfirmed = "confirmed"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

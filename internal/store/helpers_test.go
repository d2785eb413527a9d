package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/invtracker/invtracker/internal/model"
)

func seedItem(t *testing.T, database *sql.DB, name string, qtyTotal int, price float64) *model.Item {
	t.Helper()
	item, err := CreateItem(context.Background(), database, &model.Item{
		SKU:      "SKU-" + name,
		Name:     name,
		QtyTotal: qtyTotal,
		Price:    price,
	})
	if err != nil {
		t.Fatalf("seeding item %s: %v", name, err)
	}
	return item
}

func seedEvent(t *testing.T, database *sql.DB, name string) *model.Event {
	t.Helper()
	event, err := CreateEvent(context.Background(), database, &model.Event{Name: name})
	if err != nil {
		t.Fatalf("seeding event %s: %v", name, err)
	}
	return event
}

func setTaxRate(t *testing.T, database *sql.DB, rate float64) {
	t.Helper()
	if _, err := UpdateSettings(context.Background(), database, &model.Settings{
		CurrencySymbol: "$",
		TaxRate:        rate,
	}); err != nil {
		t.Fatalf("setting tax rate: %v", err)
	}
}

package store

import (
	"context"
	"math"
	"testing"

	"github.com/invtracker/invtracker/internal/db"
	"github.com/invtracker/invtracker/internal/model"
)

func TestCreateCheckoutComputesTotals(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	setTaxRate(t, database, 10)
	item := seedItem(t, database, "Speaker", 10, 25)
	event := seedEvent(t, database, "Festival")

	co, err := CreateCheckout(ctx, database, event.ID, "2026-09-15", []model.Line{
		{ItemID: item.ID, Qty: 4, UnitPrice: 25},
	})
	if err != nil {
		t.Fatalf("CreateCheckout: %v", err)
	}

	if co.Subtotal != 100 {
		t.Errorf("expected subtotal 100, got %v", co.Subtotal)
	}
	if co.Tax != 10 {
		t.Errorf("expected tax 10, got %v", co.Tax)
	}
	if math.Abs(co.Total-110) > 1e-9 {
		t.Errorf("expected total 110, got %v", co.Total)
	}
	if co.Returned {
		t.Error("fresh checkout must not be marked returned")
	}
	if co.EventName != "Festival" {
		t.Errorf("expected joined event name, got %q", co.EventName)
	}
	if co.DueDate != "2026-09-15" {
		t.Errorf("expected due date to round-trip, got %q", co.DueDate)
	}

	updated, _ := GetItem(ctx, database, item.ID)
	if updated.QtyAvailable != 6 {
		t.Errorf("expected availability 6 after checkout, got %d", updated.QtyAvailable)
	}
}

func TestCreateCheckoutValidation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item := seedItem(t, database, "Chair", 5, 2)
	event := seedEvent(t, database, "Dinner")
	line := model.Line{ItemID: item.ID, Qty: 1, UnitPrice: 2}

	if _, err := CreateCheckout(ctx, database, "", "", []model.Line{line}); !IsValidation(err) {
		t.Errorf("expected validation error for missing event, got %v", err)
	}
	if _, err := CreateCheckout(ctx, database, event.ID, "", nil); !IsValidation(err) {
		t.Errorf("expected validation error for empty draft, got %v", err)
	}
	if _, err := CreateCheckout(ctx, database, event.ID, "", []model.Line{
		{ItemID: item.ID, Qty: 6, UnitPrice: 2},
	}); !IsValidation(err) {
		t.Errorf("expected validation error for insufficient availability, got %v", err)
	}
	if _, err := CreateCheckout(ctx, database, event.ID, "", []model.Line{
		{ItemID: "gone", Qty: 1, UnitPrice: 2},
	}); !IsValidation(err) {
		t.Errorf("expected validation error for unknown item, got %v", err)
	}
}

func TestCreateCheckoutRejectsStaleDraft(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item := seedItem(t, database, "Heater", 10, 30)
	event := seedEvent(t, database, "Market")

	// Two drafts assembled against the same availability of 10.
	first := []model.Line{{ItemID: item.ID, Qty: 7, UnitPrice: 30}}
	second := []model.Line{{ItemID: item.ID, Qty: 7, UnitPrice: 30}}

	if _, err := CreateCheckout(ctx, database, event.ID, "", first); err != nil {
		t.Fatalf("first CreateCheckout: %v", err)
	}

	// The second draft is now stale: only 3 remain.
	_, err := CreateCheckout(ctx, database, event.ID, "", second)
	if !IsValidation(err) {
		t.Fatalf("expected validation error for stale draft, got %v", err)
	}

	// Nothing of the rejected draft is visible.
	checkouts, _ := ListCheckouts(ctx, database)
	if len(checkouts) != 1 {
		t.Errorf("expected 1 committed checkout, got %d", len(checkouts))
	}
	out, _ := Outstanding(ctx, database, item.ID)
	if out != 7 {
		t.Errorf("expected outstanding 7, got %d", out)
	}
}

func TestCreateCheckoutIsAtomic(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item := seedItem(t, database, "Lamp", 5, 10)
	event := seedEvent(t, database, "Gala")

	// A valid line followed by an invalid one: the whole draft is rejected
	// and the valid line leaves no trace.
	_, err := CreateCheckout(ctx, database, event.ID, "", []model.Line{
		{ItemID: item.ID, Qty: 2, UnitPrice: 10},
		{ItemID: "vanished", Qty: 1, UnitPrice: 5},
	})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	out, _ := Outstanding(ctx, database, item.ID)
	if out != 0 {
		t.Errorf("expected outstanding 0 after rejected draft, got %d", out)
	}
	checkouts, _ := ListCheckouts(ctx, database)
	if len(checkouts) != 0 {
		t.Errorf("expected no checkouts, got %d", len(checkouts))
	}
}

func TestCheckoutSnapshotsDecoupledFromItemEdits(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item := seedItem(t, database, "PA System", 3, 150)
	event := seedEvent(t, database, "Concert")

	co, err := CreateCheckout(ctx, database, event.ID, "", []model.Line{
		{ItemID: item.ID, Qty: 1, UnitPrice: 150},
	})
	if err != nil {
		t.Fatalf("CreateCheckout: %v", err)
	}

	// Rename the item afterwards; history keeps the old snapshot.
	patch := *item
	patch.Name = "PA System v2"
	patch.SKU = "SKU-PA2"
	if _, err := UpdateItem(ctx, database, item.ID, &patch); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	lines, _ := ListLines(ctx, database, co.ID)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Name != "PA System" || lines[0].SKU != "SKU-PA System" {
		t.Errorf("expected snapshotted name/sku, got %q/%q", lines[0].Name, lines[0].SKU)
	}
}

func TestCheckoutActivityDetails(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item := seedItem(t, database, "Mixer", 4, 80)
	event := seedEvent(t, database, "Launch Party")

	co, err := CreateCheckout(ctx, database, event.ID, "", []model.Line{
		{ItemID: item.ID, Qty: 2, UnitPrice: 80},
	})
	if err != nil {
		t.Fatalf("CreateCheckout: %v", err)
	}

	entries, _ := ListActivity(ctx, database, 10)
	if len(entries) == 0 {
		t.Fatal("expected activity entries")
	}
	latest := entries[0]
	if latest.Type != model.ActivityCheckout {
		t.Errorf("expected checkout activity, got %q", latest.Type)
	}
	if latest.Ref != co.ID {
		t.Errorf("expected ref %q, got %q", co.ID, latest.Ref)
	}
	if latest.Details != "Launch Party • 1 item(s)" {
		t.Errorf("unexpected activity details %q", latest.Details)
	}
}

func TestCheckoutSurvivesEventDeletion(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item := seedItem(t, database, "Stage", 1, 500)
	event := seedEvent(t, database, "Fair")

	co, err := CreateCheckout(ctx, database, event.ID, "", []model.Line{
		{ItemID: item.ID, Qty: 1, UnitPrice: 500},
	})
	if err != nil {
		t.Fatalf("CreateCheckout: %v", err)
	}

	if err := DeleteEvent(ctx, database, event.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}

	got, err := GetCheckout(ctx, database, co.ID)
	if err != nil {
		t.Fatalf("GetCheckout: %v", err)
	}
	if got == nil {
		t.Fatal("expected checkout to survive event deletion")
	}
	if got.EventName != "" {
		t.Errorf("expected empty event name for dangling reference, got %q", got.EventName)
	}
}

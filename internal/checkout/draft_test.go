package checkout

import (
	"context"
	"testing"

	"github.com/invtracker/invtracker/internal/db"
	"github.com/invtracker/invtracker/internal/model"
	"github.com/invtracker/invtracker/internal/store"
)

func TestDraftAddItem(t *testing.T) {
	item := &model.Item{ID: "i1", SKU: "S1", Name: "Speaker", Price: 25, QtyAvailable: 2}

	var d Draft
	if err := d.AddItem(item); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if len(d.Lines) != 1 || d.Lines[0].Qty != 1 || d.Lines[0].UnitPrice != 25 {
		t.Errorf("expected one line at qty 1 and list price, got %+v", d.Lines)
	}

	// Adding again increments up to availability, then stops.
	d.AddItem(item)
	d.AddItem(item)
	if d.Lines[0].Qty != 2 {
		t.Errorf("expected quantity capped at availability 2, got %d", d.Lines[0].Qty)
	}

	depleted := &model.Item{ID: "i2", Name: "Gone", QtyAvailable: 0}
	if err := d.AddItem(depleted); err == nil {
		t.Error("expected an error for an item with no availability")
	}
}

func TestDraftSetQtyClamps(t *testing.T) {
	var d Draft
	d.AddItem(&model.Item{ID: "i1", Name: "Chair", Price: 2, QtyAvailable: 10})

	d.SetQty("i1", 7, 10)
	if d.Lines[0].Qty != 7 {
		t.Errorf("expected qty 7, got %d", d.Lines[0].Qty)
	}
	d.SetQty("i1", 0, 10)
	if d.Lines[0].Qty != 1 {
		t.Errorf("expected qty clamped up to 1, got %d", d.Lines[0].Qty)
	}
	d.SetQty("i1", 50, 10)
	if d.Lines[0].Qty != 10 {
		t.Errorf("expected qty clamped down to 10, got %d", d.Lines[0].Qty)
	}
	// Unknown item is a no-op.
	d.SetQty("absent", 3, 10)
	if len(d.Lines) != 1 {
		t.Errorf("expected untouched lines, got %+v", d.Lines)
	}
}

func TestDraftSetPriceClamps(t *testing.T) {
	var d Draft
	d.AddItem(&model.Item{ID: "i1", Name: "Chair", Price: 2, QtyAvailable: 5})

	d.SetPrice("i1", 3.5)
	if d.Lines[0].UnitPrice != 3.5 {
		t.Errorf("expected price 3.5, got %v", d.Lines[0].UnitPrice)
	}
	d.SetPrice("i1", -4)
	if d.Lines[0].UnitPrice != 0 {
		t.Errorf("expected negative price clamped to 0, got %v", d.Lines[0].UnitPrice)
	}
}

func TestDraftRemoveAndSubtotal(t *testing.T) {
	var d Draft
	d.AddItem(&model.Item{ID: "i1", Name: "Chair", Price: 2, QtyAvailable: 10})
	d.AddItem(&model.Item{ID: "i2", Name: "Table", Price: 15, QtyAvailable: 10})
	d.SetQty("i1", 4, 10)

	if got := d.Subtotal(); got != 4*2+15 {
		t.Errorf("expected subtotal 23, got %v", got)
	}

	d.RemoveLine("i1")
	if len(d.Lines) != 1 || d.Lines[0].ItemID != "i2" {
		t.Errorf("expected only the table line, got %+v", d.Lines)
	}
	if got := d.Subtotal(); got != 15 {
		t.Errorf("expected subtotal 15, got %v", got)
	}
}

func TestDraftFinalize(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := store.CreateItem(ctx, database, &model.Item{
		SKU: "S1", Name: "Speaker", QtyTotal: 5, Price: 25,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	event, err := store.CreateEvent(ctx, database, &model.Event{Name: "Festival"})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	d := Draft{EventID: event.ID, DueDate: "2026-09-15"}
	if err := d.AddItem(item); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	d.SetQty(item.ID, 3, item.QtyAvailable)

	co, err := d.Finalize(ctx, database)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if co.Subtotal != 75 {
		t.Errorf("expected subtotal 75, got %v", co.Subtotal)
	}
	if len(d.Lines) != 0 || d.EventID != "" {
		t.Errorf("expected draft cleared after finalize, got %+v", d)
	}
}

func TestDraftFinalizeFailureKeepsDraft(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := store.CreateItem(ctx, database, &model.Item{
		SKU: "S1", Name: "Speaker", QtyTotal: 5, Price: 25,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	// No event set: the store rejects the draft and it survives for a fix.
	var d Draft
	d.AddItem(item)

	_, err = d.Finalize(ctx, database)
	if !store.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(d.Lines) != 1 {
		t.Errorf("expected the draft to survive a failed finalize, got %+v", d)
	}
}

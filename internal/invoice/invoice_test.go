package invoice

import (
	"testing"
	"time"

	"github.com/invtracker/invtracker/internal/model"
)

func testCheckout() *model.Checkout {
	return &model.Checkout{
		ID:       "co-1",
		Date:     time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		DueDate:  "2026-08-10",
		Subtotal: 100,
		Tax:      10,
		Total:    110,
	}
}

func testLines() []model.Line {
	return []model.Line{
		{SKU: "S1", Name: "Speaker", Qty: 2, UnitPrice: 25},
		{SKU: "S2", Name: "Stand", Qty: 5, UnitPrice: 10},
	}
}

func TestProjectPriced(t *testing.T) {
	event := &model.Event{
		Name: "Festival", Client: "Acme", Contact: "jo@acme.test",
		Location: "Main Square", Date: "2026-08-09",
	}
	settings := &model.Settings{
		CurrencySymbol: "€", BusinessName: "Party Rentals",
		BusinessAddress: "1 Main St", BusinessEmail: "hi@rentals.test",
	}

	doc := Project(testCheckout(), testLines(), event, settings, true)

	if doc.InvoiceNo != "co-1" || doc.Date != "2026-08-01" || doc.DueDate != "2026-08-10" {
		t.Errorf("unexpected header: %+v", doc)
	}
	if doc.Currency != "€" || doc.Business.Name != "Party Rentals" {
		t.Errorf("unexpected business block: %+v", doc.Business)
	}
	if doc.BillTo.Client != "Acme" || doc.Event.Name != "Festival" {
		t.Errorf("unexpected bill-to/event: %+v %+v", doc.BillTo, doc.Event)
	}
	if len(doc.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(doc.Lines))
	}
	if doc.Lines[0].UnitPrice != 25 || doc.Lines[0].LineTotal != 50 {
		t.Errorf("unexpected first line pricing: %+v", doc.Lines[0])
	}
	if doc.Totals == nil {
		t.Fatal("expected totals on a priced document")
	}
	if doc.Totals.Subtotal != 100 || doc.Totals.Tax != 10 || doc.Totals.Total != 110 {
		t.Errorf("totals must mirror the stored checkout, got %+v", doc.Totals)
	}
}

func TestProjectUnpriced(t *testing.T) {
	doc := Project(testCheckout(), testLines(), nil, nil, false)

	// Every line is listed, but without money.
	if len(doc.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(doc.Lines))
	}
	for _, l := range doc.Lines {
		if l.UnitPrice != 0 || l.LineTotal != 0 {
			t.Errorf("unpriced line must carry no money, got %+v", l)
		}
		if l.Qty == 0 || l.Name == "" {
			t.Errorf("unpriced line must keep item and quantity, got %+v", l)
		}
	}
	if doc.Totals != nil {
		t.Errorf("unpriced document must have no totals, got %+v", doc.Totals)
	}
}

func TestProjectDanglingEventAndDefaults(t *testing.T) {
	doc := Project(testCheckout(), testLines(), nil, nil, true)

	if doc.BillTo != (BillTo{}) {
		t.Errorf("expected empty bill-to for a deleted event, got %+v", doc.BillTo)
	}
	if doc.Event != (EventRef{}) {
		t.Errorf("expected empty event block, got %+v", doc.Event)
	}
	if doc.Currency != "$" {
		t.Errorf("expected fallback currency, got %q", doc.Currency)
	}
	if doc.Business.Name != "Invoice" {
		t.Errorf("expected fallback header, got %q", doc.Business.Name)
	}
}

// Package invoice projects a checkout into a printable document. The
// projection is pure: no I/O, no recomputation of the checkout's stored
// monetary fields, and no failure modes. Missing references degrade to
// empty fields.
package invoice

import (
	"time"

	"github.com/invtracker/invtracker/internal/model"
)

// Document is the structured invoice representation.
type Document struct {
	InvoiceNo string `json:"invoice_no"`
	Date      string `json:"date"`
	DueDate   string `json:"due_date,omitempty"`

	Business Business `json:"business"`
	BillTo   BillTo   `json:"bill_to"`
	Event    EventRef `json:"event"`

	Currency string `json:"currency"`
	Lines    []Line `json:"lines"`

	// Totals is nil for unpriced documents.
	Totals *Totals `json:"totals,omitempty"`
}

// Business is the issuing organization's identity, from settings.
type Business struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// BillTo is the client block. Empty when the checkout's event reference
// is dangling.
type BillTo struct {
	Client  string `json:"client,omitempty"`
	Contact string `json:"contact,omitempty"`
}

// EventRef describes the event the checkout served.
type EventRef struct {
	Name     string `json:"name,omitempty"`
	Location string `json:"location,omitempty"`
	Date     string `json:"date,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Line is one invoice row. UnitPrice and LineTotal are only populated on
// priced documents.
type Line struct {
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unit_price,omitempty"`
	LineTotal float64 `json:"line_total,omitempty"`
}

// Totals carries the checkout's stored monetary fields.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Project builds the invoice document for a checkout. event may be nil
// (deleted event): the bill-to and event blocks stay empty. settings may
// be nil, falling back to a bare dollar header.
func Project(checkout *model.Checkout, lines []model.Line, event *model.Event, settings *model.Settings, withPrices bool) Document {
	doc := Document{
		InvoiceNo: checkout.ID,
		DueDate:   checkout.DueDate,
		Currency:  "$",
		Business:  Business{Name: "Invoice"},
	}
	if !checkout.Date.IsZero() {
		doc.Date = checkout.Date.Format(time.DateOnly)
	}

	if settings != nil {
		if settings.CurrencySymbol != "" {
			doc.Currency = settings.CurrencySymbol
		}
		if settings.BusinessName != "" {
			doc.Business.Name = settings.BusinessName
		}
		doc.Business.Address = settings.BusinessAddress
		doc.Business.Phone = settings.BusinessPhone
		doc.Business.Email = settings.BusinessEmail
	}

	if event != nil {
		doc.BillTo = BillTo{Client: event.Client, Contact: event.Contact}
		doc.Event = EventRef{
			Name:     event.Name,
			Location: event.Location,
			Date:     event.Date,
			Notes:    event.Notes,
		}
	}

	doc.Lines = make([]Line, 0, len(lines))
	for _, l := range lines {
		line := Line{SKU: l.SKU, Name: l.Name, Qty: l.Qty}
		if withPrices {
			line.UnitPrice = l.UnitPrice
			line.LineTotal = float64(l.Qty) * l.UnitPrice
		}
		doc.Lines = append(doc.Lines, line)
	}

	if withPrices {
		doc.Totals = &Totals{
			Subtotal: checkout.Subtotal,
			Tax:      checkout.Tax,
			Total:    checkout.Total,
		}
	}

	return doc
}

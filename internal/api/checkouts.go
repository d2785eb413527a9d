package api

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/invtracker/invtracker/internal/checkout"
	"github.com/invtracker/invtracker/internal/invoice"
	"github.com/invtracker/invtracker/internal/model"
	"github.com/invtracker/invtracker/internal/store"
)

// CheckoutsHandler handles checkout, return, and invoice endpoints.
type CheckoutsHandler struct {
	DB *sql.DB
}

type checkoutRequest struct {
	EventID string                `json:"event_id"`
	DueDate string                `json:"due_date"`
	Items   []checkoutLineRequest `json:"items"`
}

type checkoutLineRequest struct {
	ItemID string `json:"item_id"`
	Qty    int    `json:"qty"`
	// UnitPrice overrides the item's list price when present.
	UnitPrice *float64 `json:"unit_price"`
}

type returnsRequest struct {
	Returns []model.ReturnEntry `json:"returns"`
}

// List handles GET /api/checkouts.
func (h *CheckoutsHandler) List(w http.ResponseWriter, r *http.Request) {
	checkouts, err := store.ListCheckouts(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to list checkouts")
		return
	}
	if checkouts == nil {
		checkouts = []model.Checkout{}
	}
	jsonResponse(w, http.StatusOK, checkouts)
}

// Create handles POST /api/checkouts. The requested lines are replayed
// through the draft rules (quantity and price clamping), then finalized
// atomically against current availability.
func (h *CheckoutsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft := checkout.Draft{EventID: req.EventID, DueDate: req.DueDate}
	for _, rl := range req.Items {
		item, err := store.GetItem(r.Context(), h.DB, rl.ItemID)
		if err != nil {
			storeError(w, err, "failed to read inventory")
			return
		}
		if item == nil {
			jsonError(w, http.StatusBadRequest, fmt.Sprintf("unknown item %s", rl.ItemID))
			return
		}
		if err := draft.AddItem(item); err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		if rl.Qty > 0 {
			draft.SetQty(item.ID, rl.Qty, item.QtyAvailable)
		}
		if rl.UnitPrice != nil {
			draft.SetPrice(item.ID, *rl.UnitPrice)
		}
	}

	co, err := draft.Finalize(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to create checkout")
		return
	}
	jsonResponse(w, http.StatusCreated, co)
}

// Lines handles GET /api/checkouts/{id}/items.
func (h *CheckoutsHandler) Lines(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	co, err := store.GetCheckout(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get checkout")
		return
	}
	if co == nil {
		jsonError(w, http.StatusNotFound, "checkout not found")
		return
	}

	lines, err := store.ListLines(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to list checkout lines")
		return
	}
	if lines == nil {
		lines = []model.Line{}
	}
	jsonResponse(w, http.StatusOK, lines)
}

// SubmitReturns handles POST /api/checkouts/{id}/returns.
func (h *CheckoutsHandler) SubmitReturns(w http.ResponseWriter, r *http.Request) {
	var req returnsRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := store.SubmitReturns(r.Context(), h.DB, r.PathValue("id"), req.Returns)
	if err != nil {
		storeError(w, err, "failed to process returns")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"success":      true,
		"all_returned": result.AllReturned,
		"accepted":     result.Accepted,
	})
}

// Invoice handles GET /api/checkouts/{id}/invoice. Prices are included
// unless ?prices=0 (or false) asks for a packing-list style document.
func (h *CheckoutsHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	co, err := store.GetCheckout(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get checkout")
		return
	}
	if co == nil {
		jsonError(w, http.StatusNotFound, "checkout not found")
		return
	}

	lines, err := store.ListLines(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to list checkout lines")
		return
	}

	// A deleted event leaves ev nil and the projection degrades.
	ev, err := store.GetEvent(r.Context(), h.DB, co.EventID)
	if err != nil {
		storeError(w, err, "failed to get event")
		return
	}

	settings, err := store.GetSettings(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to get settings")
		return
	}

	withPrices := true
	if p := r.URL.Query().Get("prices"); p == "0" || p == "false" {
		withPrices = false
	}

	doc := invoice.Project(co, lines, ev, settings, withPrices)
	jsonResponse(w, http.StatusOK, doc)
}

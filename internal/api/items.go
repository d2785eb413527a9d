package api

import (
	"database/sql"
	"net/http"

	"github.com/invtracker/invtracker/internal/imaging"
	"github.com/invtracker/invtracker/internal/model"
	"github.com/invtracker/invtracker/internal/store"
)

// ItemsHandler handles inventory item endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

// itemRequest is the create/update payload. A client-sent qty_available
// is ignored: availability is derived from the checkout and return
// ledgers, never stored.
type itemRequest struct {
	ID          string   `json:"id"`
	SKU         string   `json:"sku"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Unit        string   `json:"unit"`
	SafetyStock int      `json:"safety_stock"`
	QtyTotal    int      `json:"qty_total"`
	Cost        float64  `json:"cost"`
	Price       float64  `json:"price"`
	Tags        []string `json:"tags"`
	Notes       string   `json:"notes"`
}

func (req *itemRequest) toModel() *model.Item {
	return &model.Item{
		ID:          req.ID,
		SKU:         req.SKU,
		Name:        req.Name,
		Category:    req.Category,
		Location:    req.Location,
		Unit:        req.Unit,
		SafetyStock: req.SafetyStock,
		QtyTotal:    req.QtyTotal,
		Cost:        req.Cost,
		Price:       req.Price,
		Tags:        req.Tags,
		Notes:       req.Notes,
	}
}

// List handles GET /api/inventory. Optional query params: category, q
// (name/sku search), low=1 (at or below safety stock).
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ItemFilter{
		Category: q.Get("category"),
		Search:   q.Get("q"),
		LowOnly:  q.Get("low") == "1" || q.Get("low") == "true",
	}
	items, err := store.ListItems(r.Context(), h.DB, filter)
	if err != nil {
		storeError(w, err, "failed to list inventory")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/inventory.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.SKU == "" {
		jsonError(w, http.StatusBadRequest, "sku and name required")
		return
	}
	if req.QtyTotal < 0 {
		jsonError(w, http.StatusBadRequest, "total quantity must not be negative")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, req.toModel())
	if err != nil {
		storeError(w, err, "failed to create item")
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/inventory/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := store.GetItem(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		storeError(w, err, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/inventory/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.SKU == "" {
		jsonError(w, http.StatusBadRequest, "sku and name required")
		return
	}

	item, err := store.UpdateItem(r.Context(), h.DB, r.PathValue("id"), req.toModel())
	if err != nil {
		storeError(w, err, "failed to update item")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/inventory/{id}. Deletion always succeeds;
// the response carries the outstanding quantity so the client can warn
// the operator about open checkouts.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	out, err := store.DeleteItem(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		storeError(w, err, "failed to delete item")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"message":     "item deleted",
		"outstanding": out,
	})
}

// GetOutstanding handles GET /api/inventory/{id}/outstanding.
func (h *ItemsHandler) GetOutstanding(w http.ResponseWriter, r *http.Request) {
	out, err := store.Outstanding(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		storeError(w, err, "failed to compute outstanding quantity")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]int{"outstanding": out})
}

// UploadImage handles PUT /api/inventory/{id}/image.
func (h *ItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	result, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetItemImage(r.Context(), h.DB, id, result.Data, result.MIME); err != nil {
		storeError(w, err, "failed to save image")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/inventory/{id}/image.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetItemImage(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		storeError(w, err, "failed to get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

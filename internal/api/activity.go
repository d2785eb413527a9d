package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/invtracker/invtracker/internal/model"
	"github.com/invtracker/invtracker/internal/store"
)

// ActivityHandler handles the audit trail and dashboard stats endpoints.
type ActivityHandler struct {
	DB *sql.DB
}

// List handles GET /api/activity.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := store.ListActivity(r.Context(), h.DB, limit)
	if err != nil {
		storeError(w, err, "failed to list activity")
		return
	}
	if entries == nil {
		entries = []model.Activity{}
	}
	jsonResponse(w, http.StatusOK, entries)
}

// Stats handles GET /api/stats.
func (h *ActivityHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := store.GetStats(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to compute stats")
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}

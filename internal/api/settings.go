package api

import (
	"database/sql"
	"net/http"

	"github.com/invtracker/invtracker/internal/model"
	"github.com/invtracker/invtracker/internal/store"
)

// SettingsHandler handles the organization settings endpoints.
type SettingsHandler struct {
	DB *sql.DB
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := store.GetSettings(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to get settings")
		return
	}
	jsonResponse(w, http.StatusOK, settings)
}

// Update handles PUT /api/settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.Settings
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := store.UpdateSettings(r.Context(), h.DB, &req)
	if err != nil {
		storeError(w, err, "failed to update settings")
		return
	}
	jsonResponse(w, http.StatusOK, settings)
}

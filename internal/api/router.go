package api

import (
	"database/sql"
	"net/http"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB) http.Handler {
	mux := http.NewServeMux()

	settingsHandler := &SettingsHandler{DB: db}
	itemsHandler := &ItemsHandler{DB: db}
	eventsHandler := &EventsHandler{DB: db}
	checkoutsHandler := &CheckoutsHandler{DB: db}
	activityHandler := &ActivityHandler{DB: db}

	// Settings.
	mux.HandleFunc("GET /api/settings", settingsHandler.Get)
	mux.HandleFunc("PUT /api/settings", settingsHandler.Update)

	// Inventory.
	mux.HandleFunc("GET /api/inventory", itemsHandler.List)
	mux.HandleFunc("POST /api/inventory", itemsHandler.Create)
	mux.HandleFunc("GET /api/inventory/{id}", itemsHandler.Get)
	mux.HandleFunc("PUT /api/inventory/{id}", itemsHandler.Update)
	mux.HandleFunc("DELETE /api/inventory/{id}", itemsHandler.Delete)
	mux.HandleFunc("GET /api/inventory/{id}/outstanding", itemsHandler.GetOutstanding)
	mux.HandleFunc("PUT /api/inventory/{id}/image", itemsHandler.UploadImage)
	mux.HandleFunc("GET /api/inventory/{id}/image", itemsHandler.GetImage)

	// Events.
	mux.HandleFunc("GET /api/events", eventsHandler.List)
	mux.HandleFunc("POST /api/events", eventsHandler.Create)
	mux.HandleFunc("PUT /api/events/{id}", eventsHandler.Update)
	mux.HandleFunc("DELETE /api/events/{id}", eventsHandler.Delete)

	// Checkouts and returns.
	mux.HandleFunc("GET /api/checkouts", checkoutsHandler.List)
	mux.HandleFunc("POST /api/checkouts", checkoutsHandler.Create)
	mux.HandleFunc("GET /api/checkouts/{id}/items", checkoutsHandler.Lines)
	mux.HandleFunc("POST /api/checkouts/{id}/returns", checkoutsHandler.SubmitReturns)
	mux.HandleFunc("GET /api/checkouts/{id}/invoice", checkoutsHandler.Invoice)

	// Activity and stats.
	mux.HandleFunc("GET /api/activity", activityHandler.List)
	mux.HandleFunc("GET /api/stats", activityHandler.Stats)

	return mux
}

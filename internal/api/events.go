package api

import (
	"database/sql"
	"net/http"

	"github.com/invtracker/invtracker/internal/model"
	"github.com/invtracker/invtracker/internal/store"
)

// EventsHandler handles event CRUD endpoints.
type EventsHandler struct {
	DB *sql.DB
}

type eventRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Client   string `json:"client"`
	Date     string `json:"date"`
	Location string `json:"location"`
	Contact  string `json:"contact"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
}

func (req *eventRequest) toModel() *model.Event {
	return &model.Event{
		ID:       req.ID,
		Name:     req.Name,
		Client:   req.Client,
		Date:     req.Date,
		Location: req.Location,
		Contact:  req.Contact,
		Status:   req.Status,
		Notes:    req.Notes,
	}
}

// List handles GET /api/events.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := store.ListEvents(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to list events")
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	jsonResponse(w, http.StatusOK, events)
}

// Create handles POST /api/events.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	event, err := store.CreateEvent(r.Context(), h.DB, req.toModel())
	if err != nil {
		storeError(w, err, "failed to create event")
		return
	}
	jsonResponse(w, http.StatusCreated, event)
}

// Update handles PUT /api/events/{id}.
func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	event, err := store.UpdateEvent(r.Context(), h.DB, r.PathValue("id"), req.toModel())
	if err != nil {
		storeError(w, err, "failed to update event")
		return
	}
	jsonResponse(w, http.StatusOK, event)
}

// Delete handles DELETE /api/events/{id}.
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := store.DeleteEvent(r.Context(), h.DB, r.PathValue("id")); err != nil {
		storeError(w, err, "failed to delete event")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "event deleted"})
}

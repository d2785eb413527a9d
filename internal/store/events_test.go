package store

import (
	"context"
	"testing"

	"github.com/invtracker/invtracker/internal/db"
	"github.com/invtracker/invtracker/internal/model"
)

func TestCreateEventDefaults(t *testing.T) {
	database := db.NewTestDB(t)

	event, err := CreateEvent(context.Background(), database, &model.Event{
		Name:   "Summer Fair",
		Client: "Acme Corp",
		Date:   "2026-07-04",
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if event.ID == "" {
		t.Error("expected a generated event id")
	}
	if event.Status != model.EventStatusPlanned {
		t.Errorf("expected default status %q, got %q", model.EventStatusPlanned, event.Status)
	}
}

func TestUpdateEvent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	event := seedEvent(t, database, "Expo")

	patch := *event
	patch.Status = model.EventStatusConfirmed
	patch.Location = "Hall B"
	updated, err := UpdateEvent(ctx, database, event.ID, &patch)
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if updated.Status != model.EventStatusConfirmed || updated.Location != "Hall B" {
		t.Errorf("expected updated fields, got %+v", updated)
	}

	if _, err := UpdateEvent(ctx, database, "nope", &patch); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for absent event, got %v", err)
	}
}

func TestDeleteEvent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	event := seedEvent(t, database, "Expo")
	if err := DeleteEvent(ctx, database, event.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}

	got, _ := GetEvent(ctx, database, event.ID)
	if got != nil {
		t.Error("expected event to be gone")
	}

	if err := DeleteEvent(ctx, database, event.ID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for repeated deletion, got %v", err)
	}
}

func TestListEventsOrder(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateEvent(ctx, database, &model.Event{Name: "Older", Date: "2026-01-10"})
	CreateEvent(ctx, database, &model.Event{Name: "Newer", Date: "2026-06-20"})

	events, err := ListEvents(ctx, database)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Name != "Newer" {
		t.Errorf("expected the most recent event first, got %q", events[0].Name)
	}
}

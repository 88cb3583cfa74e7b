package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eventboard/reporting-service/internal/database"
	"github.com/eventboard/reporting-service/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func newTestRepo(t *testing.T) EventRepository {
	t.Helper()
	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewEventRepository(db.DB(), zerolog.Nop())
}

func storedEvent(t *testing.T, repo EventRepository, title, occurs, location string) *models.Event {
	t.Helper()
	at, err := time.Parse(time.RFC3339, occurs)
	if err != nil {
		t.Fatalf("parse time %q: %v", occurs, err)
	}
	event := &models.Event{
		ID:       uuid.New(),
		Title:    title,
		Location: location,
		OccursAt: at.UTC(),
	}
	if err := repo.Create(context.Background(), event); err != nil {
		t.Fatalf("create event %q: %v", title, err)
	}
	return event
}

func TestCreateAndGet(t *testing.T) {
	repo := newTestRepo(t)

	event := &models.Event{
		ID:          uuid.New(),
		Title:       "Launch party",
		Description: "celebrate the release",
		Location:    "Berlin",
		OccursAt:    time.Date(2024, 4, 1, 18, 0, 0, 0, time.UTC),
		Attendees:   []string{"alice", "bob"},
	}
	if err := repo.Create(context.Background(), event); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := repo.GetByID(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}

	if got.Title != event.Title || got.Description != event.Description || got.Location != event.Location {
		t.Errorf("stored event = %+v, want %+v", got, event)
	}
	if !got.OccursAt.Equal(event.OccursAt) {
		t.Errorf("occurs_at = %v, want %v", got.OccursAt, event.OccursAt)
	}
	if len(got.Attendees) != 2 || got.Attendees[0] != "alice" {
		t.Errorf("attendees = %v, want [alice bob]", got.Attendees)
	}
}

func TestGetMissingEvent(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("err = %v, want ErrEventNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	event := storedEvent(t, repo, "to delete", "2024-04-01T10:00:00Z", "")

	if err := repo.Delete(context.Background(), event.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), event.ID); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("event still retrievable after delete: %v", err)
	}
	if err := repo.Delete(context.Background(), event.ID); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("second delete err = %v, want ErrEventNotFound", err)
	}
}

func TestListOrderedByOccurrence(t *testing.T) {
	repo := newTestRepo(t)
	late := storedEvent(t, repo, "late", "2024-04-03T10:00:00Z", "")
	early := storedEvent(t, repo, "early", "2024-04-01T10:00:00Z", "")

	events, err := repo.List(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].ID != early.ID || events[1].ID != late.ID {
		t.Errorf("list not ordered by occurs_at: %s, %s", events[0].Title, events[1].Title)
	}
}

func TestListByFilterDateRange(t *testing.T) {
	repo := newTestRepo(t)
	inside := storedEvent(t, repo, "inside", "2024-05-02T10:00:00Z", "")
	storedEvent(t, repo, "before", "2024-04-30T10:00:00Z", "")
	storedEvent(t, repo, "after", "2024-05-10T10:00:00Z", "")
	onBound := storedEvent(t, repo, "on bound", "2024-05-05T00:00:00Z", "")

	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)

	events, err := repo.ListByFilter(context.Background(), Filter{Start: &start, End: &end})
	if err != nil {
		t.Fatalf("ListByFilter returned error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2 (bounds inclusive)", len(events))
	}
	if events[0].ID != inside.ID || events[1].ID != onBound.ID {
		t.Errorf("unexpected filter result: %s, %s", events[0].Title, events[1].Title)
	}
}

func TestListByFilterLocation(t *testing.T) {
	repo := newTestRepo(t)
	berlin := storedEvent(t, repo, "a", "2024-05-01T10:00:00Z", "Berlin")
	storedEvent(t, repo, "b", "2024-05-02T10:00:00Z", "Oslo")

	events, err := repo.ListByFilter(context.Background(), Filter{Location: "berlin"})
	if err != nil {
		t.Fatalf("ListByFilter returned error: %v", err)
	}
	if len(events) != 1 || events[0].ID != berlin.ID {
		t.Errorf("location filter matched %d events, want only Berlin", len(events))
	}
}

func TestListByFilterLocationUnicode(t *testing.T) {
	repo := newTestRepo(t)
	munich := storedEvent(t, repo, "a", "2024-05-01T10:00:00Z", "MÜNCHEN")
	storedEvent(t, repo, "b", "2024-05-02T10:00:00Z", "Oslo")

	// SQLite's own LOWER() would not fold Ü; the stored normalized
	// column must.
	events, err := repo.ListByFilter(context.Background(), Filter{Location: "münchen"})
	if err != nil {
		t.Fatalf("ListByFilter returned error: %v", err)
	}
	if len(events) != 1 || events[0].ID != munich.ID {
		t.Errorf("unicode location filter matched %d events, want only MÜNCHEN", len(events))
	}
}

func TestCount(t *testing.T) {
	repo := newTestRepo(t)

	count, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}

	storedEvent(t, repo, "a", "2024-05-01T10:00:00Z", "")
	storedEvent(t, repo, "b", "2024-05-02T10:00:00Z", "")

	count, err = repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

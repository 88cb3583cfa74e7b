package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/eventboard/reporting-service/internal/models"
)

func TestValidateEventNormalizes(t *testing.T) {
	req := &models.EventRequest{
		Title:       "  Team Offsite  ",
		Description: " planning \n",
		Location:    " Berlin ",
		OccursAt:    "2024-03-15T14:30:00+02:00",
		Attendees:   []string{" alice ", "", "bob"},
	}

	event, err := ValidateEvent(req)
	if err != nil {
		t.Fatalf("ValidateEvent returned error: %v", err)
	}

	if event.Title != "Team Offsite" {
		t.Errorf("title = %q, want trimmed", event.Title)
	}
	if event.Description != "planning" {
		t.Errorf("description = %q, want trimmed", event.Description)
	}
	if event.Location != "Berlin" {
		t.Errorf("location = %q, want trimmed", event.Location)
	}
	want := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)
	if !event.OccursAt.Equal(want) || event.OccursAt.Location() != time.UTC {
		t.Errorf("occurs_at = %v, want %v in UTC", event.OccursAt, want)
	}
	if len(event.Attendees) != 2 || event.Attendees[0] != "alice" || event.Attendees[1] != "bob" {
		t.Errorf("attendees = %v, want [alice bob]", event.Attendees)
	}
}

func TestValidateEventIdempotent(t *testing.T) {
	req := &models.EventRequest{
		Title:    "Standup",
		Location: "Room 4",
		OccursAt: "2024-01-10T09:00:00Z",
	}

	first, err := ValidateEvent(req)
	if err != nil {
		t.Fatalf("first validation failed: %v", err)
	}

	again := &models.EventRequest{
		Title:       first.Title,
		Description: first.Description,
		Location:    first.Location,
		OccursAt:    first.OccursAt.Format(time.RFC3339),
		Attendees:   first.Attendees,
	}
	second, err := ValidateEvent(again)
	if err != nil {
		t.Fatalf("second validation failed: %v", err)
	}

	if second.Title != first.Title || second.Location != first.Location ||
		!second.OccursAt.Equal(first.OccursAt) {
		t.Errorf("validation not idempotent: %+v vs %+v", first, second)
	}
}

func TestValidateEventDateOnly(t *testing.T) {
	event, err := ValidateEvent(&models.EventRequest{Title: "Launch", OccursAt: "2024-12-01"})
	if err != nil {
		t.Fatalf("ValidateEvent returned error: %v", err)
	}
	want := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	if !event.OccursAt.Equal(want) {
		t.Errorf("occurs_at = %v, want %v", event.OccursAt, want)
	}
}

func TestValidateEventRejections(t *testing.T) {
	tests := []struct {
		name  string
		req   *models.EventRequest
		field string
	}{
		{
			name:  "missing title",
			req:   &models.EventRequest{OccursAt: "2024-01-01T00:00:00Z"},
			field: "title",
		},
		{
			name:  "blank title",
			req:   &models.EventRequest{Title: "   ", OccursAt: "2024-01-01T00:00:00Z"},
			field: "title",
		},
		{
			name:  "missing occurs_at",
			req:   &models.EventRequest{Title: "A"},
			field: "occurs_at",
		},
		{
			name:  "whitespace occurs_at",
			req:   &models.EventRequest{Title: "A", OccursAt: "   "},
			field: "occurs_at",
		},
		{
			name:  "unparsable occurs_at",
			req:   &models.EventRequest{Title: "A", OccursAt: "next tuesday"},
			field: "occurs_at",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateEvent(tt.req)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}

			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *validation.Error, got %T: %v", err, err)
			}

			found := false
			for _, f := range verr.Fields {
				if f.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("error %v does not mention field %q", verr, tt.field)
			}
		})
	}
}

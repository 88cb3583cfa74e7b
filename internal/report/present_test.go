package report

import (
	"testing"

	"github.com/eventboard/reporting-service/internal/models"
	"github.com/google/uuid"
)

func TestPresent(t *testing.T) {
	idA, idB := uuid.New(), uuid.New()
	result := &models.ReportResult{
		Groups: []models.ReportGroup{
			{Key: "berlin", Count: 2, EventIDs: []uuid.UUID{idA, idB}},
			{Key: "oslo", Count: 1, EventIDs: []uuid.UUID{idA}},
		},
	}

	view := Present(result)

	if view.Version != ViewVersion {
		t.Errorf("version = %q, want %q", view.Version, ViewVersion)
	}
	if view.TotalEvents != 3 {
		t.Errorf("total_events = %d, want 3", view.TotalEvents)
	}
	if len(view.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(view.Groups))
	}
	if view.Groups[0].Key != "berlin" || view.Groups[0].Count != 2 {
		t.Errorf("first group = %+v, want berlin/2", view.Groups[0])
	}
	if view.Groups[0].EventIDs[0] != idA.String() {
		t.Errorf("event id = %q, want %q", view.Groups[0].EventIDs[0], idA.String())
	}
	if view.GeneratedAt.IsZero() {
		t.Error("generated_at not set")
	}
}

func TestPresentEmptyResult(t *testing.T) {
	result := &models.ReportResult{
		Groups: []models.ReportGroup{{Key: DefaultGroupKey, Count: 0}},
	}

	view := Present(result)

	if view.TotalEvents != 0 {
		t.Errorf("total_events = %d, want 0", view.TotalEvents)
	}
	if len(view.Groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(view.Groups))
	}
	if view.Groups[0].EventIDs == nil {
		t.Error("event_ids should be an empty list, not null")
	}
}

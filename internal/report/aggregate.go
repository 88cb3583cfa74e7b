// Package report turns a snapshot of stored events into admin-facing
// summaries. Aggregation is pure: given the same snapshot and query it
// always produces the same result, regardless of the order the store
// happened to return events in.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/eventboard/reporting-service/internal/models"
	"github.com/google/uuid"
)

// DefaultGroupKey labels the single group of an ungrouped report, and
// the placeholder group of a report that matched nothing.
const DefaultGroupKey = "all"

// dayKeyLayout formats day-grouping keys; its lexicographic order is
// also chronological order.
const dayKeyLayout = "2006-01-02"

// QueryError reports a malformed report query. It is rejected before
// any store access.
type QueryError struct {
	Reason string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("invalid report query: %s", e.Reason)
}

// ValidateQuery rejects queries whose date range is inverted or whose
// grouping key is unknown. An empty (but well-formed) range is valid
// and simply yields an empty report.
func ValidateQuery(q models.ReportQuery) error {
	if q.Start != nil && q.End != nil && q.Start.After(*q.End) {
		return &QueryError{Reason: "start date is after end date"}
	}
	switch q.GroupBy {
	case models.GroupByNone, models.GroupByDay, models.GroupByLocation:
		return nil
	default:
		return &QueryError{Reason: fmt.Sprintf("unknown grouping key %q", q.GroupBy)}
	}
}

// Aggregate filters the snapshot by the query's date range and location,
// groups the survivors by the requested key, and returns the groups in
// ascending key order. Within a group, event IDs keep the order they had
// in the snapshot. A query matching nothing yields a single empty group,
// never an error. The snapshot is read, never mutated.
func Aggregate(events []*models.Event, q models.ReportQuery) (*models.ReportResult, error) {
	if err := ValidateQuery(q); err != nil {
		return nil, err
	}

	groups := make(map[string]*models.ReportGroup)
	var keys []string

	for _, e := range events {
		if !matches(e, q) {
			continue
		}
		key := groupKey(e, q.GroupBy)
		g, ok := groups[key]
		if !ok {
			g = &models.ReportGroup{Key: key}
			groups[key] = g
			keys = append(keys, key)
		}
		g.Count++
		g.EventIDs = append(g.EventIDs, e.ID)
	}

	if len(keys) == 0 {
		return &models.ReportResult{
			Groups: []models.ReportGroup{{Key: DefaultGroupKey, Count: 0, EventIDs: []uuid.UUID{}}},
		}, nil
	}

	// Day keys sort chronologically, location keys lexicographically;
	// both reduce to a plain string sort.
	sort.Strings(keys)

	result := &models.ReportResult{Groups: make([]models.ReportGroup, 0, len(keys))}
	for _, key := range keys {
		result.Groups = append(result.Groups, *groups[key])
	}
	return result, nil
}

func matches(e *models.Event, q models.ReportQuery) bool {
	if q.Start != nil && e.OccursAt.Before(*q.Start) {
		return false
	}
	if q.End != nil && e.OccursAt.After(*q.End) {
		return false
	}
	if loc := normalizeLocation(q.Location); loc != "" && normalizeLocation(e.Location) != loc {
		return false
	}
	return true
}

func groupKey(e *models.Event, groupBy string) string {
	switch groupBy {
	case models.GroupByDay:
		return e.OccursAt.UTC().Format(dayKeyLayout)
	case models.GroupByLocation:
		return normalizeLocation(e.Location)
	default:
		return DefaultGroupKey
	}
}

func normalizeLocation(loc string) string {
	return strings.ToLower(strings.TrimSpace(loc))
}

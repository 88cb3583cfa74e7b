package models

import (
	"time"

	"github.com/google/uuid"
)

// Grouping keys accepted by a report query.
const (
	GroupByNone     = ""
	GroupByDay      = "day"
	GroupByLocation = "location"
)

// ReportQuery describes which events a report covers and how they are
// grouped. Nil bounds mean unbounded; both bounds are inclusive.
type ReportQuery struct {
	Start    *time.Time
	End      *time.Time
	Location string
	GroupBy  string
}

// ReportGroup is one bucket of an aggregation result. EventIDs keep the
// order the events appeared in the input snapshot.
type ReportGroup struct {
	Key      string
	Count    int
	EventIDs []uuid.UUID
}

// ReportResult is the internal aggregation output: groups in ascending
// key order. It is computed on demand and never persisted.
type ReportResult struct {
	Groups []ReportGroup
}

// TotalCount returns the number of events across all groups.
func (r *ReportResult) TotalCount() int {
	total := 0
	for _, g := range r.Groups {
		total += g.Count
	}
	return total
}

// ReportView is the stable external shape of a report. Its layout is
// versioned so the internal grouping representation can change without
// breaking consumers.
type ReportView struct {
	Version     string            `json:"version"`
	GeneratedAt time.Time         `json:"generated_at"`
	TotalEvents int               `json:"total_events"`
	Groups      []ReportGroupView `json:"groups"`
}

// ReportGroupView is one group as exposed to callers.
type ReportGroupView struct {
	Key      string   `json:"key"`
	Count    int      `json:"count"`
	EventIDs []string `json:"event_ids"`
}

package server

import (
	"net/http"
	"time"

	"github.com/eventboard/reporting-service/internal/models"
	"github.com/eventboard/reporting-service/internal/service"
	"github.com/rs/zerolog"
)

// ReportHandler handles HTTP requests for aggregated report views.
type ReportHandler struct {
	svc *service.EventService
	log *zerolog.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(svc *service.EventService, log *zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		svc: svc,
		log: log,
	}
}

// GenerateReport computes a report over the current event set. Query
// parameters: start, end (RFC 3339 or YYYY-MM-DD, inclusive), location,
// group_by (day or location).
func (h *ReportHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q := models.ReportQuery{
		Location: params.Get("location"),
		GroupBy:  params.Get("group_by"),
	}

	if raw := params.Get("start"); raw != "" {
		start, err := parseBoundary(raw, false)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start date: "+raw)
			return
		}
		q.Start = &start
	}

	if raw := params.Get("end"); raw != "" {
		end, err := parseBoundary(raw, true)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end date: "+raw)
			return
		}
		q.End = &end
	}

	view, err := h.svc.GenerateReport(r.Context(), q)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to generate report")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"report": view,
	})
}

// parseBoundary parses a range boundary. A bare date used as the end of
// a range covers the whole day, keeping both bounds inclusive.
func parseBoundary(raw string, isEnd bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}

	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	if isEnd {
		return day.UTC().Add(24*time.Hour - time.Nanosecond), nil
	}
	return day.UTC(), nil
}

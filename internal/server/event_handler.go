package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/eventboard/reporting-service/internal/models"
	"github.com/eventboard/reporting-service/internal/service"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// EventHandler handles HTTP requests related to events.
type EventHandler struct {
	svc *service.EventService
	log *zerolog.Logger
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(svc *service.EventService, log *zerolog.Logger) *EventHandler {
	return &EventHandler{
		svc: svc,
		log: log,
	}
}

// SubmitEvent handles the submission of a new event
func (h *EventHandler) SubmitEvent(w http.ResponseWriter, r *http.Request) {
	var req models.EventRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := h.svc.SubmitEvent(r.Context(), &req)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to submit event")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"event":  event,
	})
}

// GetEvent retrieves an event by ID
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	event, err := h.svc.GetEvent(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("event_id", id.String()).Msg("Failed to get event")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"event":  event,
	})
}

// ListEvents returns a page of stored events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := defaultListLimit
	if raw := query.Get("limit"); raw != "" {
		if l, err := strconv.Atoi(raw); err == nil && l > 0 && l <= maxListLimit {
			limit = l
		}
	}

	offset := 0
	if raw := query.Get("offset"); raw != "" {
		if o, err := strconv.Atoi(raw); err == nil && o >= 0 {
			offset = o
		}
	}

	events, total, err := h.svc.ListEvents(r.Context(), offset, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list events")
		writeServiceError(w, err)
		return
	}
	if events == nil {
		events = []*models.Event{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"events": events,
		"total":  total,
	})
}

// DeleteEvent deletes an event by ID
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID format")
		return
	}

	if err := h.svc.DeleteEvent(r.Context(), id); err != nil {
		h.log.Error().Err(err).Str("event_id", id.String()).Msg("Failed to delete event")
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eventboard/reporting-service/internal/report"
	"github.com/eventboard/reporting-service/internal/repository"
	"github.com/eventboard/reporting-service/internal/validation"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
	})
}

// writeServiceError maps the error taxonomy to HTTP statuses: validation
// and query failures are the caller's fault, a missing event is 404, and
// store failures are reported as retryable.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"status":  "error",
			"message": verr.Error(),
			"fields":  verr.Fields,
		})
		return
	}

	var qerr *report.QueryError
	if errors.As(err, &qerr) {
		writeError(w, http.StatusBadRequest, qerr.Error())
		return
	}

	if errors.Is(err, repository.ErrEventNotFound) {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}

	var serr *repository.StoreError
	if errors.As(err, &serr) {
		writeError(w, http.StatusServiceUnavailable, "Event store unavailable, retry later")
		return
	}

	writeError(w, http.StatusInternalServerError, "Internal server error")
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhisek/careerfit/internal/assessment"
	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/response"
	"github.com/abhisek/careerfit/internal/sessionstore"
	"github.com/abhisek/careerfit/internal/stepper"
	"github.com/abhisek/careerfit/internal/store"
)

type errorBody struct {
	Error string `json:"error"`

	// Restart tells the client to send the respondent back to the start
	// of the assessment.
	Restart bool `json:"restart,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

func writeRestart(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusConflict, errorBody{Error: message, Restart: true})
}

// writeDomainError maps package sentinels to status codes.
func (h *handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrUnknownAssessment),
		errors.Is(err, sessionstore.ErrSessionNotFound),
		errors.Is(err, response.ErrUnknownQuestion),
		errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, response.ErrKindMismatch),
		errors.Is(err, response.ErrInvalidValue):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, assessment.ErrNoResponses),
		errors.Is(err, assessment.ErrCatalogChanged):
		writeRestart(w, err.Error())
	case errors.Is(err, stepper.ErrUnanswered),
		errors.Is(err, assessment.ErrNotComplete),
		errors.Is(err, assessment.ErrCompleted),
		errors.Is(err, assessment.ErrNoCurrentQuestion):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

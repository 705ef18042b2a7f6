// Package api serves assessments over HTTP. Sessions live in a
// sessionstore between requests; completed results are saved through the
// tracker when one is configured.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/coach"
	"github.com/abhisek/careerfit/internal/metrics"
	"github.com/abhisek/careerfit/internal/sessionstore"
	"github.com/abhisek/careerfit/internal/store"
	"github.com/abhisek/careerfit/internal/tracking"
)

// Advisor produces coaching notes for a completed result.
type Advisor interface {
	Advise(ctx context.Context, in coach.Input) (*coach.Advice, error)
}

// Deps holds everything the handlers need. Registry and Sessions are
// required; the rest may be nil.
type Deps struct {
	Registry *catalog.Registry
	Sessions sessionstore.Store
	Results  store.ResultRepo
	Tracker  *tracking.Tracker
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Coach    Advisor
	Logger   *slog.Logger
}

type handler struct {
	Deps

	// mu serializes load-modify-store cycles on sessions.
	mu sync.Mutex
}

// NewRouter creates the API router with all endpoints.
func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	h := &handler{Deps: d}

	r := mux.NewRouter()
	r.Use(h.recoverer, h.observe)

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	if d.Gatherer != nil {
		r.Handle("/metrics", metrics.HandlerFor(d.Gatherer)).Methods(http.MethodGet)
	}

	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/assessments", h.listAssessments).Methods(http.MethodGet)
	v1.HandleFunc("/assessments/{id}", h.getAssessment).Methods(http.MethodGet)
	v1.HandleFunc("/assessments/{id}/score", h.scoreAssessment).Methods(http.MethodPost)

	v1.HandleFunc("/sessions", h.createSession).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{sid}", h.getSession).Methods(http.MethodGet)
	v1.HandleFunc("/sessions/{sid}", h.deleteSession).Methods(http.MethodDelete)
	v1.HandleFunc("/sessions/{sid}/answers/{qid}", h.answer).Methods(http.MethodPut)
	v1.HandleFunc("/sessions/{sid}/next", h.next).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{sid}/back", h.back).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{sid}/restart", h.restart).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{sid}/result", h.sessionResult).Methods(http.MethodGet)

	if d.Results != nil {
		v1.HandleFunc("/results", h.listResults).Methods(http.MethodGet)
		v1.HandleFunc("/results/{rid:[0-9]+}", h.getResult).Methods(http.MethodGet)
	}

	return r
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

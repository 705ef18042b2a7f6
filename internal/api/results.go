package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/abhisek/careerfit/internal/assessment"
	"github.com/abhisek/careerfit/internal/results"
	"github.com/abhisek/careerfit/internal/store"
)

type storedResultView struct {
	ID     int64             `json:"id"`
	Result assessment.Result `json:"result"`
}

// listResults handles GET /v1/results?assessment_id=&limit=
func (h *handler) listResults(w http.ResponseWriter, r *http.Request) {
	opts := store.QueryOpts{AssessmentID: r.URL.Query().Get("assessment_id"), Limit: 50}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		opts.Limit = n
	}

	list, err := h.Results.List(r.Context(), opts)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	out := make([]storedResultView, 0, len(list))
	for _, sr := range list {
		out = append(out, storedResultView{ID: sr.ID, Result: sr.Result})
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": out})
}

// getResult handles GET /v1/results/{rid}
func (h *handler) getResult(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["rid"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid result id")
		return
	}
	sr, err := h.Results.Get(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	out := map[string]any{"id": sr.ID, "result": sr.Result}
	if a, err := h.Registry.ByID(sr.Result.AssessmentID()); err == nil {
		out["report"] = results.Build(a, sr.Result)
	}
	writeJSON(w, http.StatusOK, out)
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/abhisek/careerfit/internal/assessment"
	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/coach"
	"github.com/abhisek/careerfit/internal/response"
	"github.com/abhisek/careerfit/internal/results"
)

type assessmentSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Summary   string `json:"summary,omitempty"`
	Version   string `json:"version"`
	Duration  string `json:"duration,omitempty"`
	Questions int    `json:"questions"`
}

func summarize(a *catalog.Assessment) assessmentSummary {
	return assessmentSummary{
		ID:        a.ID,
		Title:     a.Title,
		Summary:   a.Summary,
		Version:   a.Version,
		Duration:  a.Duration,
		Questions: a.QuestionCount(),
	}
}

// listAssessments handles GET /v1/assessments
func (h *handler) listAssessments(w http.ResponseWriter, r *http.Request) {
	all := h.Registry.All()
	out := make([]assessmentSummary, 0, len(all))
	for _, a := range all {
		out = append(out, summarize(a))
	}
	writeJSON(w, http.StatusOK, map[string]any{"assessments": out})
}

// getAssessment handles GET /v1/assessments/{id}
func (h *handler) getAssessment(w http.ResponseWriter, r *http.Request) {
	a, err := h.Registry.ByID(mux.Vars(r)["id"])
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a.Public())
}

// ScoreRequest is the body of a one-shot scoring call.
type ScoreRequest struct {
	Answers map[string]any `json:"answers"`
	Save    bool           `json:"save,omitempty"`
	Coach   bool           `json:"coach,omitempty"`
}

// ResultResponse carries a result with its rendered report.
type ResultResponse struct {
	Result     assessment.Result `json:"result"`
	Report     results.Report    `json:"report"`
	SavedID    int64             `json:"saved_id,omitempty"`
	Advice     *coach.Advice     `json:"advice,omitempty"`
	CoachError string            `json:"coach_error,omitempty"`
}

// scoreAssessment handles POST /v1/assessments/{id}/score
func (h *handler) scoreAssessment(w http.ResponseWriter, r *http.Request) {
	a, err := h.Registry.ByID(mux.Vars(r)["id"])
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answers, err := response.ParseAll(a, req.Answers)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if answers.Len() == 0 {
		h.writeDomainError(w, r, assessment.ErrNoResponses)
		return
	}

	res := assessment.Evaluate(a, answers)
	out := ResultResponse{Result: res, Report: results.Build(a, res)}
	if req.Save {
		out.SavedID = h.Tracker.SaveResult(r.Context(), res)
	}
	if req.Coach {
		h.attachAdvice(r, a, &out)
	}
	writeJSON(w, http.StatusOK, out)
}

// attachAdvice adds coaching notes when a coach is configured. Failures
// are reported in the body; the canned report still stands.
func (h *handler) attachAdvice(r *http.Request, a *catalog.Assessment, out *ResultResponse) {
	if h.Coach == nil {
		out.CoachError = "coaching is not configured"
		return
	}
	advice, err := h.Coach.Advise(r.Context(), coach.Input{Assessment: a, Result: out.Result, Report: out.Report})
	if err != nil {
		h.Logger.Warn("coaching failed", "assessment", a.ID, "error", err)
		out.CoachError = err.Error()
		return
	}
	out.Advice = advice
}

package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/abhisek/careerfit/internal/assessment"
	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/response"
	"github.com/abhisek/careerfit/internal/results"
	"github.com/abhisek/careerfit/internal/stepper"
)

// SessionView is the client's picture of a session.
type SessionView struct {
	ID           string            `json:"id"`
	AssessmentID string            `json:"assessment_id"`
	Title        string            `json:"title"`
	Phase        stepper.Phase     `json:"phase"`
	Section      string            `json:"section,omitempty"`
	Question     *catalog.Question `json:"question,omitempty"`
	Answer       *response.Value   `json:"answer,omitempty"`
	Index        int               `json:"index"`
	Total        int               `json:"total"`
	Progress     int               `json:"progress"`
	Answered     int               `json:"answered"`
	CanAdvance   bool              `json:"can_advance"`
}

func viewOf(s *assessment.Session) SessionView {
	a := s.Assessment()
	idx, total := s.Position()
	v := SessionView{
		ID:           s.ID(),
		AssessmentID: a.ID,
		Title:        a.Title,
		Phase:        s.Phase(),
		Section:      s.SectionTitle(),
		Index:        idx,
		Total:        total,
		Progress:     s.Progress(),
		Answered:     len(s.Answers()),
		CanAdvance:   s.CanAdvance(),
	}
	if q, ok := s.Current(); ok {
		q.Correct = ""
		v.Question = &q
	}
	if ans, ok := s.CurrentAnswer(); ok {
		v.Answer = &ans
	}
	return v
}

type createSessionRequest struct {
	AssessmentID string `json:"assessment_id"`
}

// createSession handles POST /v1/sessions
func (h *handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AssessmentID == "" {
		writeError(w, http.StatusBadRequest, "assessment_id is required")
		return
	}
	a, err := h.Registry.ByID(req.AssessmentID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	s := assessment.New(a, assessment.WithHooks(h.Tracker.Hooks(r.Context())))
	s.Start()
	if err := h.Sessions.Put(r.Context(), s.State()); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	h.refreshActive(r)
	writeJSON(w, http.StatusCreated, viewOf(s))
}

// deleteSession handles DELETE /v1/sessions/{sid}. Stored results are
// kept; only the in-progress state is dropped.
func (h *handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sid := mux.Vars(r)["sid"]
	if _, err := h.Sessions.Get(r.Context(), sid); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if err := h.Sessions.Delete(r.Context(), sid); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	h.refreshActive(r)
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) refreshActive(r *http.Request) {
	if n, err := h.Sessions.Count(r.Context()); err == nil {
		h.Metrics.SetActiveSessions(n)
	}
}

// load restores the session named in the route.
func (h *handler) load(r *http.Request) (*assessment.Session, error) {
	st, err := h.Sessions.Get(r.Context(), mux.Vars(r)["sid"])
	if err != nil {
		return nil, err
	}
	a, err := h.Registry.ByID(st.AssessmentID)
	if err != nil {
		return nil, err
	}
	return assessment.Restore(a, st, assessment.WithHooks(h.Tracker.Hooks(r.Context())))
}

// mutate runs fn against the stored session and saves the outcome. The
// session is saved even when fn fails so partial progress is kept.
func (h *handler) mutate(w http.ResponseWriter, r *http.Request, fn func(s *assessment.Session) error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, err := h.load(r)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	fnErr := fn(s)
	if err := h.Sessions.Put(r.Context(), s.State()); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if fnErr != nil {
		h.writeDomainError(w, r, fnErr)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s))
}

// getSession handles GET /v1/sessions/{sid}
func (h *handler) getSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.load(r)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s))
}

type answerRequest struct {
	Value any `json:"value"`
}

// answer handles PUT /v1/sessions/{sid}/answers/{qid}
func (h *handler) answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Value == nil {
		writeError(w, http.StatusBadRequest, "value is required")
		return
	}
	qid := mux.Vars(r)["qid"]

	h.mutate(w, r, func(s *assessment.Session) error {
		q, ok := s.Assessment().Question(qid)
		if !ok {
			return fmt.Errorf("%w: %q", response.ErrUnknownQuestion, qid)
		}
		v, err := response.Parse(q, req.Value)
		if err != nil {
			return err
		}
		return s.AnswerQuestion(qid, v)
	})
}

// next handles POST /v1/sessions/{sid}/next
func (h *handler) next(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(s *assessment.Session) error { return s.Next() })
}

// back handles POST /v1/sessions/{sid}/back
func (h *handler) back(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(s *assessment.Session) error {
		s.Back()
		return nil
	})
}

// restart handles POST /v1/sessions/{sid}/restart
func (h *handler) restart(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(s *assessment.Session) error {
		s.Restart()
		s.Start()
		return nil
	})
}

// sessionResult handles GET /v1/sessions/{sid}/result
func (h *handler) sessionResult(w http.ResponseWriter, r *http.Request) {
	s, err := h.load(r)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	res, err := s.Result()
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	out := ResultResponse{Result: res, Report: results.Build(s.Assessment(), res)}
	if r.URL.Query().Get("coach") == "true" {
		h.attachAdvice(r, s.Assessment(), &out)
	}
	writeJSON(w, http.StatusOK, out)
}

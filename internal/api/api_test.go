package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/coach"
	"github.com/abhisek/careerfit/internal/logging"
	"github.com/abhisek/careerfit/internal/metrics"
	"github.com/abhisek/careerfit/internal/sessionstore"
	"github.com/abhisek/careerfit/internal/store"
	"github.com/abhisek/careerfit/internal/tracking"
)

func mini() *catalog.Assessment {
	return &catalog.Assessment{
		ID:      "mini",
		Title:   "Mini Readiness",
		Version: "v1.0.0",
		Categories: []catalog.Category{
			{ID: "interest", Title: "Interest"},
			{ID: "skill", Title: "Skill"},
		},
		Sections: []catalog.Section{
			{ID: "psych", Title: "Psychometric", Questions: []catalog.Question{
				{ID: "q1", SectionID: "psych", Category: "interest", Prompt: "I enjoy building software",
					Kind: catalog.KindScale, Options: catalog.LikertOptions()},
			}},
			{ID: "tech", Title: "Technical", Questions: []catalog.Question{
				{ID: "q2", SectionID: "tech", Category: "skill", Prompt: "Which language has goroutines?",
					Kind: catalog.KindSingleChoice, Options: []catalog.Option{{Label: "Go"}, {Label: "Perl"}}, Correct: "Go"},
			}},
		},
	}
}

func empty() *catalog.Assessment {
	return &catalog.Assessment{ID: "empty", Title: "Empty", Version: "v1.0.0"}
}

type fixture struct {
	srv     *httptest.Server
	store   *store.Store
	metrics *metrics.Metrics
}

type fakeAdvisor struct {
	err error
}

func (f fakeAdvisor) Advise(_ context.Context, in coach.Input) (*coach.Advice, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &coach.Advice{Summary: "Overall " + in.Report.Verdict, Model: "fake"}, nil
}

func newFixture(t *testing.T, advisor Advisor) *fixture {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	logger := logging.Discard()

	h := NewRouter(Deps{
		Registry: catalog.NewRegistry(mini(), empty()),
		Sessions: sessionstore.NewMemory(time.Hour),
		Results:  st.ResultRepo(),
		Tracker:  &tracking.Tracker{Events: st.EventRepo(), Results: st.ResultRepo(), Metrics: m, Logger: logger},
		Metrics:  m,
		Gatherer: reg,
		Coach:    advisor,
		Logger:   logger,
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &fixture{srv: srv, store: st, metrics: m}
}

func (f *fixture) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, f.srv.URL+path, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func TestHealthAndMetrics(t *testing.T) {
	f := newFixture(t, nil)

	code, body := f.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])

	resp, err := f.srv.Client().Get(f.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	assert.Contains(t, buf.String(), `careerfit_http_requests_total{method="GET",route="/health",status="200"}`)
}

func TestAssessments(t *testing.T) {
	f := newFixture(t, nil)

	code, body := f.do(t, http.MethodGet, "/v1/assessments", nil)
	require.Equal(t, http.StatusOK, code)
	list := body["assessments"].([]any)
	require.Len(t, list, 2)
	first := list[0].(map[string]any)
	assert.Equal(t, "mini", first["id"])
	assert.Equal(t, 2.0, first["questions"])

	code, body = f.do(t, http.MethodGet, "/v1/assessments/mini", nil)
	require.Equal(t, http.StatusOK, code)
	sections := body["sections"].([]any)
	q2 := sections[1].(map[string]any)["questions"].([]any)[0].(map[string]any)
	assert.Equal(t, "q2", q2["id"])
	assert.NotContains(t, q2, "correct")

	code, body = f.do(t, http.MethodGet, "/v1/assessments/cobol", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body["error"], "unknown assessment")
}

func TestScoreAssessment(t *testing.T) {
	f := newFixture(t, fakeAdvisor{})

	code, body := f.do(t, http.MethodPost, "/v1/assessments/mini/score", ScoreRequest{
		Answers: map[string]any{"q1": 5, "q2": "Go"},
		Save:    true,
		Coach:   true,
	})
	require.Equal(t, http.StatusOK, code, "body: %v", body)
	result := body["result"].(map[string]any)
	assert.Equal(t, 100.0, result["overall"])
	assert.Equal(t, "Yes", result["recommendation"].(map[string]any)["label"])
	assert.Equal(t, "Mini Readiness", body["report"].(map[string]any)["title"])
	assert.Equal(t, "fake", body["advice"].(map[string]any)["model"])

	id, ok := body["saved_id"].(float64)
	require.True(t, ok, "saved_id missing")
	stored, err := f.store.ResultRepo().Get(context.Background(), int64(id))
	require.NoError(t, err)
	assert.Equal(t, 100, stored.Result.Overall())
}

func TestScoreAssessmentErrors(t *testing.T) {
	f := newFixture(t, nil)

	tests := []struct {
		name    string
		path    string
		body    any
		code    int
		restart bool
	}{
		{"no answers", "/v1/assessments/mini/score", ScoreRequest{Answers: map[string]any{}}, http.StatusConflict, true},
		{"unknown question", "/v1/assessments/mini/score", ScoreRequest{Answers: map[string]any{"q9": 1}}, http.StatusNotFound, false},
		{"out of range", "/v1/assessments/mini/score", ScoreRequest{Answers: map[string]any{"q1": 9}}, http.StatusBadRequest, false},
		{"unknown option", "/v1/assessments/mini/score", ScoreRequest{Answers: map[string]any{"q2": "Rust"}}, http.StatusBadRequest, false},
		{"bad body", "/v1/assessments/mini/score", "nope", http.StatusBadRequest, false},
		{"unknown assessment", "/v1/assessments/cobol/score", ScoreRequest{}, http.StatusNotFound, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := f.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.code, code, "body: %v", body)
			restart, _ := body["restart"].(bool)
			assert.Equal(t, tt.restart, restart)
		})
	}
}

func TestScoreCoachFailureKeepsReport(t *testing.T) {
	f := newFixture(t, fakeAdvisor{err: errors.New("provider down")})

	code, body := f.do(t, http.MethodPost, "/v1/assessments/mini/score", ScoreRequest{
		Answers: map[string]any{"q1": 3},
		Coach:   true,
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "provider down", body["coach_error"])
	assert.NotContains(t, body, "advice")
	assert.NotContains(t, body, "saved_id")
	assert.NotNil(t, body["report"])
}

func TestSessionFlow(t *testing.T) {
	f := newFixture(t, nil)

	code, body := f.do(t, http.MethodPost, "/v1/sessions", map[string]string{"assessment_id": "mini"})
	require.Equal(t, http.StatusCreated, code)
	sid := body["id"].(string)
	assert.Equal(t, "active", body["phase"])
	assert.Equal(t, "Psychometric", body["section"])
	assert.Equal(t, "q1", body["question"].(map[string]any)["id"])
	assert.Equal(t, false, body["can_advance"])

	base := "/v1/sessions/" + sid

	code, body = f.do(t, http.MethodPost, base+"/next", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, body["error"], "unanswered")

	code, body = f.do(t, http.MethodGet, base+"/result", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, true, body["restart"], "a fresh session has nothing to score")

	code, body = f.do(t, http.MethodPut, base+"/answers/q1", map[string]any{"value": "Strongly Agree"})
	require.Equal(t, http.StatusOK, code, "body: %v", body)
	assert.Equal(t, true, body["can_advance"])
	assert.Equal(t, 5.0, body["answer"].(map[string]any)["number"])

	code, body = f.do(t, http.MethodGet, base+"/result", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.NotContains(t, body, "restart")

	code, body = f.do(t, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, code)
	q := body["question"].(map[string]any)
	assert.Equal(t, "q2", q["id"])
	assert.NotContains(t, q, "correct")
	assert.Equal(t, "Technical", body["section"])

	code, body = f.do(t, http.MethodPost, base+"/back", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "q1", body["question"].(map[string]any)["id"])
	f.do(t, http.MethodPost, base+"/next", nil)

	code, _ = f.do(t, http.MethodPut, base+"/answers/q2", map[string]any{"value": "Go"})
	require.Equal(t, http.StatusOK, code)
	code, body = f.do(t, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "complete", body["phase"])
	assert.Equal(t, 100.0, body["progress"])

	code, body = f.do(t, http.MethodPut, base+"/answers/q2", map[string]any{"value": "Perl"})
	assert.Equal(t, http.StatusConflict, code, "answers are frozen after completion: %v", body)

	code, body = f.do(t, http.MethodGet, base+"/result", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 100.0, body["result"].(map[string]any)["overall"])

	latest, err := f.store.ResultRepo().Latest(context.Background(), "mini")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, sid, latest.Result.SessionID())

	code, body = f.do(t, http.MethodPost, base+"/restart", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "active", body["phase"])
	assert.Equal(t, 0.0, body["answered"])
	assert.Equal(t, sid, body["id"])

	code, body = f.do(t, http.MethodGet, base+"/result", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, true, body["restart"])

	code, body = f.do(t, http.MethodGet, "/v1/results?assessment_id=mini", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["results"], 1)

	code, _ = f.do(t, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, code)
	code, _ = f.do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = f.do(t, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = f.do(t, http.MethodGet, "/v1/results?assessment_id=mini", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["results"], 1, "deleting a session keeps its stored result")
}

func TestSessionErrors(t *testing.T) {
	f := newFixture(t, nil)

	code, _ := f.do(t, http.MethodGet, "/v1/sessions/missing", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = f.do(t, http.MethodPost, "/v1/sessions", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = f.do(t, http.MethodPost, "/v1/sessions", map[string]string{"assessment_id": "cobol"})
	assert.Equal(t, http.StatusNotFound, code)

	_, body := f.do(t, http.MethodPost, "/v1/sessions", map[string]string{"assessment_id": "mini"})
	base := "/v1/sessions/" + body["id"].(string)

	code, _ = f.do(t, http.MethodPut, base+"/answers/q9", map[string]any{"value": 1})
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = f.do(t, http.MethodPut, base+"/answers/q1", map[string]any{"value": true})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = f.do(t, http.MethodPut, base+"/answers/q1", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSessionWithoutResponsesRedirectsToStart(t *testing.T) {
	f := newFixture(t, nil)

	code, body := f.do(t, http.MethodPost, "/v1/sessions", map[string]string{"assessment_id": "empty"})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "complete", body["phase"])

	code, body = f.do(t, http.MethodGet, "/v1/sessions/"+body["id"].(string)+"/result", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, true, body["restart"])
}

func TestGetStoredResult(t *testing.T) {
	f := newFixture(t, nil)

	_, body := f.do(t, http.MethodPost, "/v1/assessments/mini/score", ScoreRequest{
		Answers: map[string]any{"q1": 4, "q2": "Perl"},
		Save:    true,
	})
	id := int64(body["saved_id"].(float64))

	code, body := f.do(t, http.MethodGet, "/v1/results/"+strconv.FormatInt(id, 10), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 40.0, body["result"].(map[string]any)["overall"])
	assert.Equal(t, "No", body["report"].(map[string]any)["label"])

	code, _ = f.do(t, http.MethodGet, "/v1/results/9999", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = f.do(t, http.MethodGet, "/v1/results?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestServerGracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	srv := NewServer(ServerConfig{ShutdownTimeout: time.Second}, h, logging.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

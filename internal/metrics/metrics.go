// Package metrics exposes Prometheus instrumentation. A nil *Metrics is
// valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/careerfit/internal/llm"
)

// Metrics holds all Prometheus metrics for careerfit.
type Metrics struct {
	// Assessment lifecycle
	SessionsStarted   *prometheus.CounterVec
	SessionsCompleted *prometheus.CounterVec
	SessionsRestarted *prometheus.CounterVec
	Answers           *prometheus.CounterVec
	OverallScore      *prometheus.HistogramVec
	ActiveSessions    prometheus.Gauge

	// HTTP API
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// LLM provider calls
	LLMCalls   *prometheus.CounterVec
	LLMLatency *prometheus.HistogramVec
	LLMTokens  *prometheus.CounterVec
	LLMCost    *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance registered with registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		SessionsStarted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careerfit_sessions_started_total",
				Help: "Assessment sessions started",
			},
			[]string{"assessment"},
		),
		SessionsCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careerfit_sessions_completed_total",
				Help: "Assessment sessions completed, by recommendation",
			},
			[]string{"assessment", "recommendation"},
		),
		SessionsRestarted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careerfit_sessions_restarted_total",
				Help: "Assessment sessions restarted",
			},
			[]string{"assessment"},
		),
		Answers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careerfit_answers_total",
				Help: "Answers recorded, by question kind",
			},
			[]string{"assessment", "kind"},
		),
		OverallScore: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "careerfit_overall_score",
				Help:    "Overall score of completed assessments",
				Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 75, 80, 90, 100},
			},
			[]string{"assessment"},
		),
		ActiveSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "careerfit_active_sessions",
				Help: "Sessions currently held by the API",
			},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careerfit_http_requests_total",
				Help: "HTTP requests served",
			},
			[]string{"route", "method", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "careerfit_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),

		LLMCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careerfit_llm_calls_total",
				Help: "LLM provider calls",
			},
			[]string{"provider", "model", "purpose", "success"},
		),
		LLMLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "careerfit_llm_latency_seconds",
				Help:    "LLM provider call latency in seconds",
				Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0},
			},
			[]string{"provider", "model"},
		),
		LLMTokens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careerfit_llm_tokens_total",
				Help: "LLM tokens consumed",
			},
			[]string{"provider", "model", "direction"},
		),
		LLMCost: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careerfit_llm_cost_usd_total",
				Help: "Estimated LLM spend in USD",
			},
			[]string{"provider", "model"},
		),
	}
}

// NewRegistry creates a Prometheus registry with careerfit metrics plus
// the Go and process collectors.
func NewRegistry() (*prometheus.Registry, *Metrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg, NewMetrics(reg)
}

// HandlerFor returns an HTTP handler for a specific registry.
func HandlerFor(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// SessionStarted counts a started session.
func (m *Metrics) SessionStarted(assessmentID string) {
	if m == nil {
		return
	}
	m.SessionsStarted.WithLabelValues(assessmentID).Inc()
}

// SessionCompleted counts a completion and observes its overall score.
func (m *Metrics) SessionCompleted(assessmentID, recommendation string, overall int) {
	if m == nil {
		return
	}
	m.SessionsCompleted.WithLabelValues(assessmentID, recommendation).Inc()
	m.OverallScore.WithLabelValues(assessmentID).Observe(float64(overall))
}

// SessionRestarted counts a restart.
func (m *Metrics) SessionRestarted(assessmentID string) {
	if m == nil {
		return
	}
	m.SessionsRestarted.WithLabelValues(assessmentID).Inc()
}

// AnswerRecorded counts an answer.
func (m *Metrics) AnswerRecorded(assessmentID, kind string) {
	if m == nil {
		return
	}
	m.Answers.WithLabelValues(assessmentID, kind).Inc()
}

// SetActiveSessions reports the number of live API sessions.
func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.ActiveSessions.Set(float64(n))
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// LLMObserver returns an llm.Observer feeding the LLM metrics.
func (m *Metrics) LLMObserver() llm.Observer {
	if m == nil {
		return nil
	}
	return func(c llm.Call) {
		m.LLMCalls.WithLabelValues(c.Provider, c.Model, c.Purpose, strconv.FormatBool(c.Err == nil)).Inc()
		m.LLMLatency.WithLabelValues(c.Provider, c.Model).Observe(c.Latency.Seconds())
		m.LLMTokens.WithLabelValues(c.Provider, c.Model, "input").Add(float64(c.Usage.InputTokens))
		m.LLMTokens.WithLabelValues(c.Provider, c.Model, "output").Add(float64(c.Usage.OutputTokens))
		if c.CostUSD > 0 {
			m.LLMCost.WithLabelValues(c.Provider, c.Model).Add(c.CostUSD)
		}
	}
}

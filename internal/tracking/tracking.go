// Package tracking turns session transitions into store events, metrics
// and saved results. Every dependency is optional. Failures are logged and
// never returned to the session.
package tracking

import (
	"context"
	"log/slog"

	"github.com/abhisek/careerfit/internal/assessment"
	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/metrics"
	"github.com/abhisek/careerfit/internal/response"
	"github.com/abhisek/careerfit/internal/store"
)

// Tracker records session activity.
type Tracker struct {
	Events  store.EventRepo
	Results store.ResultRepo
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

func (t *Tracker) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}

// Hooks returns session hooks bound to ctx. A nil Tracker yields no hooks.
func (t *Tracker) Hooks(ctx context.Context) assessment.Hooks {
	if t == nil {
		return assessment.Hooks{}
	}
	return assessment.Hooks{
		OnStart: func(s *assessment.Session) {
			_, total := s.Position()
			t.Metrics.SessionStarted(s.Assessment().ID)
			t.sessionEvent(ctx, s, store.ActionStart, 0, total)
		},
		OnAnswer: func(s *assessment.Session, q catalog.Question, v response.Value) {
			t.Metrics.AnswerRecorded(s.Assessment().ID, string(q.Kind))
			if t.Events == nil {
				return
			}
			err := t.Events.AppendAnswerEvent(ctx, store.AnswerEventData{
				SessionID:    s.ID(),
				AssessmentID: s.Assessment().ID,
				QuestionID:   q.ID,
				Category:     q.Category,
				Kind:         string(q.Kind),
				Value:        v.String(),
			})
			if err != nil {
				t.logger().Warn("record answer event", "session", s.ID(), "question", q.ID, "error", err)
			}
		},
		OnComplete: func(s *assessment.Session, r assessment.Result) {
			t.Metrics.SessionCompleted(r.AssessmentID(), string(r.Label()), r.Overall())
			t.sessionEvent(ctx, s, store.ActionComplete, r.Answered(), r.Total())
			t.SaveResult(ctx, r)
		},
		OnRestart: func(s *assessment.Session) {
			_, total := s.Position()
			t.Metrics.SessionRestarted(s.Assessment().ID)
			t.sessionEvent(ctx, s, store.ActionRestart, 0, total)
		},
	}
}

// SaveResult persists r and returns its row ID, or 0 when no result
// repository is configured or saving failed.
func (t *Tracker) SaveResult(ctx context.Context, r assessment.Result) int64 {
	if t == nil || t.Results == nil {
		return 0
	}
	id, err := t.Results.Save(ctx, r)
	if err != nil {
		t.logger().Warn("save result", "session", r.SessionID(), "assessment", r.AssessmentID(), "error", err)
		return 0
	}
	t.logger().Info("result saved",
		"id", id,
		"assessment", r.AssessmentID(),
		"overall", r.Overall(),
		"recommendation", r.Label())
	return id
}

func (t *Tracker) sessionEvent(ctx context.Context, s *assessment.Session, action string, answered, total int) {
	if t.Events == nil {
		return
	}
	err := t.Events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:    s.ID(),
		AssessmentID: s.Assessment().ID,
		Action:       action,
		Answered:     answered,
		Total:        total,
	})
	if err != nil {
		t.logger().Warn("record session event", "session", s.ID(), "action", action, "error", err)
	}
}

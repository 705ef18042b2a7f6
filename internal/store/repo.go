package store

import (
	"context"
	"time"

	"github.com/abhisek/careerfit/internal/assessment"
)

// Session event actions.
const (
	ActionStart    = "start"
	ActionComplete = "complete"
	ActionRestart  = "restart"
)

// QueryOpts configures result queries with filtering and pagination.
type QueryOpts struct {
	AssessmentID string    // exact match ("" = any)
	Limit        int       // max results (0 = unlimited)
	From         time.Time // completed_at >= From
	To           time.Time // completed_at <= To
}

// SessionEventData captures a session lifecycle transition.
type SessionEventData struct {
	SessionID    string
	AssessmentID string
	Action       string
	Answered     int
	Total        int
}

// AnswerEventData captures one recorded answer.
type AnswerEventData struct {
	SessionID    string
	AssessmentID string
	QuestionID   string
	Category     string
	Kind         string
	Value        string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a recorded LLM call.
type LLMRequestEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// Stats summarizes recorded activity.
type Stats struct {
	SessionsStarted   int
	SessionsCompleted int
	Answers           int
	LLMRequests       int
	Results           int
}

// EventRepo provides append access to domain events.
type EventRepo interface {
	// AppendSessionEvent records a session start, completion or restart.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records an answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// SessionActions returns the actions recorded for a session in order.
	SessionActions(ctx context.Context, sessionID string) ([]string, error)

	// LLMRequests returns recorded LLM calls, newest first.
	LLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// Stats counts recorded events.
	Stats(ctx context.Context) (Stats, error)
}

// StoredResult is a completed result as persisted.
type StoredResult struct {
	ID       int64
	Sequence int64
	Result   assessment.Result
}

// ResultRepo stores completed assessment results.
type ResultRepo interface {
	// Save persists r and returns its row ID.
	Save(ctx context.Context, r assessment.Result) (int64, error)

	// Get returns the result with the given row ID, or ErrNotFound.
	Get(ctx context.Context, id int64) (*StoredResult, error)

	// List returns results newest first.
	List(ctx context.Context, opts QueryOpts) ([]StoredResult, error)

	// Latest returns the newest result for an assessment, or nil if none exist.
	Latest(ctx context.Context, assessmentID string) (*StoredResult, error)
}

// Package assessment runs one respondent through a catalog: it wires the
// response store, the section stepper, the scoring engine and the
// recommendation classifier, and produces a Result exactly once.
package assessment

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/response"
	"github.com/abhisek/careerfit/internal/stepper"
)

var (
	// ErrNotComplete is returned by Result when some questions are
	// answered but the last one has not been passed.
	ErrNotComplete = errors.New("assessment not complete")

	// ErrNoResponses is returned by Result whenever no answer has been
	// recorded, whatever the phase. Callers should send the respondent
	// back to the start.
	ErrNoResponses = errors.New("assessment has no responses")

	// ErrCompleted is returned when answering after completion.
	ErrCompleted = errors.New("assessment already complete")

	// ErrNoCurrentQuestion is returned by Answer outside PhaseActive.
	ErrNoCurrentQuestion = errors.New("no current question")

	// ErrCatalogChanged is returned by Restore when the catalog no longer
	// matches the one the state was recorded against.
	ErrCatalogChanged = errors.New("assessment catalog changed")
)

// Hooks are optional callbacks fired on session transitions.
type Hooks struct {
	OnStart    func(s *Session)
	OnAnswer   func(s *Session, q catalog.Question, v response.Value)
	OnComplete func(s *Session, r Result)
	OnRestart  func(s *Session)
}

// Option configures a Session or Evaluate.
type Option func(*config)

type config struct {
	id    string
	now   func() time.Time
	hooks Hooks
}

func newConfig(opts []Option) config {
	cfg := config{now: time.Now}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.id == "" {
		cfg.id = uuid.NewString()
	}
	return cfg
}

// WithID sets the session ID. Defaults to a random UUID.
func WithID(id string) Option {
	return func(c *config) { c.id = id }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// WithHooks registers transition callbacks.
func WithHooks(h Hooks) Option {
	return func(c *config) { c.hooks = h }
}

// Session is a single respondent's pass through an assessment. It is not
// safe for concurrent use.
type Session struct {
	cfg        config
	assessment *catalog.Assessment
	responses  *response.Store
	stepper    *stepper.Stepper
	result     *Result
	startedAt  time.Time
}

// New creates a session in the intro phase.
func New(a *catalog.Assessment, opts ...Option) *Session {
	return &Session{
		cfg:        newConfig(opts),
		assessment: a,
		responses:  response.NewStore(a),
		stepper:    stepper.New(a.SectionQuestionIDs()),
	}
}

// ID returns the session ID.
func (s *Session) ID() string { return s.cfg.id }

// Assessment returns the catalog being run.
func (s *Session) Assessment() *catalog.Assessment { return s.assessment }

// Phase returns the stepper phase.
func (s *Session) Phase() stepper.Phase { return s.stepper.Phase() }

// StartedAt returns when Start was first called, or zero.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Start leaves the intro and shows the first question.
func (s *Session) Start() {
	if s.stepper.Phase() != stepper.PhaseIntro {
		return
	}
	if s.startedAt.IsZero() {
		s.startedAt = s.cfg.now().UTC()
		if s.cfg.hooks.OnStart != nil {
			s.cfg.hooks.OnStart(s)
		}
	}
	s.stepper.Start()
	s.maybeComplete()
}

// Current returns the question being shown.
func (s *Session) Current() (catalog.Question, bool) {
	id, ok := s.stepper.Current()
	if !ok {
		return catalog.Question{}, false
	}
	return s.assessment.Question(id)
}

// CurrentAnswer returns the recorded answer for the current question.
func (s *Session) CurrentAnswer() (response.Value, bool) {
	id, ok := s.stepper.Current()
	if !ok {
		return response.Value{}, false
	}
	return s.responses.Answer(id)
}

// Answer records v for the current question.
func (s *Session) Answer(v response.Value) error {
	id, ok := s.stepper.Current()
	if !ok {
		if s.stepper.Phase() == stepper.PhaseComplete {
			return ErrCompleted
		}
		return ErrNoCurrentQuestion
	}
	return s.AnswerQuestion(id, v)
}

// AnswerQuestion records v for any question in the catalog.
func (s *Session) AnswerQuestion(id string, v response.Value) error {
	if s.stepper.Phase() == stepper.PhaseComplete {
		return ErrCompleted
	}
	if err := s.responses.Record(id, v); err != nil {
		return err
	}
	if s.cfg.hooks.OnAnswer != nil {
		q, _ := s.assessment.Question(id)
		s.cfg.hooks.OnAnswer(s, q, v)
	}
	return nil
}

// Answered reports whether question id has an answer.
func (s *Session) Answered(id string) bool { return s.responses.Has(id) }

// Answers returns a copy of every recorded answer.
func (s *Session) Answers() map[string]response.Value { return s.responses.Snapshot() }

// CanAdvance reports whether Next would move forward.
func (s *Session) CanAdvance() bool {
	switch s.stepper.Phase() {
	case stepper.PhaseIntro:
		return true
	case stepper.PhaseActive:
		id, _ := s.stepper.Current()
		return s.responses.Has(id)
	}
	return false
}

// Next advances the stepper. The current question must be answered
// (stepper.ErrUnanswered otherwise). Passing the last question completes
// the session and builds the Result.
func (s *Session) Next() error {
	if s.stepper.Phase() == stepper.PhaseIntro {
		s.Start()
		return nil
	}
	if err := s.stepper.Advance(s.responses); err != nil {
		return err
	}
	s.maybeComplete()
	return nil
}

// Back retreats one question.
func (s *Session) Back() { s.stepper.Retreat() }

// Progress returns completion as an integer percentage.
func (s *Session) Progress() int { return s.stepper.Progress() }

// Position returns the flat question index and total.
func (s *Session) Position() (index, total int) {
	return s.stepper.Index(), s.stepper.Total()
}

// SectionTitle returns the title of the current question's section.
func (s *Session) SectionTitle() string {
	q, ok := s.Current()
	if !ok {
		return ""
	}
	return s.assessment.SectionTitle(q.SectionID)
}

// Result returns the completed result.
func (s *Session) Result() (Result, error) {
	if s.responses.Len() == 0 {
		return Result{}, ErrNoResponses
	}
	if s.stepper.Phase() != stepper.PhaseComplete || s.result == nil {
		return Result{}, ErrNotComplete
	}
	return *s.result, nil
}

// Restart clears every answer and returns to the intro.
func (s *Session) Restart() {
	s.responses.Clear()
	s.stepper.Reset()
	s.result = nil
	s.startedAt = time.Time{}
	if s.cfg.hooks.OnRestart != nil {
		s.cfg.hooks.OnRestart(s)
	}
}

// maybeComplete builds the result the first time the stepper reaches
// Complete with at least one answer.
func (s *Session) maybeComplete() {
	if s.stepper.Phase() != stepper.PhaseComplete || s.result != nil || s.responses.Len() == 0 {
		return
	}
	r := evaluate(s.assessment, s.responses, s.cfg.id, s.cfg.now())
	s.result = &r
	if s.cfg.hooks.OnComplete != nil {
		s.cfg.hooks.OnComplete(s, r)
	}
}

// State is the serializable form of a Session.
type State struct {
	ID           string                    `json:"id"`
	AssessmentID string                    `json:"assessment_id"`
	Fingerprint  string                    `json:"fingerprint,omitempty"`
	Answers      map[string]response.Value `json:"answers"`
	Stepper      stepper.State             `json:"stepper"`
	Result       *Result                   `json:"result,omitempty"`
	StartedAt    time.Time                 `json:"started_at,omitempty"`
}

// State captures the session for storage or transfer.
func (s *Session) State() State {
	st := State{
		ID:           s.cfg.id,
		AssessmentID: s.assessment.ID,
		Fingerprint:  s.assessment.Fingerprint,
		Answers:      s.responses.Snapshot(),
		Stepper:      s.stepper.State(),
		StartedAt:    s.startedAt,
	}
	if s.result != nil {
		r := *s.result
		st.Result = &r
	}
	return st
}

// Restore rebuilds a session from st. The catalog must be the one st was
// recorded against.
func Restore(a *catalog.Assessment, st State, opts ...Option) (*Session, error) {
	if st.AssessmentID != a.ID {
		return nil, fmt.Errorf("restore session: state is for %q, not %q", st.AssessmentID, a.ID)
	}
	if st.Fingerprint != "" && a.Fingerprint != "" && st.Fingerprint != a.Fingerprint {
		return nil, fmt.Errorf("restore session %s: %w", st.ID, ErrCatalogChanged)
	}

	s := New(a, append([]Option{WithID(st.ID)}, opts...)...)
	if err := s.responses.Restore(st.Answers); err != nil {
		return nil, fmt.Errorf("restore session %s: %w", st.ID, err)
	}
	if err := s.stepper.Restore(st.Stepper); err != nil {
		return nil, fmt.Errorf("restore session %s: %w", st.ID, err)
	}
	s.startedAt = st.StartedAt
	if st.Result != nil {
		r := *st.Result
		s.result = &r
	}
	return s, nil
}

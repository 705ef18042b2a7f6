// Package stepper implements the linear wizard that walks a respondent
// through an assessment: Intro, then every question of every section in
// order, then Complete.
package stepper

import (
	"errors"
	"fmt"
)

// ErrUnanswered is returned by Advance when the current question has no
// recorded answer.
var ErrUnanswered = errors.New("current question is unanswered")

// Phase is the stepper's coarse state.
type Phase int

const (
	PhaseIntro    Phase = iota // Before the first question
	PhaseActive                // Showing a question
	PhaseComplete              // Past the last question; terminal
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhaseActive:
		return "active"
	case PhaseComplete:
		return "complete"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(b []byte) error {
	switch string(b) {
	case "intro":
		*p = PhaseIntro
	case "active":
		*p = PhaseActive
	case "complete":
		*p = PhaseComplete
	default:
		return fmt.Errorf("unknown phase %q", b)
	}
	return nil
}

// AnswerChecker reports whether a question has a recorded answer.
// *response.Store satisfies it.
type AnswerChecker interface {
	Has(questionID string) bool
}

// State is the serializable position of a Stepper.
type State struct {
	Phase    Phase `json:"phase"`
	Section  int   `json:"section"`
	Question int   `json:"question"`
}

// Stepper tracks the current (section, question) position.
// In PhaseActive the position always references an existing question.
type Stepper struct {
	sections [][]string
	total    int
	state    State
}

// New creates a stepper over question IDs grouped by section.
// Empty sections are skipped.
func New(sections [][]string) *Stepper {
	var kept [][]string
	total := 0
	for _, s := range sections {
		if len(s) == 0 {
			continue
		}
		kept = append(kept, append([]string(nil), s...))
		total += len(s)
	}
	return &Stepper{sections: kept, total: total}
}

// Phase returns the current phase.
func (s *Stepper) Phase() Phase { return s.state.Phase }

// Total returns the number of questions across all sections.
func (s *Stepper) Total() int { return s.total }

// Position returns the current section and question indexes. Only
// meaningful in PhaseActive.
func (s *Stepper) Position() (section, question int) {
	return s.state.Section, s.state.Question
}

// Current returns the ID of the question being shown.
func (s *Stepper) Current() (string, bool) {
	if s.state.Phase != PhaseActive {
		return "", false
	}
	return s.sections[s.state.Section][s.state.Question], true
}

// Start leaves Intro for the first question. A catalog with no questions
// goes straight to Complete. No-op outside Intro.
func (s *Stepper) Start() {
	if s.state.Phase != PhaseIntro {
		return
	}
	if s.total == 0 {
		s.state = State{Phase: PhaseComplete}
		return
	}
	s.state = State{Phase: PhaseActive}
}

// Advance moves to the next question, the next section's first question,
// or Complete. The current question must be answered. From Intro it acts
// like Start; in Complete it does nothing.
func (s *Stepper) Advance(answers AnswerChecker) error {
	switch s.state.Phase {
	case PhaseIntro:
		s.Start()
		return nil
	case PhaseComplete:
		return nil
	}

	id, _ := s.Current()
	if answers == nil || !answers.Has(id) {
		return fmt.Errorf("%w: %q", ErrUnanswered, id)
	}

	switch {
	case s.state.Question+1 < len(s.sections[s.state.Section]):
		s.state.Question++
	case s.state.Section+1 < len(s.sections):
		s.state.Section++
		s.state.Question = 0
	default:
		s.state = State{Phase: PhaseComplete}
	}
	return nil
}

// Retreat is the inverse of Advance. From the first question it returns
// to Intro. Complete is one-way, so Retreat does nothing there.
func (s *Stepper) Retreat() {
	if s.state.Phase != PhaseActive {
		return
	}
	switch {
	case s.state.Question > 0:
		s.state.Question--
	case s.state.Section > 0:
		s.state.Section--
		s.state.Question = len(s.sections[s.state.Section]) - 1
	default:
		s.state = State{Phase: PhaseIntro}
	}
}

// Index returns the zero-based flat index of the current question.
func (s *Stepper) Index() int {
	switch s.state.Phase {
	case PhaseIntro:
		return 0
	case PhaseComplete:
		return s.total
	}
	n := 0
	for i := 0; i < s.state.Section; i++ {
		n += len(s.sections[i])
	}
	return n + s.state.Question
}

// Progress returns completion as an integer percentage. It counts the
// questions already passed, so the first question shows 0 and Complete
// shows 100.
func (s *Stepper) Progress() int {
	if s.state.Phase == PhaseComplete {
		return 100
	}
	if s.total == 0 {
		return 0
	}
	return s.Index() * 100 / s.total
}

// Reset returns to Intro.
func (s *Stepper) Reset() {
	s.state = State{}
}

// State returns the current serializable state.
func (s *Stepper) State() State { return s.state }

// Restore sets the stepper to st after checking it fits the catalog.
func (s *Stepper) Restore(st State) error {
	switch st.Phase {
	case PhaseIntro, PhaseComplete:
		s.state = State{Phase: st.Phase}
		return nil
	case PhaseActive:
		if st.Section < 0 || st.Section >= len(s.sections) ||
			st.Question < 0 || st.Question >= len(s.sections[st.Section]) {
			return fmt.Errorf("restore stepper: position (%d, %d) out of bounds", st.Section, st.Question)
		}
		s.state = st
		return nil
	}
	return fmt.Errorf("restore stepper: unknown phase %d", st.Phase)
}

// Package response holds the respondent's answers for a single session.
package response

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/abhisek/careerfit/internal/catalog"
)

var (
	// ErrUnknownQuestion is returned when recording an answer for a
	// question that is not in the attached catalog.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrKindMismatch is returned when a value's kind differs from the
	// question's kind.
	ErrKindMismatch = errors.New("answer kind does not match question")

	// ErrInvalidValue is returned for out-of-range scale values and
	// unknown choice labels.
	ErrInvalidValue = errors.New("invalid answer value")
)

// Value is one recorded answer. Exactly one of Number, Choice or Bool is
// meaningful, selected by Kind.
type Value struct {
	Kind   catalog.Kind `json:"kind"`
	Number float64      `json:"number,omitempty"`
	Choice string       `json:"choice,omitempty"`
	Bool   bool         `json:"bool,omitempty"`
}

// Scale returns a scale answer.
func Scale(n float64) Value { return Value{Kind: catalog.KindScale, Number: n} }

// Choice returns a single-choice answer.
func Choice(label string) Value { return Value{Kind: catalog.KindSingleChoice, Choice: label} }

// Bool returns a boolean answer.
func Bool(b bool) Value { return Value{Kind: catalog.KindBoolean, Bool: b} }

// IsZero reports whether v is the unanswered sentinel.
func (v Value) IsZero() bool { return v.Kind == "" }

// String renders the value for display.
func (v Value) String() string {
	switch v.Kind {
	case catalog.KindScale:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case catalog.KindSingleChoice:
		return v.Choice
	case catalog.KindBoolean:
		if v.Bool {
			return "Yes"
		}
		return "No"
	}
	return ""
}

// Store maps question IDs to their latest answer. When created with a
// catalog it rejects answers that do not fit the question.
type Store struct {
	assessment *catalog.Assessment
	answers    map[string]Value
}

// NewStore creates a store that validates answers against a.
// A nil assessment disables validation.
func NewStore(a *catalog.Assessment) *Store {
	return &Store{assessment: a, answers: make(map[string]Value)}
}

// Record upserts the answer for questionID. Re-answering replaces the
// previous value.
func (s *Store) Record(questionID string, v Value) error {
	if s.assessment != nil {
		q, ok := s.assessment.Question(questionID)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownQuestion, questionID)
		}
		if err := Check(q, v); err != nil {
			return err
		}
	}
	s.answers[questionID] = v
	return nil
}

// Answer returns the current answer for questionID. The second result is
// false when the question is unanswered.
func (s *Store) Answer(questionID string) (Value, bool) {
	v, ok := s.answers[questionID]
	return v, ok
}

// Has reports whether questionID has an answer.
func (s *Store) Has(questionID string) bool {
	_, ok := s.answers[questionID]
	return ok
}

// Len returns the number of answered questions.
func (s *Store) Len() int { return len(s.answers) }

// Clear drops every answer.
func (s *Store) Clear() {
	s.answers = make(map[string]Value)
}

// Snapshot returns a copy of all answers.
func (s *Store) Snapshot() map[string]Value {
	out := make(map[string]Value, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// Restore replaces all answers with a copy of m, validating each one.
func (s *Store) Restore(m map[string]Value) error {
	next := NewStore(s.assessment)
	for id, v := range m {
		if err := next.Record(id, v); err != nil {
			return err
		}
	}
	s.answers = next.answers
	return nil
}

// Check reports whether v is an acceptable answer for q.
func Check(q catalog.Question, v Value) error {
	if v.Kind != q.Kind {
		return fmt.Errorf("%w: question %q is %s, got %s", ErrKindMismatch, q.ID, q.Kind, v.Kind)
	}
	switch q.Kind {
	case catalog.KindScale:
		if len(q.Options) > 0 && (v.Number < q.MinValue() || v.Number > q.MaxValue()) {
			return fmt.Errorf("%w: %g outside [%g, %g] for %q", ErrInvalidValue, v.Number, q.MinValue(), q.MaxValue(), q.ID)
		}
	case catalog.KindSingleChoice:
		if !q.HasOption(v.Choice) {
			return fmt.Errorf("%w: %q is not an option of %q", ErrInvalidValue, v.Choice, q.ID)
		}
	}
	return nil
}

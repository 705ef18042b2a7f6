package assessment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	asmt "github.com/abhisek/careerfit/internal/assessment"
	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/response"
	"github.com/abhisek/careerfit/internal/router"
	"github.com/abhisek/careerfit/internal/screen"
	"github.com/abhisek/careerfit/internal/stepper"
	"github.com/abhisek/careerfit/internal/ui/components"
	"github.com/abhisek/careerfit/internal/ui/layout"
	"github.com/abhisek/careerfit/internal/ui/theme"
)

const (
	hintUnanswered = "Choose an answer to continue."
	noticeNoAnswer = "No answers were recorded, so there is nothing to score yet. Start again when you are ready."
)

// AssessmentScreen shows the intro card and then one question at a time.
type AssessmentScreen struct {
	deps    Deps
	sess    *asmt.Session
	options components.OptionList
	hint    string
	notice  string
}

var _ screen.Screen = (*AssessmentScreen)(nil)
var _ screen.KeyHintProvider = (*AssessmentScreen)(nil)
var _ screen.StatusProvider = (*AssessmentScreen)(nil)

// New starts a fresh session for a.
func New(a *catalog.Assessment, deps Deps) *AssessmentScreen {
	sess := asmt.New(a, asmt.WithHooks(deps.Tracker.Hooks(context.Background())))
	return resume(sess, deps)
}

// resume wraps an existing session, used after a restart from the results page.
func resume(sess *asmt.Session, deps Deps) *AssessmentScreen {
	s := &AssessmentScreen{deps: deps, sess: sess}
	s.syncOptions()
	return s
}

// Session returns the running session.
func (s *AssessmentScreen) Session() *asmt.Session { return s.sess }

func (s *AssessmentScreen) Init() tea.Cmd {
	return nil
}

func (s *AssessmentScreen) Title() string {
	return s.sess.Assessment().Title
}

func (s *AssessmentScreen) Status() string {
	if s.sess.Phase() != stepper.PhaseActive {
		return ""
	}
	idx, total := s.sess.Position()
	return fmt.Sprintf("Question %d of %d", idx+1, total)
}

func (s *AssessmentScreen) KeyHints() []layout.KeyHint {
	if s.sess.Phase() == stepper.PhaseIntro {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Begin"},
			{Key: "Esc", Description: "Back"},
		}
	}
	next := "Next"
	if !s.sess.CanAdvance() {
		next = "Next (answer first)"
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter/1-9", Description: "Answer"},
		{Key: "→/n", Description: next},
		{Key: "←/b", Description: "Back"},
		{Key: "Esc", Description: "Quit assessment"},
	}
}

func (s *AssessmentScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch s.sess.Phase() {
	case stepper.PhaseIntro:
		switch kmsg.String() {
		case "enter", "right", "n":
			s.notice = ""
			s.sess.Start()
			return s, s.afterMove()
		}

	case stepper.PhaseActive:
		switch kmsg.String() {
		case "right", "n":
			return s, s.next()
		case "left", "b":
			s.sess.Back()
			s.hint = ""
			s.syncOptions()
			return s, nil
		}
		var picked int
		s.options, picked = s.options.Update(msg)
		if picked >= 0 {
			s.answer(picked)
		}

	case stepper.PhaseComplete:
		return s, s.afterMove()
	}
	return s, nil
}

func (s *AssessmentScreen) next() tea.Cmd {
	if !s.sess.CanAdvance() {
		s.hint = hintUnanswered
		return nil
	}
	if err := s.sess.Next(); err != nil {
		s.hint = hintFor(err)
		return nil
	}
	return s.afterMove()
}

// afterMove refreshes the option list, or hands over to the results page
// once the session completes.
func (s *AssessmentScreen) afterMove() tea.Cmd {
	s.hint = ""
	if s.sess.Phase() != stepper.PhaseComplete {
		s.syncOptions()
		return nil
	}

	res, err := s.sess.Result()
	if errors.Is(err, asmt.ErrNoResponses) {
		s.sess.Restart()
		s.notice = noticeNoAnswer
		s.syncOptions()
		return nil
	}
	if err != nil {
		s.deps.logger().Error("assessment result", "session", s.sess.ID(), "error", err)
		s.notice = err.Error()
		return nil
	}

	rs := newResults(s.sess, res, s.deps)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: rs} }
}

func (s *AssessmentScreen) answer(i int) {
	q, ok := s.sess.Current()
	if !ok || i >= len(q.Options) {
		return
	}
	if err := s.sess.Answer(valueFor(q, q.Options[i])); err != nil {
		s.hint = hintFor(err)
		return
	}
	s.hint = ""
}

func (s *AssessmentScreen) syncOptions() {
	q, ok := s.sess.Current()
	if !ok {
		s.options = components.OptionList{Chosen: -1}
		return
	}
	labels := make([]string, len(q.Options))
	for i, o := range q.Options {
		labels[i] = o.Label
	}
	chosen := -1
	if v, ok := s.sess.CurrentAnswer(); ok {
		chosen = optionIndex(q, v)
	}
	s.options = components.NewOptionList(labels, chosen)
}

// valueFor converts a picked option into an answer of the question's kind.
func valueFor(q catalog.Question, o catalog.Option) response.Value {
	switch q.Kind {
	case catalog.KindScale:
		return response.Scale(o.Value)
	case catalog.KindBoolean:
		return response.Bool(o.Value != 0)
	default:
		return response.Choice(o.Label)
	}
}

// optionIndex finds the option matching a recorded answer, or -1.
func optionIndex(q catalog.Question, v response.Value) int {
	for i, o := range q.Options {
		switch q.Kind {
		case catalog.KindScale:
			if o.Value == v.Number {
				return i
			}
		case catalog.KindBoolean:
			if (o.Value != 0) == v.Bool {
				return i
			}
		default:
			if o.Label == v.Choice {
				return i
			}
		}
	}
	return -1
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, stepper.ErrUnanswered):
		return hintUnanswered
	case errors.Is(err, response.ErrInvalidValue), errors.Is(err, response.ErrKindMismatch):
		return "That answer is not valid for this question."
	}
	return err.Error()
}

func (s *AssessmentScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	var body string
	if s.sess.Phase() == stepper.PhaseActive {
		body = s.renderQuestion(cw)
	} else {
		body = s.renderIntro(cw)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func (s *AssessmentScreen) renderIntro(cw int) string {
	a := s.sess.Assessment()
	var b strings.Builder

	b.WriteString(theme.Title.Width(cw).Render(a.Title))
	b.WriteString("\n")
	meta := fmt.Sprintf("%d questions", a.QuestionCount())
	if a.Duration != "" {
		meta += " · about " + a.Duration
	}
	b.WriteString(theme.Subtitle.Width(cw).Render(meta))
	b.WriteString("\n\n")

	if a.Summary != "" {
		b.WriteString(theme.Body.Width(cw - 6).Render(a.Summary))
		b.WriteString("\n\n")
	}

	b.WriteString(theme.Heading.Render("Sections"))
	b.WriteString("\n")
	for i, sec := range a.Sections {
		fmt.Fprintf(&b, "  %d. %s (%d)\n", i+1, sec.Title, len(sec.Questions))
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Width(cw - 6).Render(s.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.ButtonActive.Render("▸ Begin"))

	return "\n" + theme.Card.Width(cw).Render(b.String())
}

func (s *AssessmentScreen) renderQuestion(cw int) string {
	q, _ := s.sess.Current()
	var b strings.Builder

	b.WriteString(theme.Heading.Render(s.sess.SectionTitle()))
	b.WriteString("\n")
	b.WriteString(components.NewMeter("", s.sess.Progress(), cw).View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).Render(q.Prompt))
	b.WriteString("\n\n")
	b.WriteString(s.options.View())

	b.WriteString("\n")
	switch {
	case s.hint != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(s.hint))
	case s.sess.CanAdvance():
		b.WriteString(theme.Hint.Render("Press → or n to continue."))
	default:
		b.WriteString(theme.Hint.Render("Pick an answer with Enter or a number key."))
	}

	return "\n" + b.String()
}

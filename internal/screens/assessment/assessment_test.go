package assessment

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/coach"
	"github.com/abhisek/careerfit/internal/recommend"
	"github.com/abhisek/careerfit/internal/router"
	"github.com/abhisek/careerfit/internal/stepper"
)

func testAssessment() *catalog.Assessment {
	return &catalog.Assessment{
		ID:       "mini",
		Title:    "Mini Readiness",
		Summary:  "A short check.",
		Version:  "v1.0.0",
		Duration: "2 minutes",
		Categories: []catalog.Category{
			{ID: "interest", Title: "Interest"},
			{ID: "skill", Title: "Skill"},
		},
		Sections: []catalog.Section{
			{ID: "psych", Title: "Psychometric", Questions: []catalog.Question{
				{ID: "q1", SectionID: "psych", Category: "interest", Prompt: "I enjoy building software",
					Kind: catalog.KindScale, Options: catalog.LikertOptions()},
				{ID: "q3", SectionID: "psych", Category: "interest", Prompt: "Would you study in the evenings?",
					Kind: catalog.KindBoolean, Options: []catalog.Option{{Label: "Yes", Value: 1}, {Label: "No", Value: 0}}},
			}},
			{ID: "tech", Title: "Technical", Questions: []catalog.Question{
				{ID: "q2", SectionID: "tech", Category: "skill", Prompt: "Which language has goroutines?",
					Kind: catalog.KindSingleChoice, Options: []catalog.Option{{Label: "Go"}, {Label: "Perl"}}, Correct: "Go"},
			}},
		},
		Careers: []catalog.Career{
			{Title: "Backend Engineer", Description: "Builds services.", MinScore: 70},
		},
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func press(s *AssessmentScreen, keys ...tea.KeyPressMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = s.Update(k)
	}
	return cmd
}

type fakeAdvisor struct {
	advice *coach.Advice
	err    error
	calls  int
}

func (f *fakeAdvisor) Advise(_ context.Context, in coach.Input) (*coach.Advice, error) {
	f.calls++
	if in.Result.IsZero() {
		return nil, coach.ErrIncomplete
	}
	return f.advice, f.err
}

// finish answers every question with the first option and returns the
// results screen the assessment hands over to.
func finish(t *testing.T, s *AssessmentScreen) *ResultsScreen {
	t.Helper()
	press(s, specialKey(tea.KeyEnter))
	var cmd tea.Cmd
	for s.sess.Phase() == stepper.PhaseActive {
		cmd = press(s, keyPress('1'), keyPress('n'))
	}
	if cmd == nil {
		t.Fatal("expected a command when the assessment completes")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	rs, ok := msg.Screen.(*ResultsScreen)
	if !ok {
		t.Fatalf("expected *ResultsScreen, got %T", msg.Screen)
	}
	return rs
}

func TestIntroStartsFirstQuestion(t *testing.T) {
	s := New(testAssessment(), Deps{})
	if s.Status() != "" {
		t.Errorf("intro should have no status, got %q", s.Status())
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Mini Readiness") || !strings.Contains(view, "Psychometric") {
		t.Errorf("intro view missing title or sections:\n%s", view)
	}

	press(s, specialKey(tea.KeyEnter))

	if s.sess.Phase() != stepper.PhaseActive {
		t.Fatalf("expected active phase, got %v", s.sess.Phase())
	}
	if s.Status() != "Question 1 of 3" {
		t.Errorf("Status = %q", s.Status())
	}
	if !strings.Contains(s.View(100, 30), "I enjoy building software") {
		t.Error("expected first prompt in view")
	}
}

func TestNextRequiresAnswer(t *testing.T) {
	s := New(testAssessment(), Deps{})
	press(s, specialKey(tea.KeyEnter), keyPress('n'))

	if s.hint != hintUnanswered {
		t.Errorf("expected unanswered hint, got %q", s.hint)
	}
	if idx, _ := s.sess.Position(); idx != 0 {
		t.Errorf("should stay on the first question, got index %d", idx)
	}

	press(s, keyPress('5'), specialKey(tea.KeyRight))

	if idx, _ := s.sess.Position(); idx != 1 {
		t.Errorf("expected index 1 after answering, got %d", idx)
	}
	if s.hint != "" {
		t.Errorf("hint should clear after moving on, got %q", s.hint)
	}
	v, ok := s.sess.Answers()["q1"]
	if !ok || v.Number != 5 {
		t.Errorf("expected q1 = 5, got %+v", v)
	}
}

func TestBackRestoresChosenOption(t *testing.T) {
	s := New(testAssessment(), Deps{})
	press(s, specialKey(tea.KeyEnter), specialKey(tea.KeyDown), specialKey(tea.KeyDown), specialKey(tea.KeyDown),
		specialKey(tea.KeyEnter), keyPress('n'))

	press(s, keyPress('b'))

	if idx, _ := s.sess.Position(); idx != 0 {
		t.Fatalf("expected index 0 after back, got %d", idx)
	}
	if s.options.Chosen != 3 {
		t.Errorf("expected the 'Agree' option to be marked, got %d", s.options.Chosen)
	}

	press(s, specialKey(tea.KeyLeft))
	if s.sess.Phase() != stepper.PhaseIntro {
		t.Errorf("back from the first question should return to the intro, got %v", s.sess.Phase())
	}
}

func TestBooleanAnswer(t *testing.T) {
	s := New(testAssessment(), Deps{})
	press(s, specialKey(tea.KeyEnter), keyPress('1'), keyPress('n'), keyPress('2'))

	v, ok := s.sess.Answers()["q3"]
	if !ok || v.Bool {
		t.Errorf("expected q3 = false, got %+v", v)
	}
}

func TestCompletionShowsResults(t *testing.T) {
	rs := finish(t, New(testAssessment(), Deps{}))

	rep := rs.Report()
	// q1 "Strongly disagree" is 1 of 5, q3 "Yes" and q2 "Go" earn full credit.
	if rep.Overall != 80 {
		t.Errorf("Overall = %d, want 80", rep.Overall)
	}
	if rs.Init() != nil {
		t.Error("no coach configured, Init should return nil")
	}

	view := rs.View(100, 200)
	for _, want := range []string{"Scores", "Interest", "Skill", "Career paths", "Backend Engineer", "No coach configured"} {
		if !strings.Contains(view, want) {
			t.Errorf("results view missing %q", want)
		}
	}
}

func TestPerfectRunIsYes(t *testing.T) {
	s := New(testAssessment(), Deps{})
	press(s, specialKey(tea.KeyEnter), keyPress('5'), keyPress('n'), keyPress('1'), keyPress('n'), keyPress('1'))
	cmd := press(s, keyPress('n'))
	if cmd == nil {
		t.Fatal("expected completion command")
	}
	rs := cmd().(router.ReplaceScreenMsg).Screen.(*ResultsScreen)

	if rs.Report().Overall != 100 {
		t.Errorf("Overall = %d, want 100", rs.Report().Overall)
	}
	if rs.Report().Label != recommend.Yes {
		t.Errorf("Label = %q, want Yes", rs.Report().Label)
	}
}

func TestEmptyAssessmentReturnsToStart(t *testing.T) {
	a := &catalog.Assessment{ID: "empty", Title: "Empty", Version: "v1.0.0"}
	s := New(a, Deps{})

	cmd := press(s, specialKey(tea.KeyEnter))

	if cmd != nil {
		t.Error("no results screen should be pushed without responses")
	}
	if s.sess.Phase() != stepper.PhaseIntro {
		t.Errorf("expected intro phase, got %v", s.sess.Phase())
	}
	if !strings.Contains(s.View(100, 30), "nothing to score") {
		t.Error("expected the no-answers notice on the intro card")
	}
}

func TestResultsCoaching(t *testing.T) {
	adv := &fakeAdvisor{advice: &coach.Advice{
		Summary:    "You are well on your way.",
		FocusAreas: []string{"System design"},
		Model:      "fake",
	}}
	rs := finish(t, New(testAssessment(), Deps{Coach: adv}))

	if rs.Init() == nil {
		t.Fatal("expected coaching command from Init")
	}
	if !strings.Contains(rs.View(100, 200), "Asking the coach") {
		t.Error("expected the coaching indicator while waiting")
	}

	msg := rs.advise()()
	rs.Update(msg)

	if adv.calls != 1 {
		t.Errorf("expected one Advise call, got %d", adv.calls)
	}
	view := rs.View(100, 200)
	if !strings.Contains(view, "You are well on your way.") || !strings.Contains(view, "System design") {
		t.Errorf("expected coaching notes in view:\n%s", view)
	}

	// Ticks stop once the reply arrives.
	if _, cmd := rs.Update(thinkTickMsg{}); cmd != nil {
		t.Error("think ticks should stop after coaching finishes")
	}
}

func TestResultsCoachFailureKeepsReport(t *testing.T) {
	adv := &fakeAdvisor{err: errors.New("provider down")}
	rs := finish(t, New(testAssessment(), Deps{Coach: adv}))
	rs.Init()

	rs.Update(rs.advise()())

	view := rs.View(100, 200)
	if !strings.Contains(view, "provider down") {
		t.Error("expected the coaching error in view")
	}
	if !strings.Contains(view, "Scores") {
		t.Error("the report should still be shown")
	}
}

func TestResultsRestart(t *testing.T) {
	rs := finish(t, New(testAssessment(), Deps{}))
	id := rs.sess.ID()

	_, cmd := rs.Update(keyPress('r'))
	if cmd == nil {
		t.Fatal("expected restart command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	as, ok := msg.Screen.(*AssessmentScreen)
	if !ok {
		t.Fatalf("expected *AssessmentScreen, got %T", msg.Screen)
	}
	if as.Session().Phase() != stepper.PhaseIntro {
		t.Errorf("restart should land on the intro, got %v", as.Session().Phase())
	}
	if len(as.Session().Answers()) != 0 {
		t.Error("restart should clear answers")
	}
	if as.Session().ID() != id {
		t.Error("restart should keep the session ID")
	}
}

func TestResultsEnterPops(t *testing.T) {
	rs := finish(t, New(testAssessment(), Deps{}))
	_, cmd := rs.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestResultsScrollIsClamped(t *testing.T) {
	rs := finish(t, New(testAssessment(), Deps{}))
	for i := 0; i < 500; i++ {
		rs.Update(specialKey(tea.KeyDown))
	}
	if rs.View(100, 10) == "" {
		t.Error("expected content at the bottom of the report")
	}
	if rs.offset >= 500 {
		t.Errorf("offset should be clamped by View, got %d", rs.offset)
	}
}

package assessment

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	asmt "github.com/abhisek/careerfit/internal/assessment"
	"github.com/abhisek/careerfit/internal/coach"
	"github.com/abhisek/careerfit/internal/recommend"
	"github.com/abhisek/careerfit/internal/results"
	"github.com/abhisek/careerfit/internal/router"
	"github.com/abhisek/careerfit/internal/screen"
	"github.com/abhisek/careerfit/internal/ui/components"
	"github.com/abhisek/careerfit/internal/ui/layout"
	"github.com/abhisek/careerfit/internal/ui/theme"
)

var thinkFrames = []string{"·  ", "·· ", "···", " ··", "  ·", "   "}

// ResultsScreen shows the report for a completed session and, when a
// coach is configured, fetches coaching notes in the background.
type ResultsScreen struct {
	deps     Deps
	sess     *asmt.Session
	result   asmt.Result
	report   results.Report
	advice   *coach.Advice
	coachErr string
	coaching bool
	frame    int
	offset   int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

func newResults(sess *asmt.Session, r asmt.Result, deps Deps) *ResultsScreen {
	return &ResultsScreen{
		deps:   deps,
		sess:   sess,
		result: r,
		report: results.Build(sess.Assessment(), r),
	}
}

// Report returns the report being shown.
func (s *ResultsScreen) Report() results.Report { return s.report }

func (s *ResultsScreen) Init() tea.Cmd {
	if s.deps.Coach == nil {
		return nil
	}
	s.coaching = true
	return tea.Batch(s.advise(), thinkTick())
}

func (s *ResultsScreen) advise() tea.Cmd {
	advisor := s.deps.Coach
	timeout := s.deps.coachTimeout()
	in := coach.Input{Assessment: s.sess.Assessment(), Result: s.result, Report: s.report}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		advice, err := advisor.Advise(ctx, in)
		return adviceMsg{Advice: advice, Err: err}
	}
}

func thinkTick() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(t time.Time) tea.Msg {
		return thinkTickMsg(t)
	})
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "r", Description: "Restart"},
		{Key: "Enter", Description: "Done"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case adviceMsg:
		s.coaching = false
		if msg.Err != nil {
			s.deps.logger().Warn("coaching failed", "session", s.sess.ID(), "error", msg.Err)
			s.coachErr = msg.Err.Error()
			return s, nil
		}
		s.advice = msg.Advice
		return s, nil

	case thinkTickMsg:
		if !s.coaching {
			return s, nil
		}
		s.frame++
		return s, thinkTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			s.sess.Restart()
			next := resume(s.sess, s.deps)
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			s.offset++
		case "home", "g":
			s.offset = 0
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	lines := strings.Split(s.render(cw), "\n")

	maxOffset := len(lines) - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.offset > maxOffset {
		s.offset = maxOffset
	}
	end := s.offset + height
	if end > len(lines) || height <= 0 {
		end = len(lines)
	}
	body := strings.Join(lines[s.offset:end], "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func (s *ResultsScreen) render(cw int) string {
	rep := s.report
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(cw).Render(rep.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Render(verdictStyle(rep.Label).Render(fmt.Sprintf("%s · %s", rep.Label, rep.Verdict))))
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Bold(true).Width(cw).Render(rep.Headline))
	b.WriteString("\n")
	b.WriteString(theme.Body.Width(cw).Render(rep.Summary))
	b.WriteString("\n\n")
	b.WriteString(scoreMeter(padRight("Overall", labelWidth(rep)), rep.Overall, rep.Band, cw))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Confidence %d%% · %d of %d answered",
		rep.Confidence, s.result.Answered(), s.result.Total())))
	if rep.Rationale != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Width(cw).Render(rep.Rationale))
	}
	b.WriteString("\n\n")

	b.WriteString(theme.Heading.Render("Scores"))
	b.WriteString("\n")
	for _, c := range rep.Categories {
		b.WriteString(scoreMeter(padRight(c.Title, labelWidth(rep)), c.Percent, c.Band, cw))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	writeSection(&b, "Strengths", rep.Strengths, cw)
	writeSection(&b, "Areas to improve", rep.Improvements, cw)
	writeSection(&b, "Next steps", rep.NextSteps, cw)

	if len(rep.Careers) > 0 {
		b.WriteString(theme.Heading.Render("Career paths"))
		b.WriteString("\n")
		for _, c := range rep.Careers {
			b.WriteString(renderCareer(c, cw))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(theme.Heading.Render("Coaching notes"))
	b.WriteString("\n")
	b.WriteString(s.renderCoaching(cw))
	b.WriteString("\n")
	return b.String()
}

func (s *ResultsScreen) renderCoaching(cw int) string {
	switch {
	case s.coaching:
		frame := thinkFrames[s.frame%len(thinkFrames)]
		return theme.Hint.Render("Asking the coach " + frame)
	case s.coachErr != "":
		return lipgloss.NewStyle().Foreground(theme.Accent).Width(cw).
			Render("Coaching is unavailable right now: " + s.coachErr)
	case s.advice == nil:
		return theme.Hint.Render("No coach configured. Set an LLM provider to get personalised notes.")
	}

	var b strings.Builder
	b.WriteString(theme.Body.Width(cw).Render(s.advice.Summary))
	b.WriteString("\n\n")
	writeSection(&b, "Focus areas", s.advice.FocusAreas, cw)
	writeSection(&b, "Suggested next steps", s.advice.NextSteps, cw)
	if s.advice.Model != "" {
		b.WriteString(theme.Hint.Render("Generated by " + s.advice.Model))
	}
	return b.String()
}

func renderCareer(c results.CareerCard, cw int) string {
	var b strings.Builder
	title := c.Title
	if c.Matched {
		title = theme.Chosen.Render("✓ " + title)
	} else {
		title = lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %s (from %d%%)", title, c.MinScore))
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).PaddingLeft(4).Width(cw).Render(c.Description))
	if len(c.Skills) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Hint.PaddingLeft(4).Render("Skills: " + strings.Join(c.Skills, ", ")))
	}
	return b.String()
}

func writeSection(b *strings.Builder, title string, items []string, cw int) {
	if len(items) == 0 {
		return
	}
	b.WriteString(theme.Heading.Render(title))
	b.WriteString("\n")
	for _, it := range items {
		b.WriteString(theme.Body.Width(cw).Render("  • " + it))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func verdictStyle(l recommend.Label) lipgloss.Style {
	switch l {
	case recommend.Yes:
		return theme.VerdictYes
	case recommend.Maybe:
		return theme.VerdictMaybe
	default:
		return theme.VerdictNo
	}
}

func labelWidth(rep results.Report) int {
	w := len("Overall")
	for _, c := range rep.Categories {
		if n := lipgloss.Width(c.Title); n > w {
			w = n
		}
	}
	return w
}

func padRight(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

// scoreMeter fills the bar in the colour of its band.
func scoreMeter(label string, percent int, band results.Band, width int) string {
	m := components.NewMeter(label, percent, width)
	switch band {
	case results.BandHigh:
		m.Fill = theme.Success
	case results.BandMid:
		m.Fill = theme.Accent
	case results.BandLow:
		m.Fill = theme.Error
	}
	return m.View()
}

package history

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/recommend"
	"github.com/abhisek/careerfit/internal/router"
	"github.com/abhisek/careerfit/internal/screen"
	"github.com/abhisek/careerfit/internal/store"
	"github.com/abhisek/careerfit/internal/ui/layout"
	"github.com/abhisek/careerfit/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Results []store.StoredResult
	Err     error
}

// HistoryScreen lists recently completed assessments.
type HistoryScreen struct {
	repo     store.ResultRepo
	registry *catalog.Registry
	results  []store.StoredResult
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. registry is used for titles and may be nil.
func New(repo store.ResultRepo, registry *catalog.Registry) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		registry: registry,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		list, err := repo.List(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Results: list, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.results = msg.Results
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.results)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.results) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No results yet. Take an assessment!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sr := range s.results {
		r := sr.Result
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s#%-4d %s  %-28s %3d%%  %s",
			prefix, sr.ID, r.CompletedAt().Local().Format("Jan 02, 2006"),
			s.title(r.AssessmentID()), r.Overall(), r.Label())

		style := labelStyle(r.Label())
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.details(sr)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *HistoryScreen) details(sr store.StoredResult) string {
	r := sr.Result
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	var b strings.Builder

	fmt.Fprintf(&b, "    Confidence %d%% · %d of %d answered · %s\n",
		r.Confidence(), r.Answered(), r.Total(), r.AssessmentVersion())

	var a *catalog.Assessment
	if s.registry != nil {
		a, _ = s.registry.ByID(r.AssessmentID())
	}
	if a != nil {
		for _, c := range r.Scores().OrderedCategories(a) {
			fmt.Fprintf(&b, "    %-24s %3d%%\n", c.Title, c.Percent)
		}
		if a.Fingerprint != "" && r.Fingerprint() != "" && a.Fingerprint != r.Fingerprint() {
			b.WriteString("    (the assessment has changed since this result)\n")
		}
	} else {
		cats := r.Categories()
		ids := make([]string, 0, len(cats))
		for id := range cats {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintf(&b, "    %-24s %3d%%\n", id, cats[id])
		}
	}
	if why := r.Recommendation().Rationale; why != "" {
		b.WriteString("    " + why + "\n")
	}
	return dim.Render(strings.TrimRight(b.String(), "\n"))
}

func (s *HistoryScreen) title(id string) string {
	if s.registry != nil {
		if a, err := s.registry.ByID(id); err == nil {
			return a.Title
		}
	}
	return id
}

func labelStyle(l recommend.Label) lipgloss.Style {
	switch l {
	case recommend.Yes:
		return lipgloss.NewStyle().Foreground(theme.Success)
	case recommend.Maybe:
		return lipgloss.NewStyle().Foreground(theme.Accent)
	default:
		return lipgloss.NewStyle().Foreground(theme.Text)
	}
}

package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/router"
	"github.com/abhisek/careerfit/internal/screen"
	"github.com/abhisek/careerfit/internal/screens/assessment"
	"github.com/abhisek/careerfit/internal/screens/history"
	"github.com/abhisek/careerfit/internal/screens/picker"
	"github.com/abhisek/careerfit/internal/screens/placeholder"
	"github.com/abhisek/careerfit/internal/store"
	"github.com/abhisek/careerfit/internal/ui/components"
	"github.com/abhisek/careerfit/internal/ui/layout"
	"github.com/abhisek/careerfit/internal/ui/theme"
)

const banner = `  ___ __ _ _ _ ___ ___ _ _  / _(_) |_
 / __/ _' | '_/ -_) -_) '_||  _| |  _|
 \___\__,_|_| \___\___|_|  |_| |_|\__|`

// Options are what the home screen hands to the screens it opens.
type Options struct {
	Registry *catalog.Registry
	Results  store.ResultRepo
	Deps     assessment.Deps
}

// HomeScreen is the main menu.
type HomeScreen struct {
	menu    components.Menu
	results store.ResultRepo
	reg     *catalog.Registry
	count   int
	last    string
}

var (
	_ screen.Screen  = (*HomeScreen)(nil)
	_ screen.Resumer = (*HomeScreen)(nil)
)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	reg := opts.Registry
	if reg == nil {
		reg = catalog.NewRegistry()
	}

	items := []components.MenuItem{
		{Label: "Take an assessment", Disabled: reg.Len() == 0, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: picker.New(reg, opts.Deps)}
			}
		}},
		{Label: "History", Action: func() tea.Cmd {
			if opts.Results == nil {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: placeholder.New("History", "Results are not being saved.\nRun careerfit with a database to keep history.")}
				}
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(opts.Results, reg)}
			}
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:    components.NewMenu(items),
		results: opts.Results,
		reg:     reg,
		count:   reg.Len(),
		last:    lastResult(opts.Results, reg),
	}
}

// lastResult summarises the newest stored result, or returns "".
func lastResult(repo store.ResultRepo, reg *catalog.Registry) string {
	if repo == nil {
		return ""
	}
	list, err := repo.List(context.Background(), store.QueryOpts{Limit: 1})
	if err != nil || len(list) == 0 {
		return ""
	}
	r := list[0].Result
	title := r.AssessmentID()
	if a, err := reg.ByID(title); err == nil {
		title = a.Title
	}
	return fmt.Sprintf("Last result: %s · %d%% · %s", title, r.Overall(), r.Label())
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes the last-result line after an assessment.
func (h *HomeScreen) Resume() tea.Cmd {
	h.last = lastResult(h.results, h.reg)
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	var sections []string

	if layout.Short(height) {
		sections = append(sections, theme.Title.Width(cw).Render("c a r e e r f i t"))
	} else {
		sections = append(sections, layout.Center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(banner), cw))
	}
	sections = append(sections, theme.Subtitle.Width(cw).Render("Find out if a tech career path is right for you"))

	stats := fmt.Sprintf("%d assessments installed", h.count)
	if h.count == 0 {
		stats = "No assessments are installed"
	}
	if h.last != "" {
		stats += "\n" + h.last
	}
	sections = append(sections, theme.Hint.Width(cw).Align(lipgloss.Center).Render(stats))

	sections = append(sections, theme.Card.Width(cw).Render(strings.TrimRight(h.menu.View(), "\n")))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// Package placeholder shows a notice for a feature that is switched off in
// the current configuration.
package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerfit/internal/screen"
	"github.com/abhisek/careerfit/internal/ui/layout"
	"github.com/abhisek/careerfit/internal/ui/theme"
)

// PlaceholderScreen is a static notice card.
type PlaceholderScreen struct {
	title   string
	message string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

func New(title, message string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, message: message}
}

func (p *PlaceholderScreen) Init() tea.Cmd { return nil }

func (p *PlaceholderScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return p, nil }

func (p *PlaceholderScreen) Title() string { return p.title }

func (p *PlaceholderScreen) View(width, height int) string {
	cw := min(layout.ContentWidth(width), 56)
	card := theme.Card.Width(cw).Render(
		theme.Heading.Render(p.title) + "\n\n" + theme.Body.Width(cw-6).Render(p.message),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

// Package screen defines what the router needs from a TUI screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careerfit/internal/ui/layout"
)

// Screen is one page of the TUI. View draws only the body; the app adds the
// header and footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider supplies the right-hand side of the header, such as
// "Question 3 of 12".
type StatusProvider interface {
	Status() string
}

// Resumer is notified when the screens above it are closed.
type Resumer interface {
	Resume() tea.Cmd
}

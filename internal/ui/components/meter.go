package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerfit/internal/ui/theme"
)

// Meter is a labelled horizontal bar for a whole-number percentage.
type Meter struct {
	Label   string
	Percent int
	Width   int
	Fill    color.Color

	// Bare hides the trailing percentage.
	Bare bool
}

// NewMeter returns a teal meter spanning width cells.
func NewMeter(label string, percent, width int) Meter {
	return Meter{Label: label, Percent: percent, Width: width, Fill: theme.Secondary}
}

// View renders the meter on one line. Values outside 0-100 fill the bar
// proportionally but the percentage is printed as given.
func (m Meter) View() string {
	var b strings.Builder
	if m.Label != "" {
		b.WriteString(theme.Body.Render(m.Label))
		b.WriteString("  ")
	}

	suffix := ""
	if !m.Bare {
		suffix = fmt.Sprintf(" %3d%%", m.Percent)
	}

	cells := max(m.Width-lipgloss.Width(b.String())-len(suffix), 4)
	filled := min(max(cells*m.Percent/100, 0), cells)

	fill := m.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	b.WriteString(lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", cells-filled)))

	if suffix != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix))
	}
	return b.String()
}

package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerfit/internal/ui/theme"
)

// Smallest terminal the app will draw into.
const (
	MinWidth  = 64
	MinHeight = 20
)

// shortBody is the body height below which screens drop decoration.
const shortBody = 24

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// TooSmall reports whether the terminal is below MinWidth x MinHeight.
func TooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// Short reports whether a body of the given height should use the compact
// rendering.
func Short(bodyHeight int) bool {
	return bodyHeight < shortBody
}

// TooSmallMessage fills the terminal with a resize request.
func TooSmallMessage(width, height int) string {
	msg := fmt.Sprintf("careerfit needs at least %dx%d\n(now %dx%d)", MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

// Header renders the top bar: brand on the left, title centred and status
// on the right. status may be empty.
func Header(title, status string, width int) string {
	inner := max(width-4, 0)
	brand := theme.Selected.Render("careerfit")
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	room := max(inner-lipgloss.Width(brand)-lipgloss.Width(right), 0)
	mid := lipgloss.PlaceHorizontal(room, lipgloss.Center, theme.Body.Render(title))

	return bar.Width(width).Render(" " + brand + mid + right + " ")
}

// Footer renders the key hints bar.
func Footer(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar.Width(width).Render("  " + strings.Join(parts, "   "))
}

// Compose stacks header, body and footer into a width x height frame. body
// is called with the rows left between the bars.
func Compose(width, height int, header, footer string, body func(width, height int) string) string {
	rows := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := lipgloss.NewStyle().Width(width).Height(rows).MaxHeight(rows).Render(body(width, rows))
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// Center renders s as a block centred in width.
func Center(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s)
}

// ContentWidth is the readable column width inside a screen of width cells.
func ContentWidth(width int) int {
	return min(max(width-4, 20), 76)
}

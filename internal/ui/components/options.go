package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerfit/internal/ui/theme"
)

// OptionList is a vertical single-select list. Chosen marks the option
// already recorded as the answer, or -1.
type OptionList struct {
	Options  []string
	Selected int
	Chosen   int
}

// NewOptionList creates a list with the cursor on chosen, or on the first
// option when nothing is chosen yet.
func NewOptionList(options []string, chosen int) OptionList {
	sel := chosen
	if sel < 0 || sel >= len(options) {
		sel = 0
		chosen = -1
	}
	return OptionList{Options: options, Selected: sel, Chosen: chosen}
}

// Update moves the cursor. It reports the picked index when Enter or a
// number key selects an option, or -1.
func (o OptionList) Update(msg tea.Msg) (OptionList, int) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, -1
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if o.Selected > 0 {
			o.Selected--
		}
	case "down", "j":
		if o.Selected < len(o.Options)-1 {
			o.Selected++
		}
	case "enter", "space":
		if len(o.Options) > 0 {
			o.Chosen = o.Selected
			return o, o.Chosen
		}
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(o.Options) {
			o.Selected = n - 1
			o.Chosen = o.Selected
			return o, o.Chosen
		}
	}
	return o, -1
}

// View renders the list.
func (o OptionList) View() string {
	var s string
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Selected {
			prefix = "▸ "
		}
		mark := " "
		if i == o.Chosen {
			mark = "✓"
		}
		line := fmt.Sprintf("%s%d) %s %s", prefix, i+1, opt, mark)

		switch {
		case i == o.Selected:
			s += theme.Selected.Render(line) + "\n"
		case i == o.Chosen:
			s += theme.Chosen.Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}

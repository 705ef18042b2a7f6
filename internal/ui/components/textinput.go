package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput wraps bubbles/textinput as a single-line filter box.
type TextInput struct {
	Model textinput.Model
}

// NewTextInput creates a focused input limited to maxWidth characters.
func NewTextInput(placeholder string, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}
	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	return t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Matches reports whether every word typed so far occurs in one of fields,
// ignoring case.
func (t TextInput) Matches(fields ...string) bool {
	query := strings.Fields(strings.ToLower(t.Value()))
	hay := strings.ToLower(strings.Join(fields, " "))
	for _, w := range query {
		if !strings.Contains(hay, w) {
			return false
		}
	}
	return true
}

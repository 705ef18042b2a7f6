package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestOptionListNavigation(t *testing.T) {
	o := NewOptionList([]string{"Yes", "No"}, -1)
	if o.Selected != 0 || o.Chosen != -1 {
		t.Fatalf("expected cursor 0 and nothing chosen, got %d/%d", o.Selected, o.Chosen)
	}

	o, picked := o.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if picked != -1 || o.Selected != 1 {
		t.Errorf("down: selected=%d picked=%d", o.Selected, picked)
	}
	o, _ = o.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if o.Selected != 1 {
		t.Errorf("cursor should stop at the last option, got %d", o.Selected)
	}

	o, picked = o.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if picked != 1 || o.Chosen != 1 {
		t.Errorf("enter: chosen=%d picked=%d", o.Chosen, picked)
	}
}

func TestOptionListNumberKeys(t *testing.T) {
	o := NewOptionList([]string{"a", "b", "c"}, 2)
	if o.Selected != 2 {
		t.Errorf("cursor should start on the chosen option, got %d", o.Selected)
	}

	o, picked := o.Update(key('1'))
	if picked != 0 || o.Selected != 0 {
		t.Errorf("'1' should pick the first option, got picked=%d selected=%d", picked, o.Selected)
	}

	_, picked = o.Update(key('9'))
	if picked != -1 {
		t.Errorf("out of range number should be ignored, got %d", picked)
	}

	if !strings.Contains(o.View(), "1) a") {
		t.Errorf("view missing numbered option:\n%s", o.View())
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	var fired string
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "take", Action: func() tea.Cmd { fired = "take"; return nil }},
		{Label: "quit", Action: func() tea.Cmd { fired = "quit"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("expected first enabled item selected, got %d", m.Selected)
	}

	// Up wraps past the disabled item to the bottom.
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 2 {
		t.Errorf("up should wrap to the last item, got %d", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 1 {
		t.Errorf("down should wrap to the first enabled item, got %d", m.Selected)
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if fired != "take" {
		t.Errorf("expected take action, got %q", fired)
	}
}

func TestMenuDigitShortcut(t *testing.T) {
	var fired string
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "take", Action: func() tea.Cmd { fired = "take"; return nil }},
		{Label: "quit", Action: func() tea.Cmd { fired = "quit"; return nil }},
	})

	m, _ = m.Update(key('1'))
	if fired != "" || m.Selected != 1 {
		t.Errorf("disabled item should not fire, got %q selected=%d", fired, m.Selected)
	}
	m, _ = m.Update(key('3'))
	if fired != "quit" || m.Selected != 2 {
		t.Errorf("'3' should run quit, got %q selected=%d", fired, m.Selected)
	}
	if !strings.Contains(m.View(), "▸ quit") {
		t.Errorf("cursor should follow the shortcut:\n%s", m.View())
	}
}

func TestMeter(t *testing.T) {
	if v := NewMeter("Fit", 150, 30).View(); !strings.Contains(v, "150%") {
		t.Errorf("percentage should be printed as given:\n%s", v)
	}
	bare := NewMeter("", 50, 10)
	bare.Bare = true
	if strings.Contains(bare.View(), "%") {
		t.Error("bare meter should not print a percentage")
	}
	if w := lipgloss.Width(NewMeter("Skill", 40, 40).View()); w != 40 {
		t.Errorf("meter width = %d, want 40", w)
	}
}

func TestTextInputMatches(t *testing.T) {
	ti := NewTextInput("filter", 40)
	if !ti.Matches("anything") {
		t.Error("empty filter should match everything")
	}

	ti.Model.SetValue("cloud AWS")
	if !ti.Matches("aws", "AWS Cloud Engineer") {
		t.Error("expected case-insensitive word match")
	}
	if ti.Matches("devops", "DevOps Engineer") {
		t.Error("expected no match when a word is missing")
	}
}

package picker

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/router"
	"github.com/abhisek/careerfit/internal/screen"
	"github.com/abhisek/careerfit/internal/screens/assessment"
	"github.com/abhisek/careerfit/internal/ui/components"
	"github.com/abhisek/careerfit/internal/ui/layout"
	"github.com/abhisek/careerfit/internal/ui/theme"
)

// PickerScreen lists the installed assessments with a type-to-filter box.
type PickerScreen struct {
	all      []*catalog.Assessment
	visible  []*catalog.Assessment
	filter   components.TextInput
	selected int
	deps     assessment.Deps
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates a picker over every assessment in reg.
func New(reg *catalog.Registry, deps assessment.Deps) *PickerScreen {
	p := &PickerScreen{
		all:    reg.All(),
		filter: components.NewTextInput("type to filter", 40),
		deps:   deps,
	}
	p.refilter()
	return p
}

func (p *PickerScreen) Init() tea.Cmd {
	return p.filter.Init()
}

func (p *PickerScreen) Title() string {
	return "Choose an assessment"
}

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Type", Description: "Filter"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up":
			if p.selected > 0 {
				p.selected--
			}
			return p, nil
		case "down":
			if p.selected < len(p.visible)-1 {
				p.selected++
			}
			return p, nil
		case "enter":
			if len(p.visible) == 0 {
				return p, nil
			}
			next := assessment.New(p.visible[p.selected], p.deps)
			return p, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}

	before := p.filter.Value()
	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	if p.filter.Value() != before {
		p.refilter()
	}
	return p, cmd
}

func (p *PickerScreen) refilter() {
	p.visible = p.visible[:0]
	for _, a := range p.all {
		if p.filter.Matches(a.ID, a.Title, a.Summary) {
			p.visible = append(p.visible, a)
		}
	}
	if p.selected >= len(p.visible) {
		p.selected = len(p.visible) - 1
	}
	if p.selected < 0 {
		p.selected = 0
	}
}

// Selected returns the highlighted assessment, or nil.
func (p *PickerScreen) Selected() *catalog.Assessment {
	if len(p.visible) == 0 {
		return nil
	}
	return p.visible[p.selected]
}

func (p *PickerScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("Filter: " + p.filter.View())
	b.WriteString("\n\n")

	if len(p.all) == 0 {
		b.WriteString(theme.Hint.Render("No assessments are installed."))
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
	}
	if len(p.visible) == 0 {
		b.WriteString(theme.Hint.Render("Nothing matches the filter."))
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
	}

	for i, a := range p.visible {
		meta := fmt.Sprintf("%d questions", a.QuestionCount())
		if a.Duration != "" {
			meta += " · " + a.Duration
		}
		if i == p.selected {
			b.WriteString(theme.Selected.Render("▸ " + a.Title))
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + meta))
			b.WriteString("\n")
			if a.Summary != "" {
				b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).PaddingLeft(4).Width(cw).Render(a.Summary))
				b.WriteString("\n")
			}
		} else {
			b.WriteString(theme.Unselected.Render("  " + a.Title))
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + meta))
			b.WriteString("\n")
		}
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

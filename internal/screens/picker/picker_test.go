package picker

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/router"
	"github.com/abhisek/careerfit/internal/screens/assessment"
)

func testRegistry() *catalog.Registry {
	return catalog.NewRegistry(
		&catalog.Assessment{ID: "aws", Title: "AWS Cloud Engineer", Summary: "Cloud infrastructure.", Version: "v1.0.0"},
		&catalog.Assessment{ID: "devops", Title: "DevOps Engineer", Summary: "Pipelines and operations.", Version: "v1.0.0"},
		&catalog.Assessment{ID: "flutter", Title: "Flutter Developer", Summary: "Mobile apps.", Version: "v1.0.0"},
	)
}

func TestPickerListsAssessments(t *testing.T) {
	p := New(testRegistry(), assessment.Deps{})
	view := p.View(100, 30)
	for _, want := range []string{"AWS Cloud Engineer", "DevOps Engineer", "Flutter Developer"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if p.Selected() == nil || p.Selected().ID != "aws" {
		t.Errorf("expected first assessment selected, got %+v", p.Selected())
	}
}

func TestPickerNavigateAndStart(t *testing.T) {
	p := New(testRegistry(), assessment.Deps{})
	p.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	p.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	p.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	if p.Selected().ID != "flutter" {
		t.Errorf("cursor should stop at the last item, got %q", p.Selected().ID)
	}

	_, cmd := p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected push command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	as, ok := msg.Screen.(*assessment.AssessmentScreen)
	if !ok {
		t.Fatalf("expected *assessment.AssessmentScreen, got %T", msg.Screen)
	}
	if as.Session().Assessment().ID != "flutter" {
		t.Errorf("started %q, want flutter", as.Session().Assessment().ID)
	}
}

func TestPickerFilter(t *testing.T) {
	p := New(testRegistry(), assessment.Deps{})
	p.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	p.filter.Model.SetValue("engineer")
	p.refilter()
	if len(p.visible) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(p.visible))
	}

	p.filter.Model.SetValue("pipelines")
	p.refilter()
	if len(p.visible) != 1 || p.Selected().ID != "devops" {
		t.Errorf("expected devops via summary match, got %+v", p.visible)
	}

	p.filter.Model.SetValue("cobol")
	p.refilter()
	if p.Selected() != nil {
		t.Error("expected no selection when nothing matches")
	}
	if _, cmd := p.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("enter with no matches should do nothing")
	}
	if !strings.Contains(p.View(100, 30), "Nothing matches") {
		t.Error("expected empty-filter message")
	}
}

func TestPickerEmptyRegistry(t *testing.T) {
	p := New(catalog.NewRegistry(), assessment.Deps{})
	if !strings.Contains(p.View(100, 30), "No assessments are installed.") {
		t.Error("expected empty registry message")
	}
}

package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careerfit/internal/assessment"
	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/response"
	"github.com/abhisek/careerfit/internal/router"
	"github.com/abhisek/careerfit/internal/screens/history"
	"github.com/abhisek/careerfit/internal/screens/picker"
	"github.com/abhisek/careerfit/internal/screens/placeholder"
	"github.com/abhisek/careerfit/internal/store"
)

type fakeResults struct {
	list []store.StoredResult
}

func (f *fakeResults) Save(context.Context, assessment.Result) (int64, error) { return 0, nil }
func (f *fakeResults) Get(context.Context, int64) (*store.StoredResult, error) {
	return nil, store.ErrNotFound
}
func (f *fakeResults) List(_ context.Context, opts store.QueryOpts) ([]store.StoredResult, error) {
	if opts.Limit > 0 && len(f.list) > opts.Limit {
		return f.list[:opts.Limit], nil
	}
	return f.list, nil
}
func (f *fakeResults) Latest(context.Context, string) (*store.StoredResult, error) { return nil, nil }

func testAssessment() *catalog.Assessment {
	return &catalog.Assessment{
		ID:         "mini",
		Title:      "Mini Readiness",
		Version:    "v1.0.0",
		Categories: []catalog.Category{{ID: "skill", Title: "Skill"}},
		Sections: []catalog.Section{
			{ID: "tech", Title: "Technical", Questions: []catalog.Question{
				{ID: "q1", SectionID: "tech", Category: "skill", Prompt: "Which language has goroutines?",
					Kind: catalog.KindSingleChoice, Options: []catalog.Option{{Label: "Go"}, {Label: "Perl"}}, Correct: "Go"},
			}},
		},
	}
}

// activate moves the cursor to item i and presses Enter.
func activate(t *testing.T, h *HomeScreen, i int) tea.Msg {
	t.Helper()
	for h.menu.Selected < i {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected a command for item %d", i)
	}
	return cmd()
}

func TestHomeOpensPicker(t *testing.T) {
	h := New(Options{Registry: catalog.NewRegistry(testAssessment())})

	msg, ok := activate(t, h, 0).(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*picker.PickerScreen); !ok {
		t.Errorf("expected picker screen, got %T", msg.Screen)
	}
}

func TestHomeHistory(t *testing.T) {
	a := testAssessment()
	st, err := response.ParseAll(a, map[string]any{"q1": "Go"})
	if err != nil {
		t.Fatal(err)
	}
	repo := &fakeResults{list: []store.StoredResult{{ID: 1, Result: assessment.Evaluate(a, st)}}}
	h := New(Options{Registry: catalog.NewRegistry(a), Results: repo})

	if !strings.Contains(h.View(100, 30), "Last result: Mini Readiness · 100% · Yes") {
		t.Errorf("expected last result line:\n%s", h.View(100, 30))
	}

	msg := activate(t, h, 1).(router.PushScreenMsg)
	if _, ok := msg.Screen.(*history.HistoryScreen); !ok {
		t.Errorf("expected history screen, got %T", msg.Screen)
	}
}

func TestHomeHistoryWithoutStore(t *testing.T) {
	h := New(Options{Registry: catalog.NewRegistry(testAssessment())})
	msg := activate(t, h, 1).(router.PushScreenMsg)
	if _, ok := msg.Screen.(*placeholder.PlaceholderScreen); !ok {
		t.Errorf("expected placeholder screen, got %T", msg.Screen)
	}
}

func TestHomeEmptyRegistryDisablesTakeAssessment(t *testing.T) {
	h := New(Options{})
	if h.menu.Selected != 1 {
		t.Errorf("expected History selected when no assessments exist, got %d", h.menu.Selected)
	}
	if !strings.Contains(h.View(100, 30), "No assessments are installed") {
		t.Error("expected empty registry message")
	}
}

func TestHomeQuit(t *testing.T) {
	h := New(Options{Registry: catalog.NewRegistry(testAssessment())})
	if _, ok := activate(t, h, 2).(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestHomeResumeRefreshesLastResult(t *testing.T) {
	a := testAssessment()
	repo := &fakeResults{}
	h := New(Options{Registry: catalog.NewRegistry(a), Results: repo})
	if strings.Contains(h.View(100, 30), "Last result") {
		t.Fatal("no results stored yet")
	}

	st, err := response.ParseAll(a, map[string]any{"q1": "Perl"})
	if err != nil {
		t.Fatal(err)
	}
	repo.list = []store.StoredResult{{ID: 1, Result: assessment.Evaluate(a, st)}}
	h.Resume()

	if !strings.Contains(h.View(100, 30), "Last result: Mini Readiness · 0% · No") {
		t.Errorf("expected refreshed last result:\n%s", h.View(100, 30))
	}
}

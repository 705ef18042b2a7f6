package coach

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/careerfit/internal/assessment"
	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/llm"
	"github.com/abhisek/careerfit/internal/response"
	"github.com/abhisek/careerfit/internal/results"
)

func sampleInput(t *testing.T) Input {
	t.Helper()
	a := &catalog.Assessment{
		ID:      "cloud",
		Title:   "Cloud Readiness",
		Summary: "Is cloud engineering right for you?",
		Version: "v1.0.0",
		Categories: []catalog.Category{
			{ID: "interest", Title: "Interest"},
			{ID: "skill", Title: "Technical Skill"},
		},
		Sections: []catalog.Section{{
			ID:    "main",
			Title: "Main",
			Questions: []catalog.Question{
				{ID: "q1", Category: "interest", Prompt: "I enjoy infrastructure work.", Kind: catalog.KindScale, Options: catalog.LikertOptions()},
				{ID: "q2", Category: "skill", Prompt: "Which service stores objects?", Kind: catalog.KindSingleChoice,
					Options: []catalog.Option{{Label: "S3"}, {Label: "EC2"}}, Correct: "S3"},
			},
		}},
		Careers: []catalog.Career{{Title: "Cloud Engineer", MinScore: 70}},
	}
	answers := response.NewStore(a)
	if err := answers.Record("q1", response.Scale(5)); err != nil {
		t.Fatal(err)
	}
	if err := answers.Record("q2", response.Choice("EC2")); err != nil {
		t.Fatal(err)
	}
	r := assessment.Evaluate(a, answers)
	return Input{Assessment: a, Result: r, Report: results.Build(a, r)}
}

const validAdvice = `{
	"summary": "Strong motivation, technical basics still missing.",
	"strengths": ["High interest in infrastructure"],
	"focus_areas": ["Core AWS services"],
	"next_steps": ["Complete the Cloud Practitioner course", "Deploy a static site to S3"]
}`

func TestAdvise(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(validAdvice)})
	svc := NewService(mock, DefaultConfig())

	advice, err := svc.Advise(t.Context(), sampleInput(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if advice.Summary == "" || len(advice.NextSteps) != 2 {
		t.Errorf("advice = %+v", advice)
	}
	if advice.Model != "mock" {
		t.Errorf("model = %q, want mock", advice.Model)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 LLM call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "career-coaching" {
		t.Error("expected schema name 'career-coaching'")
	}
	msg := req.Messages[0].Content
	for _, want := range []string{"Cloud Readiness", "Overall score: 50%", "Interest: 100%", "Technical Skill: 0%", "Cloud Engineer (needs 70%, not yet)"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestAdvise_SchemaViolation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"summary":"only this"}`)})
	_, err := NewService(mock, DefaultConfig()).Advise(t.Context(), sampleInput(t))

	var inv *llm.ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestAdvise_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := NewService(mock, DefaultConfig()).Advise(t.Context(), sampleInput(t))
	if err == nil || !strings.Contains(err.Error(), "coaching for cloud") {
		t.Fatalf("error = %v", err)
	}
}

func TestAdvise_EmptyResult(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := NewService(mock, DefaultConfig()).Advise(t.Context(), Input{})
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("error = %v, want ErrIncomplete", err)
	}
	if mock.CallCount() != 0 {
		t.Error("provider should not be called for an empty result")
	}
}

// Package coach turns a completed assessment into AI-written coaching
// notes. It is optional: callers fall back to the canned report text when
// no provider is configured or a request fails.
package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/careerfit/internal/assessment"
	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/llm"
	"github.com/abhisek/careerfit/internal/results"
)

// ErrIncomplete is returned for an empty result.
var ErrIncomplete = errors.New("coach: result is empty")

// Input is what the coach sees.
type Input struct {
	Assessment *catalog.Assessment
	Result     assessment.Result
	Report     results.Report
}

// Advice is the generated coaching text.
type Advice struct {
	Summary     string    `json:"summary"`
	Strengths   []string  `json:"strengths"`
	FocusAreas  []string  `json:"focus_areas"`
	NextSteps   []string  `json:"next_steps"`
	Model       string    `json:"model"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Service generates coaching notes.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a coaching service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type adviceOutput struct {
	Summary    string   `json:"summary"`
	Strengths  []string `json:"strengths"`
	FocusAreas []string `json:"focus_areas"`
	NextSteps  []string `json:"next_steps"`
}

// Advise requests coaching notes for in.
func (s *Service) Advise(ctx context.Context, in Input) (*Advice, error) {
	if in.Result.IsZero() {
		return nil, ErrIncomplete
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeCoach)

	req := llm.Prompt(systemPrompt, buildUserMessage(in), AdviceSchema, s.cfg.MaxTokens)
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("coaching for %s: %w", in.Report.AssessmentID, err)
	}

	var out adviceOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse coaching response: %w", err)
	}

	return &Advice{
		Summary:     out.Summary,
		Strengths:   out.Strengths,
		FocusAreas:  out.FocusAreas,
		NextSteps:   out.NextSteps,
		Model:       resp.Model,
		GeneratedAt: time.Now(),
	}, nil
}

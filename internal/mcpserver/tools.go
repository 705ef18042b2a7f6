package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/abhisek/careerfit/internal/assessment"
	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/response"
	"github.com/abhisek/careerfit/internal/results"
	"github.com/abhisek/careerfit/internal/tracking"
)

// ListTool handles list_assessments.
type ListTool struct {
	reg *catalog.Registry
}

// NewListTool creates a ListTool.
func NewListTool(reg *catalog.Registry) *ListTool {
	return &ListTool{reg: reg}
}

// Definition returns the MCP tool definition for list_assessments.
func (t *ListTool) Definition() mcp.Tool {
	return mcp.NewTool("list_assessments",
		mcp.WithDescription("List the available career readiness assessments with their IDs and question counts."),
	)
}

// Handle processes the list_assessments tool call.
func (t *ListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	all := t.reg.All()
	if len(all) == 0 {
		return mcp.NewToolResultText("No assessments are installed."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d assessments:\n\n", len(all))
	for _, a := range all {
		fmt.Fprintf(&b, "- %s: %s (%s, %d questions)", a.ID, a.Title, a.Version, a.QuestionCount())
		if a.Duration != "" {
			fmt.Fprintf(&b, ", about %s", a.Duration)
		}
		b.WriteString("\n")
		if a.Summary != "" {
			fmt.Fprintf(&b, "  %s\n", a.Summary)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

// DescribeTool handles describe_assessment.
type DescribeTool struct {
	reg *catalog.Registry
}

// NewDescribeTool creates a DescribeTool.
func NewDescribeTool(reg *catalog.Registry) *DescribeTool {
	return &DescribeTool{reg: reg}
}

// Definition returns the MCP tool definition for describe_assessment.
func (t *DescribeTool) Definition() mcp.Tool {
	return mcp.NewTool("describe_assessment",
		mcp.WithDescription("Show every section and question of an assessment with the accepted answer options."),
		mcp.WithString("assessment_id",
			mcp.Required(),
			mcp.Description("Assessment ID from list_assessments, e.g. aws or devops"),
		),
	)
}

// Handle processes the describe_assessment tool call.
func (t *DescribeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("assessment_id", "")
	if id == "" {
		return mcp.NewToolResultError("'assessment_id' is required"), nil
	}
	a, err := t.reg.ByID(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s (%s)\n", a.Title, a.Version)
	if a.Summary != "" {
		fmt.Fprintf(&b, "%s\n", a.Summary)
	}
	for _, s := range a.Sections {
		fmt.Fprintf(&b, "\n## %s\n", s.Title)
		for _, q := range s.Questions {
			fmt.Fprintf(&b, "- [%s] (%s, %s) %s\n", q.ID, q.Kind, a.CategoryTitle(q.Category), q.Prompt)
			labels := make([]string, 0, len(q.Options))
			for _, o := range q.Options {
				if q.Kind == catalog.KindScale {
					labels = append(labels, fmt.Sprintf("%g=%s", o.Value, o.Label))
				} else {
					labels = append(labels, o.Label)
				}
			}
			if len(labels) > 0 {
				fmt.Fprintf(&b, "  options: %s\n", strings.Join(labels, " | "))
			}
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

// ScoreTool handles score_assessment.
type ScoreTool struct {
	reg     *catalog.Registry
	tracker *tracking.Tracker
}

// NewScoreTool creates a ScoreTool.
func NewScoreTool(reg *catalog.Registry, tracker *tracking.Tracker) *ScoreTool {
	return &ScoreTool{reg: reg, tracker: tracker}
}

// Definition returns the MCP tool definition for score_assessment.
func (t *ScoreTool) Definition() mcp.Tool {
	return mcp.NewTool("score_assessment",
		mcp.WithDescription(
			"Score answers for an assessment and return category percentages, the overall score, "+
				"the Yes/Maybe/No recommendation and the full report.",
		),
		mcp.WithString("assessment_id",
			mcp.Required(),
			mcp.Description("Assessment ID from list_assessments"),
		),
		mcp.WithObject("answers",
			mcp.Required(),
			mcp.Description("Map of question ID to answer value"),
		),
		mcp.WithBoolean("save",
			mcp.Description("Persist the result to history (default: false)"),
		),
	)
}

// Handle processes the score_assessment tool call.
func (t *ScoreTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("assessment_id", "")
	if id == "" {
		return mcp.NewToolResultError("'assessment_id' is required"), nil
	}
	a, err := t.reg.ByID(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	raw, err := answersArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	answers, err := response.ParseAll(a, raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if answers.Len() == 0 {
		return mcp.NewToolResultError("no answers given; answer at least one question from describe_assessment"), nil
	}

	res := assessment.Evaluate(a, answers)
	report := results.Build(a, res)

	var b strings.Builder
	if err := results.WriteText(&b, report); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render report: %v", err)), nil
	}
	if boolArg(req, "save", false) {
		if saved := t.tracker.SaveResult(ctx, res); saved > 0 {
			fmt.Fprintf(&b, "\nSaved as result #%d.\n", saved)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

// answersArg accepts the answers object directly or as a JSON string,
// which some clients send for object parameters.
func answersArg(req mcp.CallToolRequest) (map[string]any, error) {
	switch v := req.GetArguments()["answers"].(type) {
	case map[string]any:
		return v, nil
	case string:
		var m map[string]any
		if err := json.Unmarshal([]byte(v), &m); err != nil {
			return nil, fmt.Errorf("'answers' is not a JSON object: %v", err)
		}
		return m, nil
	case nil:
		return nil, fmt.Errorf("'answers' is required")
	default:
		return nil, fmt.Errorf("'answers' must be an object, got %T", v)
	}
}

func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

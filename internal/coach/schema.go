package coach

import "github.com/abhisek/careerfit/internal/llm"

func stringList(desc string, minItems, maxItems int) map[string]any {
	return map[string]any{
		"type":        "array",
		"description": desc,
		"items":       map[string]any{"type": "string"},
		"minItems":    minItems,
		"maxItems":    maxItems,
	}
}

// AdviceSchema defines the JSON schema for coaching notes.
var AdviceSchema = &llm.Schema{
	Name:        "career-coaching",
	Description: "Personalised coaching notes for a completed career readiness assessment",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "Two or three sentences on how ready the respondent is for this track",
			},
			"strengths":   stringList("Concrete strengths shown by the category scores", 1, 4),
			"focus_areas": stringList("The weakest areas to work on, most important first", 1, 4),
			"next_steps":  stringList("Actionable steps for the next four weeks", 2, 5),
		},
		"required":             []any{"summary", "strengths", "focus_areas", "next_steps"},
		"additionalProperties": false,
	},
}

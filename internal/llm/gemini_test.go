package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	if got := resolveModel("gemini-flash", geminiModels); got != "gemini-2.0-flash" {
		t.Errorf("resolveModel(gemini-flash) = %q", got)
	}
	if got := resolveModel("gemini-2.5-pro", geminiModels); got != "gemini-2.5-pro" {
		t.Errorf("resolveModel pass-through = %q", got)
	}
}

func TestGeminiSchema(t *testing.T) {
	schema := geminiSchema(coachLikeSchema())

	if schema.Type != genai.TypeObject {
		t.Fatalf("type = %s, want OBJECT", schema.Type)
	}
	if len(schema.Properties) != 3 {
		t.Fatalf("properties = %d, want 3", len(schema.Properties))
	}
	if schema.Properties["summary"].Type != genai.TypeString {
		t.Errorf("summary type = %s, want STRING", schema.Properties["summary"].Type)
	}
	steps := schema.Properties["next_steps"]
	if steps.Type != genai.TypeArray || steps.Items.Type != genai.TypeString {
		t.Errorf("next_steps = %s of %s, want ARRAY of STRING", steps.Type, steps.Items.Type)
	}
	if len(schema.Properties["fit"].Enum) != 3 {
		t.Errorf("fit enum = %v, want 3 values", schema.Properties["fit"].Enum)
	}
	if len(schema.Required) != 2 {
		t.Errorf("required = %v, want 2 entries", schema.Required)
	}
}

func coachLikeSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary":    map[string]any{"type": "string"},
			"fit":        map[string]any{"type": "string", "enum": []any{"Yes", "Maybe", "No"}},
			"next_steps": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required": []string{"summary", "next_steps"},
	}
}

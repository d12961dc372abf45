package analysis

import "github.com/mr-romero/desmos-code-hub/internal/llm"

// AnalysisSchema defines the JSON schema for problem analysis responses.
// Requested via the provider's structured output mode; models that ignore
// it fall through to the free-text normalizer.
var AnalysisSchema = &llm.Schema{
	Name:        "problem-analysis",
	Description: "Correct answer, explanation, and per-distractor misconceptions for one math problem",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correctAnswer": map[string]any{
				"type":        "string",
				"description": "The correct option letter for multiple choice, or the answer equation for open-ended problems",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Step-by-step solution walkthrough in plain language",
			},
			"misconceptions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"minItems":    MisconceptionCount,
				"maxItems":    MisconceptionCount,
				"description": "Exactly 3 misconception explanations, one per incorrect option",
			},
		},
		"required":             []any{"correctAnswer", "explanation", "misconceptions"},
		"additionalProperties": false,
	},
}

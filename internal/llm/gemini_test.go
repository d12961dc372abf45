package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correctAnswer": map[string]any{"type": "string"},
			"explanation":   map[string]any{"type": "string"},
			"misconceptions": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"questionType": map[string]any{
				"type": "string",
				"enum": []any{"multiple_choice", "equation"},
			},
		},
		"required": []any{"explanation", "misconceptions"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["correctAnswer"].Type != "STRING" {
		t.Fatalf("expected STRING for correctAnswer, got %s", schema.Properties["correctAnswer"].Type)
	}
	if schema.Properties["misconceptions"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for misconceptions, got %s", schema.Properties["misconceptions"].Type)
	}
	if schema.Properties["misconceptions"].Items.Type != "STRING" {
		t.Fatalf("expected STRING items, got %s", schema.Properties["misconceptions"].Items.Type)
	}
	if len(schema.Properties["questionType"].Enum) != 2 {
		t.Fatalf("expected 2 enum values, got %d", len(schema.Properties["questionType"].Enum))
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestBuildGeminiContents_ImagePrecedesText(t *testing.T) {
	msgs := []Message{{
		Role:    RoleUser,
		Content: "Analyze the math problem shown in this image.",
		Image:   &ImageAttachment{Data: []byte("png-bytes"), MIMEType: "image/png"},
	}}

	contents := buildGeminiContents(msgs)
	if len(contents) != 1 {
		t.Fatalf("got %d contents, want 1", len(contents))
	}

	parts := contents[0].Parts
	if len(parts) != 2 {
		t.Fatalf("got %d parts, want image + text", len(parts))
	}
	if parts[0].InlineData == nil {
		t.Fatal("first part should be the inline image")
	}
	if parts[0].InlineData.MIMEType != "image/png" {
		t.Errorf("mime = %q", parts[0].InlineData.MIMEType)
	}
	if parts[1].Text == "" {
		t.Error("second part should carry the text")
	}
}

func TestBuildGeminiContents_RoleMapping(t *testing.T) {
	contents := buildGeminiContents([]Message{
		{Role: RoleUser, Content: "question"},
		{Role: RoleAssistant, Content: "answer"},
	})

	if contents[0].Role != "user" {
		t.Errorf("user role = %q", contents[0].Role)
	}
	if contents[1].Role != "model" {
		t.Errorf("assistant role = %q", contents[1].Role)
	}
}

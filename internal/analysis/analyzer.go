package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mr-romero/desmos-code-hub/internal/llm"
)

// ErrNoProblem is returned when neither an image nor a problem description
// was supplied. Checked before any network call.
var ErrNoProblem = errors.New("provide a problem image or a problem description")

// Analyzer produces a ProblemAnalysis from one LLM call.
type Analyzer struct {
	provider llm.Provider
	config   Config
}

// New creates an Analyzer with the given provider and config.
func New(provider llm.Provider, cfg Config) *Analyzer {
	return &Analyzer{provider: provider, config: cfg}
}

// Analyze issues exactly one generation request and normalizes whatever
// comes back. Endpoint failures are returned as errors with the provider's
// message; malformed output is not a failure — the normalizer always
// produces a best-effort record.
func (a *Analyzer) Analyze(ctx context.Context, input AnalyzeInput) (*ProblemAnalysis, error) {
	if input.Image == nil && strings.TrimSpace(input.ProblemText) == "" {
		return nil, ErrNoProblem
	}

	ctx = llm.WithPurpose(ctx, "analyze-"+string(questionTypeOrDefault(input.QuestionType)))

	req := buildRequest(input, a.config)

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		// A schema violation still carries the model's output; that is
		// exactly what the fallback tiers exist for.
		var invalid *llm.ErrInvalidResponse
		if errors.As(err, &invalid) && len(invalid.Content) > 0 {
			rec := Normalize(string(invalid.Content))
			return &rec, nil
		}
		return nil, fmt.Errorf("problem analysis failed: %w", err)
	}

	rec := Normalize(resp.Text())
	return &rec, nil
}

// buildRequest assembles the wire request: instructional system prompt
// keyed by question type, one user message, optional image part, and the
// response schema when structured output is enabled.
func buildRequest(input AnalyzeInput, cfg Config) llm.Request {
	req := llm.Request{
		System: systemPrompt(input),
		Messages: []llm.Message{
			{
				Role:    llm.RoleUser,
				Content: buildUserMessage(input),
				Image:   input.Image,
			},
		},
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}

	if cfg.StructuredOutput {
		req.Schema = AnalysisSchema
	}

	return req
}

func questionTypeOrDefault(t QuestionType) QuestionType {
	if t.Valid() {
		return t
	}
	return TypeMultipleChoice
}

// Package authoring models one question-authoring session as an immutable
// FormState value. Every edit is a pure transition returning a new value;
// sessions are independent, so nothing here is shared or locked.
package authoring

import (
	"strings"

	"github.com/mr-romero/desmos-code-hub/internal/analysis"
	"github.com/mr-romero/desmos-code-hub/internal/snippet"
)

// FormState is the full authoring form for one question. The zero value is
// a blank form; use WithDefaults for the usual A-D multiple-choice setup.
type FormState struct {
	QuestionNumber int                   `json:"question_number"`
	QuestionType   analysis.QuestionType `json:"question_type"`
	TEKS           string                `json:"teks"`

	// Prompt is the teacher's description of the problem, used when no
	// screenshot is attached.
	Prompt string `json:"prompt"`

	Options        []string  `json:"options"`
	CorrectAnswer  string    `json:"correct_answer"`
	Explanation    string    `json:"explanation"`
	Misconceptions [3]string `json:"misconceptions"`

	// Model and Instructions are the per-session LLM knobs: which model to
	// ask and any extra system-prompt text layered by the teacher.
	Model        string `json:"model"`
	Instructions string `json:"instructions"`
}

// NewFormState returns a form for the given question number with the
// standard four options and multiple-choice type.
func NewFormState(questionNumber int) FormState {
	return FormState{
		QuestionNumber: questionNumber,
		QuestionType:   analysis.TypeMultipleChoice,
		Options:        []string{"A", "B", "C", "D"},
	}
}

// WithQuestionType returns a copy with the question type replaced. Invalid
// types are ignored.
func (f FormState) WithQuestionType(t analysis.QuestionType) FormState {
	if !t.Valid() {
		return f
	}
	f.QuestionType = t
	return f
}

// WithTEKS returns a copy with the curriculum standard replaced.
func (f FormState) WithTEKS(teks string) FormState {
	f.TEKS = strings.TrimSpace(teks)
	return f
}

// WithPrompt returns a copy with the problem description replaced.
func (f FormState) WithPrompt(prompt string) FormState {
	f.Prompt = prompt
	return f
}

// WithCorrectAnswer returns a copy with the correct answer replaced.
func (f FormState) WithCorrectAnswer(answer string) FormState {
	f.CorrectAnswer = strings.TrimSpace(answer)
	return f
}

// WithExplanation returns a copy with the explanation replaced.
func (f FormState) WithExplanation(explanation string) FormState {
	f.Explanation = explanation
	return f
}

// WithMisconception returns a copy with misconception slot i (0-based)
// replaced. Out-of-range indexes are ignored.
func (f FormState) WithMisconception(i int, text string) FormState {
	if i < 0 || i >= len(f.Misconceptions) {
		return f
	}
	f.Misconceptions[i] = text
	return f
}

// WithOption returns a copy with option slot i (0-based) replaced. The
// options slice is cloned so the receiver's backing array stays untouched.
func (f FormState) WithOption(i int, letter string) FormState {
	if i < 0 || i >= len(f.Options) {
		return f
	}
	options := make([]string, len(f.Options))
	copy(options, f.Options)
	options[i] = letter
	f.Options = options
	return f
}

// WithModel returns a copy with the LLM model override replaced.
func (f FormState) WithModel(model string) FormState {
	f.Model = strings.TrimSpace(model)
	return f
}

// WithInstructions returns a copy with the extra prompt instructions
// replaced.
func (f FormState) WithInstructions(instructions string) FormState {
	f.Instructions = instructions
	return f
}

// ApplyAnalysis merges a normalized analysis into the form. Only fields the
// analysis actually produced overwrite the form; empty analysis fields keep
// whatever the teacher already typed.
func (f FormState) ApplyAnalysis(rec analysis.ProblemAnalysis) FormState {
	if a := strings.TrimSpace(rec.CorrectAnswer); a != "" {
		f.CorrectAnswer = a
	}
	if rec.Explanation != "" {
		f.Explanation = rec.Explanation
	}
	for i, m := range rec.Misconceptions {
		if m != "" {
			f.Misconceptions[i] = m
		}
	}
	return f
}

// AnalyzeInput builds the analyzer request for this form. The image, when
// present, is attached by the caller.
func (f FormState) AnalyzeInput() analysis.AnalyzeInput {
	return analysis.AnalyzeInput{
		QuestionType:   f.QuestionType,
		PromptOverride: f.Instructions,
		ProblemText:    f.Prompt,
	}
}

// Question converts the form into the snippet renderer's input.
func (f FormState) Question() snippet.Question {
	return snippet.Question{
		Number:         f.QuestionNumber,
		TEKS:           f.TEKS,
		CorrectAnswer:  f.CorrectAnswer,
		Options:        f.Options,
		Explanation:    f.Explanation,
		Misconceptions: f.Misconceptions,
	}
}

// Snippets renders the CL fragments for the form's current contents.
func (f FormState) Snippets() []snippet.Snippet {
	return snippet.Render(f.Question())
}

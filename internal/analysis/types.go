package analysis

import "github.com/mr-romero/desmos-code-hub/internal/llm"

// MisconceptionCount is the number of misconception slots. The snippet
// renderer emits exactly this many misconception snippets, one per
// distractor slot, so the arity is fixed in the type below.
const MisconceptionCount = 3

// QuestionType selects the instructional prompt for analysis.
type QuestionType string

const (
	// TypeMultipleChoice is a question answered by picking a lettered option.
	TypeMultipleChoice QuestionType = "multiple_choice"

	// TypeEquation is an open-ended question answered with an equation or
	// free-form expression.
	TypeEquation QuestionType = "equation"
)

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	return t == TypeMultipleChoice || t == TypeEquation
}

// ProblemAnalysis is the canonical record produced from one LLM response.
// It is an immutable value: callers that edit fields build a new record.
type ProblemAnalysis struct {
	// CorrectAnswer is a single uppercase letter (A-J) for multiple choice,
	// or an arbitrary equation/answer string for open-ended questions.
	// Empty when not determinable.
	CorrectAnswer string `json:"correctAnswer,omitempty"`

	// Explanation is a prose solution walkthrough. Possibly empty.
	Explanation string `json:"explanation"`

	// Misconceptions holds one explanation per wrong-answer rationale.
	// Unused slots are empty strings, never omitted.
	Misconceptions [MisconceptionCount]string `json:"misconceptions"`
}

// AnalyzeInput holds everything needed to request one problem analysis.
type AnalyzeInput struct {
	// QuestionType selects the default instructional prompt.
	QuestionType QuestionType

	// PromptOverride replaces the default system prompt when non-empty.
	PromptOverride string

	// ProblemText is a textual description of the problem. Required when
	// no Image is supplied.
	ProblemText string

	// Image is an optional screenshot of the problem.
	Image *llm.ImageAttachment
}

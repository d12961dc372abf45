// Package snippet renders Desmos Computational Layer script fragments for
// one authored question. Rendering is pure string templating: every snippet
// is a fixed two-line script (a hidden rule and a content string) addressed
// by a q<N>_<slot> key, and the output is bit-exact for a given question.
package snippet

import (
	"fmt"
	"strings"
)

// Slot names one addressable piece of the question's CL script.
type Slot string

const (
	SlotFeedback       Slot = "feedback"
	SlotAnswerButton   Slot = "answer_button"
	SlotExplanation    Slot = "explanation"
	SlotMisconception1 Slot = "misconception1"
	SlotMisconception2 Slot = "misconception2"
	SlotMisconception3 Slot = "misconception3"
)

// misconceptionSlots in distractor order.
var misconceptionSlots = [3]Slot{SlotMisconception1, SlotMisconception2, SlotMisconception3}

// Question is the input to the renderer. All fields are plain values; the
// renderer never mutates them.
type Question struct {
	// Number is the question's position on the screen (1-based). It feeds
	// the q<N>_ key prefix and the component names in expressions.
	Number int

	// TEKS is the curriculum-standard identifier, inserted verbatim into
	// the feedback snippet. Opaque to this package.
	TEKS string

	// CorrectAnswer is the correct option letter for multiple choice, or
	// the answer string for open-ended questions.
	CorrectAnswer string

	// Options are the option letters shown to the student, in display
	// order. Defaults to A-D when empty.
	Options []string

	// Explanation is the solution walkthrough shown after submission.
	Explanation string

	// Misconceptions are the per-distractor explanations, aligned to the
	// distractor letters in display order.
	Misconceptions [3]string
}

// Snippet is one rendered CL fragment.
type Snippet struct {
	Key  string `json:"key"`
	Code string `json:"code"`
}

var defaultOptions = []string{"A", "B", "C", "D"}

// Key builds the platform address for a slot, e.g. "q2_misconception1".
func Key(questionNumber int, slot Slot) string {
	return fmt.Sprintf("q%d_%s", questionNumber, slot)
}

// Escape escapes a string for inclusion inside a CL double-quoted string
// literal: backslashes first, then double quotes.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Render produces all snippets for the question, in slot order:
// feedback, answer button, explanation, then the three misconceptions.
func Render(q Question) []Snippet {
	n := q.Number
	out := make([]Snippet, 0, 6)

	out = append(out, Snippet{
		Key:  Key(n, SlotFeedback),
		Code: renderShown(submittedExpr(n), feedbackText(q)),
	})

	// The answer button hides itself once pressed. Visibility only; the
	// button's label lives on the component, not in a content line.
	out = append(out, Snippet{
		Key:  Key(n, SlotAnswerButton),
		Code: fmt.Sprintf("hidden: when not(%s) false otherwise true", submittedExpr(n)),
	})

	out = append(out, Snippet{
		Key:  Key(n, SlotExplanation),
		Code: renderShown(submittedExpr(n), q.Explanation),
	})

	distractors := distractorIndexes(q)
	for i, slot := range misconceptionSlots {
		cond := submittedExpr(n)
		if i < len(distractors) {
			cond = fmt.Sprintf("%s and q%d_mc.isSelected(%d)", cond, n, distractors[i])
		}
		out = append(out, Snippet{
			Key:  Key(n, slot),
			Code: renderShown(cond, q.Misconceptions[i]),
		})
	}

	return out
}

// RenderMap is Render keyed by snippet address.
func RenderMap(q Question) map[string]string {
	out := make(map[string]string, 6)
	for _, s := range Render(q) {
		out[s.Key] = s.Code
	}
	return out
}

// renderShown emits the fixed two-line template: visible when cond holds,
// with the escaped text as the content string.
func renderShown(cond, text string) string {
	return fmt.Sprintf("hidden: when %s false otherwise true\ncontent: \"%s\"", cond, Escape(text))
}

// submittedExpr is the platform state checked by every post-submission
// snippet: the question's answer button has been pressed.
func submittedExpr(n int) string {
	return fmt.Sprintf("q%d_answer.submitted", n)
}

// feedbackText is the canned feedback line. The TEKS standard rides along
// verbatim when present.
func feedbackText(q Question) string {
	base := "Nice work! Check the explanation below to see the full solution."
	if q.TEKS == "" {
		return base
	}
	return fmt.Sprintf("%s This question covers %s.", base, q.TEKS)
}

// distractorIndexes returns the 1-based display indexes of the incorrect
// options, in display order, up to the three misconception slots. For
// open-ended questions (answer is not a single option letter) every option
// counts as a distractor.
func distractorIndexes(q Question) []int {
	options := q.Options
	if len(options) == 0 {
		options = defaultOptions
	}

	correct := strings.ToUpper(strings.TrimSpace(q.CorrectAnswer))

	var out []int
	for i, opt := range options {
		if strings.ToUpper(strings.TrimSpace(opt)) == correct {
			continue
		}
		out = append(out, i+1)
		if len(out) == len(misconceptionSlots) {
			break
		}
	}
	return out
}

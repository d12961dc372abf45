package analysis

import "strings"

const systemPromptMultipleChoice = `You are a math teacher analyzing a multiple-choice problem for the Desmos Computational Layer authoring tool.

Respond with a single JSON object with exactly these fields:
- "correctAnswer": the letter of the correct option (a single capital letter such as "B")
- "explanation": a clear step-by-step solution a student could follow
- "misconceptions": an array of exactly 3 strings, one per incorrect option in order, each explaining the reasoning error that leads a student to pick that option

Rules:
- Return only the JSON object. No markdown, no commentary around it.
- Write for middle-school students: plain language, short sentences.
- Each misconception must name the specific mistake (e.g. "subtracted before distributing"), not just say the option is wrong.`

const systemPromptEquation = `You are a math teacher analyzing an open-ended problem for the Desmos Computational Layer authoring tool.

Respond with a single JSON object with exactly these fields:
- "correctAnswer": the correct answer as an equation or expression (e.g. "y=2x+3" or "x=7")
- "explanation": a clear step-by-step solution a student could follow
- "misconceptions": an array of exactly 3 strings, each describing a common mistake students make on this kind of problem

Rules:
- Return only the JSON object. No markdown, no commentary around it.
- Write for middle-school students: plain language, short sentences.
- Keep the answer in the simplest standard form.`

// systemPrompt returns the instructional prompt for the question type,
// honoring a non-empty override.
func systemPrompt(input AnalyzeInput) string {
	if s := strings.TrimSpace(input.PromptOverride); s != "" {
		return s
	}
	if input.QuestionType == TypeEquation {
		return systemPromptEquation
	}
	return systemPromptMultipleChoice
}

// buildUserMessage constructs the user message. With an image the message
// is a short instruction and the screenshot rides along as a content part;
// without one the problem description itself is the message body.
func buildUserMessage(input AnalyzeInput) string {
	var b strings.Builder

	if input.Image != nil {
		b.WriteString("Analyze the math problem shown in this image.")
		if t := strings.TrimSpace(input.ProblemText); t != "" {
			b.WriteString("\n\nAdditional context from the teacher:\n")
			b.WriteString(t)
		}
		return b.String()
	}

	b.WriteString("Analyze the following math problem (no image available):\n\n")
	b.WriteString(strings.TrimSpace(input.ProblemText))
	return b.String()
}

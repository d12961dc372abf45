package analysis

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
)

// Normalize coerces arbitrary LLM output into a ProblemAnalysis. It never
// fails: when the text is not the requested JSON object it falls back to
// heuristic section mining, and when that finds nothing the record is
// simply (partially) empty. The tiers never merge — the first tier that
// produces a result wins.
func Normalize(raw string) ProblemAnalysis {
	if rec, ok := parseStructured(raw); ok {
		return rec
	}
	return mineFreeText(raw)
}

// structuredAnalysis mirrors the JSON object the prompts ask for. Models
// disagree on key casing, so both spellings of the answer key are accepted.
type structuredAnalysis struct {
	CorrectAnswer      string   `json:"correctAnswer"`
	CorrectAnswerSnake string   `json:"correct_answer"`
	Explanation        string   `json:"explanation"`
	Misconceptions     []string `json:"misconceptions"`
}

// parseStructured attempts the structured-first tier: strip markdown code
// fences, then parse a single JSON object with the expected optional keys.
func parseStructured(raw string) (ProblemAnalysis, bool) {
	cleaned := stripCodeFences(raw)
	if !strings.HasPrefix(cleaned, "{") {
		return ProblemAnalysis{}, false
	}

	var parsed structuredAnalysis
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return ProblemAnalysis{}, false
	}

	answer := parsed.CorrectAnswer
	if answer == "" {
		answer = parsed.CorrectAnswerSnake
	}

	return ProblemAnalysis{
		CorrectAnswer:  strings.TrimSpace(answer),
		Explanation:    strings.TrimSpace(parsed.Explanation),
		Misconceptions: fixArity(parsed.Misconceptions),
	}, true
}

// stripCodeFences removes a surrounding markdown code fence, with or
// without a language tag.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```json"))
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}

var (
	reCorrectAnswer = regexp.MustCompile(`(?i)correct\s+answer(?:\s+is)?\s*[:\-]?\s*\**\(?([A-Za-z])\b`)

	reExplainHeading = regexp.MustCompile(`(?i)explanation|solution|solving|steps`)
	reAnswerHeading  = regexp.MustCompile(`(?i)answer|correct|misconception|mistake|error`)
	reMiscHeading    = regexp.MustCompile(`(?i)misconception|mistake|error|confusion`)

	reHeadingLine  = regexp.MustCompile(`^#{1,6}\s+(.+?)\s*$`)
	reBoldLine     = regexp.MustCompile(`^\*\*([^*]+)\*\*:?\s*$`)
	reNumberedLine = regexp.MustCompile(`^\s*\d{1,2}[.)]\s+(.*)$`)
	reBulletLine   = regexp.MustCompile(`^\s*[-*•]\s+(.*)$`)

	reMiscRun = regexp.MustCompile(`(?is)(?:misconceptions?|mistakes?|errors?|students\s+might)\b[:\s].*?(?:\n\s*\n|$)`)
)

// mineFreeText is the fallback tier: the model ignored the JSON
// instruction, so the same section vocabulary the prompt used is mined
// back out of the prose.
func mineFreeText(raw string) ProblemAnalysis {
	rec := ProblemAnalysis{}

	if m := reCorrectAnswer.FindStringSubmatch(raw); m != nil {
		rec.CorrectAnswer = strings.ToUpper(m[1])
	}

	sections := splitSections(raw)
	rec.Explanation = pickExplanation(sections)
	rec.Misconceptions = fixArity(pickMisconceptions(raw, sections))

	return rec
}

// section is one heading-delimited slice of the raw text.
type section struct {
	heading string // heading text without its marker, "" for the preamble
	body    string // lines after the heading line
	full    string // heading line plus body
}

// headingText returns the heading a line introduces, or ok=false when the
// line is not a section marker.
func headingText(line string, numbered bool) (string, bool) {
	if m := reHeadingLine.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	if m := reBoldLine.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	if numbered {
		if m := reNumberedLine.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// splitSections splits raw text into heading-delimited sections. Markdown
// headings (and bold-only lines, a common model artifact) delimit; when the
// text has no headings at all, numbered lines at line start delimit instead
// so outputs like "1. Solution: ..." still section cleanly.
func splitSections(raw string) []section {
	lines := strings.Split(raw, "\n")

	hasHeadings := false
	for _, line := range lines {
		if _, ok := headingText(line, false); ok {
			hasHeadings = true
			break
		}
	}

	var sections []section
	current := section{}
	flush := func() {
		if strings.TrimSpace(current.full) != "" {
			current.body = strings.TrimSpace(current.body)
			current.full = strings.TrimSpace(current.full)
			sections = append(sections, current)
		}
	}

	for _, line := range lines {
		if h, ok := headingText(line, !hasHeadings); ok {
			flush()
			current = section{heading: h, full: line + "\n"}
			continue
		}
		current.body += line + "\n"
		current.full += line + "\n"
	}
	flush()

	return sections
}

// pickExplanation selects the explanation per the layered heuristics:
// first a section headed like an explanation, else the first long section
// whose heading does not look like the answer or misconceptions block.
func pickExplanation(sections []section) string {
	for _, sec := range sections {
		if sec.heading != "" && reExplainHeading.MatchString(sec.heading) {
			return sec.body
		}
	}

	for _, sec := range sections {
		if len(sec.full) > 100 && !reAnswerHeading.MatchString(sec.heading) {
			return sec.full
		}
	}

	return ""
}

// pickMisconceptions selects up to 3 misconception strings: list items in
// the headed misconceptions section, else its long paragraphs, else a
// full-text scan for misconception-flavored runs.
func pickMisconceptions(raw string, sections []section) []string {
	for _, sec := range sections {
		if sec.heading == "" || !reMiscHeading.MatchString(sec.heading) {
			continue
		}

		if items := splitListItems(sec.body); len(items) > 0 {
			return items
		}
		return longParagraphs(sec.body, 50)
	}

	return scanMisconceptionRuns(raw)
}

// splitListItems splits text on numbered or bullet list markers at line
// start. A list item runs until the next marker; text before the first
// marker is dropped.
func splitListItems(text string) []string {
	var items []string
	var current strings.Builder
	inItem := false

	flush := func() {
		if item := strings.TrimSpace(current.String()); item != "" {
			items = append(items, item)
		}
		current.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		var rest string
		if m := reNumberedLine.FindStringSubmatch(line); m != nil {
			rest = m[1]
		} else if m := reBulletLine.FindStringSubmatch(line); m != nil {
			rest = m[1]
		} else {
			if inItem {
				current.WriteString("\n" + line)
			}
			continue
		}

		if inItem {
			flush()
		}
		inItem = true
		current.WriteString(rest)
	}
	if inItem {
		flush()
	}

	return items
}

// longParagraphs returns blank-line-separated paragraphs longer than min
// characters, in order of appearance.
func longParagraphs(text string, min int) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if len(p) > min {
			out = append(out, p)
		}
	}
	return out
}

// scanMisconceptionRuns is the last-resort tier: contiguous runs starting
// with misconception vocabulary anywhere in the text, longest first, then
// restored to appearance order.
func scanMisconceptionRuns(raw string) []string {
	locs := reMiscRun.FindAllStringIndex(raw, -1)
	if len(locs) == 0 {
		return nil
	}

	type run struct {
		start int
		text  string
	}
	runs := make([]run, 0, len(locs))
	for _, loc := range locs {
		runs = append(runs, run{start: loc[0], text: strings.TrimSpace(raw[loc[0]:loc[1]])})
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return len(runs[i].text) > len(runs[j].text)
	})
	if len(runs) > MisconceptionCount {
		runs = runs[:MisconceptionCount]
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].start < runs[j].start
	})

	out := make([]string, len(runs))
	for i, r := range runs {
		out[i] = r.text
	}
	return out
}

// fixArity pads or truncates a candidate list to exactly 3 misconception
// slots. Excess candidates are dropped, never merged.
func fixArity(items []string) [MisconceptionCount]string {
	var fixed [MisconceptionCount]string
	for i := 0; i < MisconceptionCount && i < len(items); i++ {
		fixed[i] = strings.TrimSpace(items[i])
	}
	return fixed
}

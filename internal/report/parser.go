// Package report turns the markdown returned by the generation service
// into a structured career report.
package report

import (
	"strings"
	"unicode"
)

// Section headings the prompt asks the generator to emit. Matching is exact
// and case-sensitive.
const (
	HeadingConclusion      = "Conclusion"
	HeadingRecommendations = "Career Recommendations"
)

const headingMarker = "###"

// Result is a parsed report.
type Result struct {
	Conclusion      string
	Recommendations string
	Titles          []string
}

// Complete reports whether both sections were found and non-empty.
func (r *Result) Complete() bool {
	return r.Conclusion != "" && r.Recommendations != ""
}

// Recommendation is one "**Title:** explanation" entry.
type Recommendation struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
}

// Parse extracts the conclusion and recommendation sections from raw.
// A missing section yields an empty string; callers decide whether that
// is an error.
func Parse(raw string) *Result {
	sections := scanSections(raw)
	res := &Result{
		Conclusion:      sections[HeadingConclusion],
		Recommendations: sections[HeadingRecommendations],
	}
	for _, rec := range ParseRecommendations(res.Recommendations) {
		res.Titles = append(res.Titles, rec.Title)
	}
	return res
}

// scanSections walks raw line by line. Each heading line opens a section
// that runs until the next heading line or the end of the text. The first
// occurrence of a heading wins.
func scanSections(raw string) map[string]string {
	out := make(map[string]string)
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	var (
		current string
		open    bool
		body    []string
	)
	flush := func() {
		if !open {
			return
		}
		if _, seen := out[current]; !seen {
			out[current] = strings.TrimSpace(strings.Join(body, "\n"))
		}
	}

	for _, line := range lines {
		if name, ok := headingName(line); ok {
			flush()
			current, open, body = name, true, body[:0]
			continue
		}
		if open {
			body = append(body, line)
		}
	}
	flush()
	return out
}

// headingName returns the heading text of a "###" line, with one trailing
// colon removed.
func headingName(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, headingMarker) {
		return "", false
	}
	name := strings.TrimSpace(strings.TrimPrefix(trimmed, headingMarker))
	name = strings.TrimSpace(strings.TrimSuffix(name, ":"))
	return name, true
}

// ParseRecommendations splits recommendation text into entries, one per
// non-empty line. Lines that don't follow the "**Title:** text" shape still
// produce a best-effort title; lines that yield no title are skipped.
func ParseRecommendations(text string) []Recommendation {
	var recs []Recommendation
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, "**", ""))
		line = stripBullet(line)
		if line == "" {
			continue
		}

		title, explanation, found := strings.Cut(line, ":")
		if !found {
			recs = append(recs, Recommendation{Title: line})
			continue
		}
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		recs = append(recs, Recommendation{
			Title:       title,
			Explanation: strings.TrimSpace(explanation),
		})
	}
	return recs
}

// stripBullet removes a leading markdown list marker ("-", "*", "+", "•",
// "1.", "1)").
func stripBullet(line string) string {
	for _, marker := range []string{"- ", "* ", "+ ", "• "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(line[len(marker):])
		}
	}

	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i+1 < len(line) && (line[i] == '.' || line[i] == ')') && unicode.IsSpace(rune(line[i+1])) {
		return strings.TrimSpace(line[i+1:])
	}
	return line
}

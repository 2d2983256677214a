package quiz

import (
	"fmt"
	"strings"
)

const promptHeader = `You are a career counselor reviewing a student's answers to a career guidance quiz. Write a report with exactly two markdown sections, in this order:

### Conclusion
Write 4-5 sentences summarizing the student's personality, working style and key strengths as shown by their answers.

### Career Recommendations
Recommend exactly 4 careers. Put each one on its own line formatted as **Career Title:** explanation, where the explanation ties the career to specific answers in one or two sentences.

Do not add any other headings, introductions or closing remarks.

Quiz answers:`

// BuildPrompt serializes the answers into the text sent to the generation
// service. Output is deterministic: sections in definition order, then
// questions within each section, numbered from 1 across the whole quiz.
func BuildPrompt(def *Definition, answers *AnswerSet) string {
	blocks := make([]string, 0, def.Total())
	n := 0
	for si, s := range def.Sections {
		for qi, q := range s.Questions {
			n++
			answer, ok := answers.Answer(Key{Section: si, Question: qi})
			if !ok {
				answer = "(not answered)"
			}
			blocks = append(blocks, fmt.Sprintf("%d. **Question:** %s\n   **Answer:** %s", n, q.Text, answer))
		}
	}

	var b strings.Builder
	b.WriteString(promptHeader)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(blocks, "\n\n"))
	return b.String()
}

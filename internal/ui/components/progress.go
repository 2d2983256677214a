package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathfinder/internal/ui/theme"
)

// AnswerBar shows how many quiz questions have an answer.
type AnswerBar struct {
	Answered int
	Total    int
	Percent  float64
	Width    int
}

// AnsweredBar returns a bar for answered of total questions drawn in
// width cells. An empty quiz reads as 0%.
func AnsweredBar(answered, total, width int) AnswerBar {
	b := AnswerBar{Answered: answered, Total: total, Width: width}
	if total > 0 {
		b.Percent = min(max(float64(answered)/float64(total), 0), 1)
	}
	return b
}

func (b AnswerBar) View() string {
	label := fmt.Sprintf("%d/%d answered", b.Answered, b.Total)
	pct := fmt.Sprintf("%3d%%", int(b.Percent*100))

	track := max(b.Width-lipgloss.Width(label)-lipgloss.Width(pct)-4, 4)
	filled := int(float64(track) * b.Percent)

	return theme.Body.Render(label) + "  " +
		theme.ProgressFilled.Render(strings.Repeat("━", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat("─", track-filled)) + "  " +
		theme.Hint.Render(pct)
}

package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"

	"github.com/abhisek/pathfinder/internal/report"
	"github.com/abhisek/pathfinder/internal/submission"
	"github.com/abhisek/pathfinder/internal/ui/components"
	"github.com/abhisek/pathfinder/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.sess.Phase() == submission.PhaseSuccess {
		return s.renderResult(width, height)
	}
	if s.submitting {
		return s.renderSubmitting(width, height)
	}
	return s.renderQuestion(width)
}

func (s *QuizScreen) renderQuestion(width int) string {
	if len(s.keys) == 0 {
		return theme.Hint.Render("\n  This quiz has no questions.")
	}

	inner := width - 4
	if inner > 90 {
		inner = 90
	}

	k := s.keys[s.page]
	def := s.sess.Definition()
	progress := s.sess.Progress()

	var b strings.Builder

	section := theme.SectionHeading.Render(fmt.Sprintf("%s  ·  Question %d of %d", def.Sections[k.Section].Title, s.page+1, len(s.keys)))
	b.WriteString(section)
	b.WriteString("\n")
	b.WriteString(theme.Rule.Render(strings.Repeat("─", inner)))
	b.WriteString("\n\n")

	b.WriteString(s.choice.View(inner))
	b.WriteString("\n")

	b.WriteString(components.AnsweredBar(progress.Answered, progress.Total, inner).View())
	b.WriteString("\n\n")

	b.WriteString(components.KeyButton("s", "Get my report", progress.Complete()))
	b.WriteString("\n")

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(inner).Inherit(theme.ErrorLine).Render(s.errMsg))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (s *QuizScreen) renderSubmitting(width, height int) string {
	msg := s.spinner.View() + " " +
		lipgloss.NewStyle().Foreground(theme.Text).Render("Generating your career report...")
	hint := theme.Hint.Render("This can take up to a minute.")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg+"\n\n"+hint)
}

func (s *QuizScreen) renderResult(width, height int) string {
	vpWidth := width - 4
	vpHeight := height - 2
	if vpHeight < 1 {
		vpHeight = 1
	}
	if s.renderedWidth != width {
		s.viewport.SetContent(renderMarkdown(resultMarkdown(s.sess.Result()), vpWidth-2))
		s.viewport.GotoTop()
		s.renderedWidth = width
	}
	s.viewport.SetWidth(vpWidth)
	s.viewport.SetHeight(vpHeight)

	return lipgloss.NewStyle().Padding(1, 2, 0, 2).Render(s.viewport.View())
}

// resultMarkdown rebuilds the report from its parsed sections so only the
// recognised content is shown.
func resultMarkdown(res *report.Result) string {
	if res == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("# Your career report\n\n")
	b.WriteString("### " + report.HeadingConclusion + "\n\n")
	b.WriteString(res.Conclusion)
	b.WriteString("\n\n### " + report.HeadingRecommendations + "\n\n")
	for _, rec := range report.ParseRecommendations(res.Recommendations) {
		if rec.Explanation == "" {
			fmt.Fprintf(&b, "- **%s**\n", rec.Title)
			continue
		}
		fmt.Fprintf(&b, "- **%s:** %s\n", rec.Title, rec.Explanation)
	}
	return b.String()
}

func renderMarkdown(md string, width int) string {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

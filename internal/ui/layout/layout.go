// Package layout draws the chrome around every screen: a header bar with
// the app name, the screen title and the signed-in user, and a footer of
// key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathfinder/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20
)

// Below these body sizes screens drop decorative art.
const (
	compactBodyWidth  = 100
	compactBodyHeight = 24
)

type KeyHint struct {
	Key         string
	Description string
}

// Compact reports whether a width x height body is too small for the
// full-size rendering of a screen.
func Compact(width, height int) bool {
	return width < compactBodyWidth || height < compactBodyHeight
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// TooSmall fills the terminal with a resize request.
func TooSmall(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Terminal too small!\n\nPathfinder needs at least %d x %d.\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height))
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// Frame is the chrome for one render.
type Frame struct {
	Title string
	// User is shown on the right of the header; empty reads "guest".
	User  string
	Hints []KeyHint
}

// Header renders the top bar for a terminal of the given width.
func (f Frame) Header(width int) string {
	user := f.User
	if user == "" {
		user = "guest"
	}
	inner := max(width-4, 0)

	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Pathfinder")
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render("● " + user)
	title := lipgloss.NewStyle().Foreground(theme.Text).
		Width(max(inner-lipgloss.Width(left)-lipgloss.Width(right), 0)).
		Align(lipgloss.Center).
		Render(f.Title)

	return bar.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, left, title, right))
}

// Footer renders the key hint bar.
func (f Frame) Footer(width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(f.Hints))
	for i, h := range f.Hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	return bar.Width(width).Render("  " + strings.Join(parts, "   "))
}

// Render lays out header, body and footer in a width x height terminal.
// body receives the cells left between the two bars.
func (f Frame) Render(width, height int, body func(w, h int) string) string {
	header, footer := f.Header(width), f.Footer(width)
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := lipgloss.NewStyle().
		Width(width).
		Height(bodyHeight).
		Render(body(width, bodyHeight))
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

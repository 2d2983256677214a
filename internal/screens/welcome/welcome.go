// Package welcome draws the splash shown before the home menu.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathfinder/internal/router"
	"github.com/abhisek/pathfinder/internal/screen"
	"github.com/abhisek/pathfinder/internal/ui/theme"
)

const frameInterval = 80 * time.Millisecond

// autoAdvance is the frame after which the splash moves on by itself.
const autoAdvance = 75

const tagline = "Find the path that fits you."

const bannerWide = `
█▀█ ▄▀█ ▀█▀ █░█ █▀▀ █ █▄░█ █▀▄ █▀▀ █▀█
█▀▀ █▀█ ░█░ █▀█ █▀░ █ █░▀█ █▄▀ ██▄ █▀▄`

const bannerNarrow = "P A T H F I N D E R"

// trail is the walked path, revealed one step per frame.
var trail = []string{"·", "·", "∙", "•", "∙", "·", "·", "∙", "•", "∙", "·", "·", "★"}

// compass needle positions, clockwise from north
var needle = []string{"↑", "↗", "→", "↘", "↓", "↙", "←", "↖"}

type frameMsg struct{}

// WelcomeScreen draws a trail toward a star, then the banner. Any key, or
// the end of the hold period, replaces it with the next screen.
type WelcomeScreen struct {
	next  func() screen.Screen
	frame int
	done  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New returns a splash that hands over to next().
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		if w.done {
			return w, nil
		}
		w.frame++
		if w.frame >= autoAdvance {
			return w, w.handOver()
		}
		return w, nextFrame()
	case tea.KeyPressMsg:
		return w, w.handOver()
	}
	return w, nil
}

func (w *WelcomeScreen) handOver() tea.Cmd {
	if w.done {
		return nil
	}
	w.done = true
	s := w.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: s} }
}

// trailDrawn reports whether every trail step is visible.
func (w *WelcomeScreen) trailDrawn() bool { return w.frame >= len(trail) }

func (w *WelcomeScreen) View(width, height int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	steps := make([]string, 0, len(trail))
	for i := 0; i < min(w.frame, len(trail)); i++ {
		st := dim
		if i == len(trail)-1 {
			st = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
		}
		steps = append(steps, st.Render(trail[i]))
	}

	compass := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(needle[w.frame%len(needle)])
	if w.trailDrawn() {
		compass = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("↗")
	}

	lines := []string{compass + "  " + strings.Join(steps, " ")}
	if w.trailDrawn() {
		banner := bannerWide
		if width < 44 {
			banner = bannerNarrow
		}
		lines = append(lines,
			"",
			lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(banner),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
}

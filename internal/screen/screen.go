// Package screen declares what the router needs from a page of the TUI.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pathfinder/internal/ui/layout"
)

// Screen is one page of the app. The router owns the frame, so View
// draws only the body area of width x height cells.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	// Title is shown in the header bar.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer releases what a screen holds once it leaves the stack, such as
// an in-flight quiz submission.
type Closer interface {
	Close()
}

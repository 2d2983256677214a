// Package router keeps the stack of TUI screens and routes Bubble Tea
// messages to whichever screen is on top.
package router

import (
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/pathfinder/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the top screen and returns to the one below.
type PopScreenMsg struct{}

// ReplaceScreenMsg closes the top screen and puts Screen in its place.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router is a stack of screens. The bottom screen is never popped.
// Screens implementing screen.Closer are closed as they leave.
type Router struct {
	stack  []screen.Screen
	logger *zap.Logger
}

// New returns a router showing initial. A nil logger discards output.
func New(initial screen.Screen, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{stack: []screen.Screen{initial}, logger: logger}
}

func (r *Router) top() int { return len(r.stack) - 1 }

func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	r.logger.Debug("screen pushed", zap.String("title", s.Title()), zap.Int("depth", len(r.stack)))
	return s.Init()
}

// Pop closes the top screen unless it is the only one left.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) < 2 {
		return nil
	}
	leaving := r.stack[r.top()]
	r.stack = r.stack[:r.top()]
	release(leaving)
	r.logger.Debug("screen popped", zap.String("title", leaving.Title()), zap.Int("depth", len(r.stack)))
	return nil
}

func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		return r.Push(s)
	}
	release(r.stack[r.top()])
	r.stack[r.top()] = s
	r.logger.Debug("screen replaced", zap.String("title", s.Title()), zap.Int("depth", len(r.stack)))
	return s.Init()
}

// CloseAll releases every screen, top first. The stack is left intact.
func (r *Router) CloseAll() {
	for i := r.top(); i >= 0; i-- {
		release(r.stack[i])
	}
}

func release(s screen.Screen) {
	if c, ok := s.(screen.Closer); ok {
		c.Close()
	}
}

func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[r.top()]
}

func (r *Router) Depth() int { return len(r.stack) }

// Trail lists the non-empty titles from the bottom of the stack up.
func (r *Router) Trail() []string {
	var out []string
	for _, s := range r.stack {
		if t := s.Title(); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	if len(r.stack) == 0 {
		return nil
	}
	next, cmd := r.stack[r.top()].Update(msg)
	r.stack[r.top()] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if s := r.Active(); s != nil {
		return s.View(width, height)
	}
	return ""
}

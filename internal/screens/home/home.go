package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pathfinder/internal/router"
	"github.com/abhisek/pathfinder/internal/screen"
	"github.com/abhisek/pathfinder/internal/screens/profile"
	quizscreen "github.com/abhisek/pathfinder/internal/screens/quiz"
	"github.com/abhisek/pathfinder/internal/submission"
	"github.com/abhisek/pathfinder/internal/ui/components"
	"github.com/abhisek/pathfinder/internal/ui/layout"
)

// Deps are what the home menu needs to open the other screens.
type Deps struct {
	// Ctx bounds quiz submissions.
	Ctx context.Context

	// NewSession creates a fresh quiz session each time the quiz opens.
	NewSession func() *submission.Session

	// Profiles loads stored profiles; nil disables the profile entry.
	Profiles profile.Loader

	Email string
}

// HomeScreen is the main menu.
type HomeScreen struct {
	menu  components.Menu
	email string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	ctx := deps.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	items := []components.MenuItem{
		{Label: "TAKE THE QUIZ", Disabled: deps.NewSession == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: quizscreen.New(ctx, deps.NewSession())}
			}
		}},
		{Label: "MY PROFILE", Disabled: deps.Profiles == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: profile.New(deps.Profiles, deps.Email)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:  components.NewMenu(items),
		email: deps.Email,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.Compact(width, height)
	cw := contentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderTagline(h.email, cw),
		h.menu.View(cw),
	}
	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

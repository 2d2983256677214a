// Package profile shows the stored career summary for a student.
package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathfinder/internal/screen"
	"github.com/abhisek/pathfinder/internal/store"
	"github.com/abhisek/pathfinder/internal/ui/components"
	"github.com/abhisek/pathfinder/internal/ui/layout"
	"github.com/abhisek/pathfinder/internal/ui/theme"
)

const loadTimeout = 15 * time.Second

// Loader fetches a profile by email. It returns nil when none exists.
type Loader interface {
	Get(ctx context.Context, email string) (*store.Profile, error)
}

type profileLoadedMsg struct {
	Email   string
	Profile *store.Profile
	Err     error
}

// ProfileScreen displays a stored profile. Without a configured email it
// first asks for one.
type ProfileScreen struct {
	loader  Loader
	email   string
	input   components.TextInput
	asking  bool
	loading bool
	loaded  bool
	profile *store.Profile
	errMsg  string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)

// New creates a ProfileScreen for email, which may be empty.
func New(loader Loader, email string) *ProfileScreen {
	return &ProfileScreen{
		loader: loader,
		email:  email,
		asking: email == "",
		input:  components.NewTextInput("you@example.com", 254, components.CheckEmail),
	}
}

func (s *ProfileScreen) Init() tea.Cmd {
	if s.asking {
		return s.input.Init()
	}
	return s.load(s.email)
}

func (s *ProfileScreen) Title() string {
	return "My Profile"
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	if s.asking {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Look up"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "R", Description: "Reload"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProfileScreen) load(email string) tea.Cmd {
	s.loading = true
	s.errMsg = ""
	loader := s.loader
	return func() tea.Msg {
		if loader == nil {
			return profileLoadedMsg{Email: email, Err: fmt.Errorf("no profile store configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		p, err := loader.Get(ctx, email)
		return profileLoadedMsg{Email: email, Profile: p, Err: err}
	}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		if msg.Email != s.email {
			return s, nil
		}
		s.loading = false
		s.loaded = true
		s.profile = msg.Profile
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		if s.asking {
			if msg.String() == "enter" {
				if !s.input.Validate() {
					return s, nil
				}
				s.email = s.input.Value()
				s.asking = false
				return s, s.load(s.email)
			}
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
		if msg.String() == "r" && !s.loading {
			return s, s.load(s.email)
		}
		return s, nil
	}

	if s.asking {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ProfileScreen) View(width, height int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if s.asking {
		return centered.Render(
			"\n\n" + theme.Body.Render("Which email should we look up?") +
				"\n\n" + s.input.View())
	}
	if s.errMsg != "" {
		return centered.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	}
	if s.loading || !s.loaded {
		return centered.Foreground(theme.TextDim).Render("\n\n  Loading profile...")
	}
	if s.profile == nil {
		return centered.Foreground(theme.TextDim).Italic(true).
			Render(fmt.Sprintf("\n\n  No report saved for %s yet. Take the quiz!", s.email))
	}

	return renderProfile(s.profile, width)
}

func renderProfile(p *store.Profile, width int) string {
	cw := width - 8
	if cw > 80 {
		cw = 80
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(p.Email))
	b.WriteString("\n")
	reports := "report"
	if p.Reports != 1 {
		reports = "reports"
	}
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d %s · last updated %s",
		p.Reports, reports, p.UpdatedAt.Local().Format("Jan 02, 2006 15:04"))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Conclusion"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(p.Conclusion))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Recommended careers"))
	b.WriteString("\n")
	for i, title := range p.Recommendations {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("  %d. %s", i+1, title)))
		b.WriteString("\n")
	}

	card := theme.Card.Width(cw + 4).Render(b.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n"+card)
}

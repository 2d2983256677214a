package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathfinder/internal/ui/theme"
)

// ChoiceMadeMsg is emitted when the user picks an option.
type ChoiceMadeMsg struct {
	Index  int
	Option string
}

// Choice is a single-select list. Cursor is the highlighted row; Chosen is
// the currently recorded answer, or empty.
type Choice struct {
	Prompt  string
	Options []string
	Cursor  int
	Chosen  string
}

// NewChoice creates a choice list. When chosen matches an option the cursor
// starts on it.
func NewChoice(prompt string, options []string, chosen string) Choice {
	c := Choice{Prompt: prompt, Options: options, Chosen: chosen}
	for i, o := range options {
		if o == chosen {
			c.Cursor = i
			break
		}
	}
	return c
}

// Update handles cursor movement, number keys and enter/space.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Options) == 0 {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
		return c, nil
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
		return c, nil
	case "enter", "space", " ":
		return c, c.pick(c.Cursor)
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx < len(c.Options) {
			c.Cursor = idx
			return c, c.pick(idx)
		}
	}
	return c, nil
}

func (c Choice) pick(idx int) tea.Cmd {
	opt := c.Options[idx]
	return func() tea.Msg {
		return ChoiceMadeMsg{Index: idx, Option: opt}
	}
}

// View renders the prompt and the numbered options.
func (c Choice) View(width int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Foreground(theme.Text).
		Bold(true).
		Render(c.Prompt))
	b.WriteString("\n\n")

	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
		}
		mark := "○"
		if opt == c.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%d) %s %s", prefix, i+1, mark, opt)

		switch {
		case opt == c.Chosen:
			b.WriteString(theme.Chosen.Render(line))
		case i == c.Cursor:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

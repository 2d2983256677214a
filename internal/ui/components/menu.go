package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathfinder/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Disabled entries are shown but can
// not be focused.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of buttons. Up and down move between enabled
// items and wrap at the ends; enter runs the focused item.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu focuses the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.step(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// step moves focus by dir (+1 or -1) to the next enabled item, wrapping.
func (m *Menu) step(dir int) {
	n := len(m.Items)
	for i := 1; i <= n; i++ {
		next := ((m.Selected+dir*i)%n + n) % n
		if !m.Items[next].Disabled {
			m.Selected = next
			return
		}
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch key.String() {
	case "up", "k", "shift+tab":
		m.step(-1)
	case "down", "j", "tab":
		m.step(1)
	case "enter", "space":
		if m.Selected < 0 || m.Selected >= len(m.Items) {
			return m, nil
		}
		if item := m.Items[m.Selected]; !item.Disabled && item.Action != nil {
			return m, item.Action()
		}
	}
	return m, nil
}

func (m Menu) View(width int) string {
	rows := make([]string, len(m.Items))
	for i, item := range m.Items {
		rows[i] = MenuButton(item.Label, i == m.Selected, item.Disabled)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(rows, "\n"))
}

const menuButtonWidth = 24

var menuButton = lipgloss.NewStyle().
	Width(menuButtonWidth).
	Align(lipgloss.Center).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border).
	Padding(0, 1)

// MenuButton renders one entry. The focused entry is filled and marked.
func MenuButton(label string, selected, disabled bool) string {
	switch {
	case disabled:
		return menuButton.Foreground(theme.TextDim).Render(label)
	case selected:
		return menuButton.
			Bold(true).
			Foreground(theme.Text).
			Background(theme.Primary).
			BorderForeground(theme.Primary).
			Render("▸ " + label)
	}
	return menuButton.Foreground(theme.Text).Render(label)
}

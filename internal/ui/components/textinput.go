package components

import (
	"errors"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pathfinder/internal/ui/theme"
)

// ErrNotEmail is returned by CheckEmail.
var ErrNotEmail = errors.New("that does not look like an email address")

// TextInput is a single-line field with an optional check that runs on
// Validate. The last check error is shown under the field until the
// next edit.
type TextInput struct {
	Model textinput.Model
	Check func(string) error
	err   error
}

// NewTextInput returns a focused field limited to limit characters.
func NewTextInput(placeholder string, limit int, check func(string) error) TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	m.CharLimit = max(limit, 0)
	m.Focus()
	return TextInput{Model: m, Check: check}
}

func (t TextInput) Init() tea.Cmd { return t.Model.Focus() }

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		t.err = nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	if t.err == nil {
		return t.Model.View()
	}
	return t.Model.View() + "\n" + theme.ErrorLine.Render(t.err.Error())
}

// Value is the input with surrounding whitespace removed.
func (t TextInput) Value() string { return strings.TrimSpace(t.Model.Value()) }

// Validate runs Check and reports whether the value passed.
func (t *TextInput) Validate() bool {
	t.err = nil
	if t.Check != nil {
		t.err = t.Check(t.Value())
	}
	return t.err == nil
}

// Err is the result of the last Validate, cleared by any key press.
func (t TextInput) Err() error { return t.err }

// CheckEmail accepts an address with a local part and a dotted domain.
func CheckEmail(s string) error {
	if !LooksLikeEmail(s) {
		return ErrNotEmail
	}
	return nil
}

func LooksLikeEmail(s string) bool {
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return strings.Contains(s[at+1:], ".") && !strings.ContainsAny(s, " \t")
}

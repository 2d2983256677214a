package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pathfinder/internal/quiz"
	"github.com/abhisek/pathfinder/internal/router"
	"github.com/abhisek/pathfinder/internal/screens/home"
	"github.com/abhisek/pathfinder/internal/submission"
)

type nopGenerator struct{}

func (nopGenerator) Generate(context.Context, string) (string, error) { return "", nil }

func testOptions() Options {
	return Options{
		SkipSplash: true,
		Home: home.Deps{
			Ctx: context.Background(),
			NewSession: func() *submission.Session {
				return submission.New(quiz.MustDefault(), submission.Deps{Generator: nopGenerator{}})
			},
			Email: "ada@example.com",
		},
	}
}

// step feeds msg to the model and then every message its command yields.
func step(m tea.Model, msg tea.Msg) tea.Model {
	m, cmd := m.Update(msg)
	if cmd == nil {
		return m
	}
	next := cmd()
	switch next.(type) {
	case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg:
		return step(m, next)
	}
	return m
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(testOptions())
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestEscPopsAndClosesQuiz(t *testing.T) {
	var model tea.Model = newAppModel(testOptions())

	model = step(model, tea.KeyPressMsg{Code: tea.KeyEnter})
	app := model.(AppModel)
	if app.router.Depth() != 2 {
		t.Fatalf("depth = %d, want quiz pushed", app.router.Depth())
	}

	model = step(model, tea.KeyPressMsg{Code: tea.KeyEscape})
	app = model.(AppModel)
	if app.router.Depth() != 1 {
		t.Errorf("depth = %d, want back on home", app.router.Depth())
	}
}

func TestEscOnHomeIsNoop(t *testing.T) {
	m := newAppModel(testOptions())
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("expected no command on bottom screen")
	}
}

func TestViewIncludesHeaderAndHints(t *testing.T) {
	var model tea.Model = newAppModel(testOptions())
	model, _ = model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := model.(AppModel).render()
	for _, want := range []string{"Pathfinder", "ada@example.com", "Navigate"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestTooSmall(t *testing.T) {
	var model tea.Model = newAppModel(testOptions())
	model, _ = model.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	if !strings.Contains(model.(AppModel).render(), "too small") {
		t.Error("expected min size message")
	}
}

func TestSplashFirstByDefault(t *testing.T) {
	opts := testOptions()
	opts.SkipSplash = false
	m := newAppModel(opts)
	if m.router.Active().Title() != "" {
		t.Errorf("expected splash screen first, got %q", m.router.Active().Title())
	}
}

package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pathfinder/internal/quiz"
	"github.com/abhisek/pathfinder/internal/router"
	"github.com/abhisek/pathfinder/internal/store"
	"github.com/abhisek/pathfinder/internal/submission"
)

type nopGenerator struct{}

func (nopGenerator) Generate(context.Context, string) (string, error) { return "", nil }

type nopLoader struct{}

func (nopLoader) Get(context.Context, string) (*store.Profile, error) { return nil, nil }

func testDeps() Deps {
	return Deps{
		NewSession: func() *submission.Session {
			return submission.New(quiz.MustDefault(), submission.Deps{Generator: nopGenerator{}})
		},
		Profiles: nopLoader{},
		Email:    "ada@example.com",
	}
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func down() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyDown}
}

func TestTakeQuizPushesQuizScreen(t *testing.T) {
	h := New(testDeps())

	_, cmd := h.Update(enter())
	if cmd == nil {
		t.Fatal("expected command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if push.Screen.Title() != quiz.MustDefault().Title {
		t.Errorf("pushed screen title = %q", push.Screen.Title())
	}
}

func TestProfileEntryPushesProfileScreen(t *testing.T) {
	h := New(testDeps())

	h.Update(down())
	_, cmd := h.Update(enter())
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if push.Screen.Title() != "My Profile" {
		t.Errorf("pushed screen title = %q", push.Screen.Title())
	}
}

func TestProfileEntryDisabledWithoutLoader(t *testing.T) {
	deps := testDeps()
	deps.Profiles = nil
	h := New(deps)

	h.Update(down())
	if h.menu.Selected != 2 {
		t.Errorf("selected = %d, want exit entry", h.menu.Selected)
	}
}

func TestExitQuits(t *testing.T) {
	h := New(testDeps())
	h.Update(down())
	h.Update(down())

	_, cmd := h.Update(enter())
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestViewShowsMenu(t *testing.T) {
	h := New(testDeps())
	view := h.View(100, 30)
	for _, want := range []string{"TAKE THE QUIZ", "MY PROFILE", "EXIT"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

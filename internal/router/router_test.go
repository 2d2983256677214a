package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathfinder/internal/screen"
)

type stubScreen struct {
	title   string
	inits   int
	closed  int
	updates int
}

func (s *stubScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	s.updates++
	return s, nil
}

func (s *stubScreen) View(int, int) string { return "view:" + s.title }
func (s *stubScreen) Title() string        { return s.title }
func (s *stubScreen) Close()               { s.closed++ }

func TestPushAndPop(t *testing.T) {
	home, quiz := &stubScreen{title: "Home"}, &stubScreen{title: "Quiz"}
	r := New(home, nil)

	r.Push(quiz)
	assert.Equal(t, 2, r.Depth())
	assert.Same(t, quiz, r.Active())
	assert.Equal(t, 1, quiz.inits)
	assert.Equal(t, "view:Quiz", r.View(80, 24))

	r.Pop()
	assert.Equal(t, 1, r.Depth())
	assert.Same(t, home, r.Active())
	assert.Equal(t, 1, quiz.closed)
	assert.Zero(t, home.closed)
}

func TestPopKeepsBottomScreen(t *testing.T) {
	home := &stubScreen{title: "Home"}
	r := New(home, nil)

	r.Pop()
	assert.Equal(t, 1, r.Depth())
	assert.Zero(t, home.closed)
}

func TestReplace(t *testing.T) {
	splash, home := &stubScreen{}, &stubScreen{title: "Home"}
	r := New(splash, nil)

	r.Update(ReplaceScreenMsg{Screen: home})
	assert.Equal(t, 1, r.Depth())
	assert.Same(t, home, r.Active())
	assert.Equal(t, 1, home.inits)
	assert.Equal(t, 1, splash.closed)
}

func TestReplaceOnEmptyStack(t *testing.T) {
	r := &Router{logger: New(&stubScreen{}, nil).logger}
	home := &stubScreen{title: "Home"}
	r.Replace(home)
	assert.Same(t, home, r.Active())
}

func TestNavigationMessages(t *testing.T) {
	home := &stubScreen{title: "Home"}
	r := New(home, nil)

	r.Update(PushScreenMsg{Screen: &stubScreen{title: "Profile"}})
	require.Equal(t, 2, r.Depth())
	assert.Equal(t, []string{"Home", "Profile"}, r.Trail())

	r.Update(PopScreenMsg{})
	assert.Equal(t, 1, r.Depth())
}

func TestUpdateGoesToActiveScreen(t *testing.T) {
	home, quiz := &stubScreen{title: "Home"}, &stubScreen{title: "Quiz"}
	r := New(home, nil)
	r.Push(quiz)

	r.Update(tea.KeyPressMsg{Code: 'x'})
	assert.Equal(t, 1, quiz.updates)
	assert.Zero(t, home.updates)
}

func TestTrailSkipsUntitled(t *testing.T) {
	r := New(&stubScreen{}, nil)
	r.Push(&stubScreen{title: "Home"})
	assert.Equal(t, []string{"Home"}, r.Trail())
}

func TestCloseAll(t *testing.T) {
	a, b := &stubScreen{title: "a"}, &stubScreen{title: "b"}
	r := New(a, nil)
	r.Push(b)

	r.CloseAll()
	assert.Equal(t, 1, a.closed)
	assert.Equal(t, 1, b.closed)
	assert.Equal(t, 2, r.Depth())
}

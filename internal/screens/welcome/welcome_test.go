package welcome

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathfinder/internal/router"
	"github.com/abhisek/pathfinder/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

func newSplash() (*WelcomeScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func advance(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for range n {
		_, cmd = w.Update(frameMsg{})
	}
	return cmd
}

func TestBannerAppearsOnceTrailIsDrawn(t *testing.T) {
	w, _ := newSplash()
	assert.NotContains(t, w.View(80, 24), "fits you")

	advance(w, len(trail)-1)
	assert.NotContains(t, w.View(80, 24), "fits you")

	advance(w, 1)
	view := w.View(80, 24)
	assert.Contains(t, view, "fits you")
	assert.Contains(t, view, "★")
}

func TestNarrowBanner(t *testing.T) {
	w, _ := newSplash()
	advance(w, len(trail))
	assert.Contains(t, w.View(40, 24), bannerNarrow)
	assert.NotContains(t, w.View(80, 24), bannerNarrow)
}

func TestKeypressHandsOver(t *testing.T) {
	for _, frames := range []int{0, 3, len(trail) + 5} {
		w, calls := newSplash()
		advance(w, frames)

		_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
		require.NotNil(t, cmd, "frames=%d", frames)
		msg, ok := cmd().(router.ReplaceScreenMsg)
		require.True(t, ok)
		assert.NotNil(t, msg.Screen)
		assert.Equal(t, 1, *calls)
	}
}

func TestAutoAdvance(t *testing.T) {
	w, calls := newSplash()

	cmd := advance(w, autoAdvance-1)
	require.NotNil(t, cmd)
	assert.Zero(t, *calls)

	cmd = advance(w, 1)
	require.NotNil(t, cmd)
	_, ok := cmd().(router.ReplaceScreenMsg)
	assert.True(t, ok)
	assert.Equal(t, 1, *calls)

	// stops ticking once handed over
	assert.Nil(t, advance(w, 1))
}

func TestNextScreenBuiltOnce(t *testing.T) {
	w, calls := newSplash()
	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, *calls)
	assert.Empty(t, w.Title())
}

func TestCompassCycles(t *testing.T) {
	w, _ := newSplash()
	seen := map[string]bool{}
	for range len(needle) {
		view := w.View(80, 24)
		for _, n := range needle {
			if strings.Contains(view, n) {
				seen[n] = true
			}
		}
		advance(w, 1)
	}
	assert.Len(t, seen, len(needle))
}

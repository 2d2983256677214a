// Package quiz is the screen that walks a student through the career quiz
// and shows the generated report.
package quiz

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	quizdef "github.com/abhisek/pathfinder/internal/quiz"
	"github.com/abhisek/pathfinder/internal/screen"
	"github.com/abhisek/pathfinder/internal/submission"
	"github.com/abhisek/pathfinder/internal/ui/components"
	"github.com/abhisek/pathfinder/internal/ui/layout"
)

// QuizScreen implements screen.Screen for one quiz session.
type QuizScreen struct {
	ctx     context.Context
	sess    *submission.Session
	keys    []quizdef.Key
	page    int
	choice  components.Choice
	spinner spinner.Model

	submitting bool
	errMsg     string

	viewport      viewport.Model
	renderedWidth int
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Closer = (*QuizScreen)(nil)

// New creates a quiz screen driving sess. ctx bounds every submission.
func New(ctx context.Context, sess *submission.Session) *QuizScreen {
	s := &QuizScreen{
		ctx:      ctx,
		sess:     sess,
		keys:     sess.Definition().Keys(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport: viewport.New(),
	}
	s.loadPage()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return s.sess.Definition().Title
}

// Close abandons the session; an in-flight submission is cancelled.
func (s *QuizScreen) Close() {
	s.sess.Close()
	s.submitting = false
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.submitting:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Cancel"},
		}
	case s.sess.Phase() == submission.PhaseSuccess:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "R", Description: "Retake"},
			{Key: "Esc", Description: "Close"},
		}
	default:
		return []layout.KeyHint{
			{Key: "1-9", Description: "Answer"},
			{Key: "←→", Description: "Question"},
			{Key: "S", Description: "Submit"},
			{Key: "Esc", Description: "Close"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		return s.handleSubmitDone(msg)

	case spinner.TickMsg:
		if !s.submitting {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case components.ChoiceMadeMsg:
		return s.handleChoice(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.submitting {
		return s, nil
	}

	if s.sess.Phase() == submission.PhaseSuccess {
		switch msg.String() {
		case "r":
			if err := s.sess.Retake(); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			s.errMsg = ""
			s.renderedWidth = 0
			s.page = 0
			s.loadPage()
			return s, nil
		}
		var cmd tea.Cmd
		s.viewport, cmd = s.viewport.Update(msg)
		return s, cmd
	}

	switch msg.String() {
	case "tab", "right", "l":
		s.move(1)
		return s, nil
	case "shift+tab", "left", "h":
		s.move(-1)
		return s, nil
	case "s":
		return s, s.submit()
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	return s, cmd
}

func (s *QuizScreen) handleChoice(msg components.ChoiceMadeMsg) (screen.Screen, tea.Cmd) {
	k := s.keys[s.page]
	if err := s.sess.Select(k.Section, k.Question, msg.Option); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.errMsg = ""
	s.choice.Chosen = msg.Option
	if s.page < len(s.keys)-1 {
		s.move(1)
	}
	return s, nil
}

func (s *QuizScreen) submit() tea.Cmd {
	s.submitting = true
	s.errMsg = ""
	ctx, sess := s.ctx, s.sess
	return tea.Batch(
		s.spinner.Tick,
		func() tea.Msg {
			res, err := sess.Submit(ctx)
			return submitDoneMsg{Result: res, Err: err}
		},
	)
}

func (s *QuizScreen) handleSubmitDone(msg submitDoneMsg) (screen.Screen, tea.Cmd) {
	if errors.Is(msg.Err, submission.ErrSessionClosed) {
		return s, nil
	}
	s.submitting = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		var verr *quizdef.ValidationError
		if errors.As(msg.Err, &verr) {
			s.jumpToFirstUnanswered()
		}
		return s, nil
	}
	s.errMsg = ""
	s.renderedWidth = 0
	return s, nil
}

func (s *QuizScreen) move(delta int) {
	next := s.page + delta
	if next < 0 || next >= len(s.keys) {
		return
	}
	s.page = next
	s.loadPage()
}

func (s *QuizScreen) jumpToFirstUnanswered() {
	for i, k := range s.keys {
		if _, ok := s.sess.Answer(k); !ok {
			s.page = i
			s.loadPage()
			return
		}
	}
}

func (s *QuizScreen) loadPage() {
	if len(s.keys) == 0 {
		return
	}
	k := s.keys[s.page]
	q, _ := s.sess.Definition().Question(k)
	chosen, _ := s.sess.Answer(k)
	s.choice = components.NewChoice(q.Text, q.Options, chosen)
}

package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	quizdef "github.com/abhisek/pathfinder/internal/quiz"
	"github.com/abhisek/pathfinder/internal/screen"
	"github.com/abhisek/pathfinder/internal/submission"
)

const goodReport = `### Conclusion
You are curious and methodical.

### Career Recommendations
**Data Scientist:** You like patterns.
**Architect:** You like building things.
**Educator:** You explain well.
**Nurse:** You care for people.`

type fakeGenerator struct {
	text  string
	err   error
	calls   int
	block   chan struct{}
	started chan struct{}
}

func (f *fakeGenerator) Generate(ctx context.Context, _ string) (string, error) {
	f.calls++
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func testDefinition() *quizdef.Definition {
	return &quizdef.Definition{
		Title: "Career Quiz",
		Sections: []quizdef.Section{
			{Title: "Interests", Questions: []quizdef.Question{
				{Text: "Favourite subject?", Options: []string{"Math", "Art", "Biology"}},
				{Text: "Weekend plan?", Options: []string{"Build", "Read"}},
			}},
			{Title: "Style", Questions: []quizdef.Question{
				{Text: "Team or solo?", Options: []string{"Team", "Solo"}},
			}},
		},
	}
}

func newTestScreen(gen *fakeGenerator) (*QuizScreen, *submission.Session) {
	sess := submission.New(testDefinition(), submission.Deps{Generator: gen})
	return New(context.Background(), sess), sess
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// drive sends msg and feeds back every message produced by the resulting
// commands, skipping spinner ticks.
func drive(t *testing.T, s screen.Screen, msg tea.Msg) screen.Screen {
	t.Helper()
	s, cmd := s.Update(msg)
	for _, m := range collect(cmd) {
		if _, ok := m.(spinner.TickMsg); ok {
			continue
		}
		s = drive(t, s, m)
	}
	return s
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func answerAll(t *testing.T, s *QuizScreen) {
	t.Helper()
	for range s.keys {
		drive(t, s, keyPress('1'))
	}
}

func TestNumberKeyRecordsAnswerAndAdvances(t *testing.T) {
	s, sess := newTestScreen(&fakeGenerator{})

	drive(t, s, keyPress('2'))

	got, ok := sess.Answer(quizdef.Key{Section: 0, Question: 0})
	if !ok || got != "Art" {
		t.Fatalf("answer = %q, %v; want Art", got, ok)
	}
	if s.page != 1 {
		t.Errorf("page = %d, want 1 after answering", s.page)
	}
	if sess.Progress().Answered != 1 {
		t.Errorf("answered = %d, want 1", sess.Progress().Answered)
	}
}

func TestNavigationStaysInRange(t *testing.T) {
	s, _ := newTestScreen(&fakeGenerator{})

	drive(t, s, specialKey(tea.KeyLeft))
	if s.page != 0 {
		t.Fatalf("page = %d, want 0", s.page)
	}
	for i := 0; i < 5; i++ {
		drive(t, s, specialKey(tea.KeyTab))
	}
	if s.page != len(s.keys)-1 {
		t.Errorf("page = %d, want last page %d", s.page, len(s.keys)-1)
	}
}

func TestChangingAnswerKeepsCountAndShowsChoice(t *testing.T) {
	s, sess := newTestScreen(&fakeGenerator{})

	drive(t, s, keyPress('1'))
	drive(t, s, specialKey(tea.KeyLeft))
	drive(t, s, keyPress('3'))

	got, _ := sess.Answer(quizdef.Key{Section: 0, Question: 0})
	if got != "Biology" {
		t.Errorf("answer = %q, want Biology", got)
	}
	if sess.Progress().Answered != 1 {
		t.Errorf("answered = %d, want 1", sess.Progress().Answered)
	}
}

func TestSubmitIncompleteShowsErrorWithoutCallingService(t *testing.T) {
	gen := &fakeGenerator{text: goodReport}
	s, sess := newTestScreen(gen)

	drive(t, s, keyPress('1'))
	drive(t, s, keyPress('s'))

	if gen.calls != 0 {
		t.Errorf("generator called %d times, want 0", gen.calls)
	}
	if sess.Phase() != submission.PhaseIdle {
		t.Errorf("phase = %v, want idle", sess.Phase())
	}
	if !strings.Contains(s.errMsg, "1") || !strings.Contains(s.errMsg, "3") {
		t.Errorf("error %q should mention answered and total counts", s.errMsg)
	}
	if s.page != 1 {
		t.Errorf("page = %d, want first unanswered question", s.page)
	}
}

func TestSelectClearsError(t *testing.T) {
	s, _ := newTestScreen(&fakeGenerator{})

	drive(t, s, keyPress('s'))
	if s.errMsg == "" {
		t.Fatal("expected validation error")
	}
	drive(t, s, keyPress('1'))
	if s.errMsg != "" {
		t.Errorf("error = %q, want cleared after select", s.errMsg)
	}
}

func TestSubmitSuccessShowsReport(t *testing.T) {
	gen := &fakeGenerator{text: goodReport}
	s, sess := newTestScreen(gen)
	answerAll(t, s)

	drive(t, s, keyPress('s'))

	if sess.Phase() != submission.PhaseSuccess {
		t.Fatalf("phase = %v, want success (err %v)", sess.Phase(), sess.Err())
	}
	if s.submitting {
		t.Error("screen still marked as submitting")
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "Nurse") {
		t.Error("expected recommendation title in result view")
	}
}

func TestSubmitShowsSpinnerUntilDone(t *testing.T) {
	s, _ := newTestScreen(&fakeGenerator{text: goodReport})
	answerAll(t, s)

	_, cmd := s.Update(keyPress('s'))
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	if !s.submitting {
		t.Fatal("expected submitting flag set")
	}
	if !strings.Contains(s.View(100, 30), "Generating") {
		t.Error("expected progress message while submitting")
	}

	// Keys are ignored while a request is running.
	if _, cmd := s.Update(keyPress('s')); cmd != nil {
		t.Error("expected second submit to be ignored")
	}
}

func TestServiceErrorAllowsRetry(t *testing.T) {
	gen := &fakeGenerator{err: &submission.ExternalServiceError{StatusCode: 503, Message: "overloaded"}}
	s, sess := newTestScreen(gen)
	answerAll(t, s)

	drive(t, s, keyPress('s'))
	if sess.Phase() != submission.PhaseFailed {
		t.Fatalf("phase = %v, want failed", sess.Phase())
	}
	if !strings.Contains(s.errMsg, "overloaded") {
		t.Errorf("error = %q, want service message", s.errMsg)
	}

	gen.err = nil
	gen.text = goodReport
	drive(t, s, keyPress('s'))
	if sess.Phase() != submission.PhaseSuccess {
		t.Errorf("phase = %v, want success after retry", sess.Phase())
	}
	if gen.calls != 2 {
		t.Errorf("calls = %d, want 2", gen.calls)
	}
}

func TestMalformedReportShowsError(t *testing.T) {
	s, sess := newTestScreen(&fakeGenerator{text: "### Conclusion\nonly this"})
	answerAll(t, s)

	drive(t, s, keyPress('s'))

	var merr *submission.MalformedResponseError
	if !errors.As(sess.Err(), &merr) {
		t.Fatalf("err = %v, want MalformedResponseError", sess.Err())
	}
	if s.errMsg == "" {
		t.Error("expected error line")
	}
}

func TestRetakeResetsQuiz(t *testing.T) {
	s, sess := newTestScreen(&fakeGenerator{text: goodReport})
	answerAll(t, s)
	drive(t, s, keyPress('s'))

	// Number keys do not change locked answers.
	drive(t, s, keyPress('2'))
	got, _ := sess.Answer(quizdef.Key{Section: 0, Question: 0})
	if got != "Math" {
		t.Fatalf("answer changed after success: %q", got)
	}

	drive(t, s, keyPress('r'))

	if sess.Phase() != submission.PhaseIdle {
		t.Errorf("phase = %v, want idle", sess.Phase())
	}
	if sess.Progress().Answered != 0 {
		t.Errorf("answered = %d, want 0", sess.Progress().Answered)
	}
	if s.page != 0 || s.choice.Chosen != "" {
		t.Errorf("expected first page with no choice, got page %d chosen %q", s.page, s.choice.Chosen)
	}
}

func TestCloseDiscardsInFlightResult(t *testing.T) {
	gen := &fakeGenerator{text: goodReport, block: make(chan struct{}), started: make(chan struct{})}
	s, sess := newTestScreen(gen)
	answerAll(t, s)

	_, cmd := s.Update(keyPress('s'))
	done := make(chan []tea.Msg)
	go func() { done <- collect(cmd) }()

	<-gen.started
	s.Close()
	msgs := <-done

	for _, m := range msgs {
		if _, ok := m.(spinner.TickMsg); ok {
			continue
		}
		s.Update(m)
	}
	if sess.Phase() != submission.PhaseIdle {
		t.Errorf("phase = %v, want idle", sess.Phase())
	}
	if s.errMsg != "" {
		t.Errorf("error = %q, want none for closed session", s.errMsg)
	}
}

func TestResultMarkdown(t *testing.T) {
	md := resultMarkdown(nil)
	if md != "" {
		t.Errorf("nil result = %q, want empty", md)
	}

	s, sess := newTestScreen(&fakeGenerator{text: goodReport})
	answerAll(t, s)
	drive(t, s, keyPress('s'))

	md = resultMarkdown(sess.Result())
	for _, want := range []string{"### Conclusion", "### Career Recommendations", "- **Nurse:** You care for people."} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestKeyHintsFollowPhase(t *testing.T) {
	s, _ := newTestScreen(&fakeGenerator{text: goodReport})
	if !hasHint(s, "Submit") {
		t.Error("expected submit hint while answering")
	}
	answerAll(t, s)
	drive(t, s, keyPress('s'))
	if !hasHint(s, "Retake") {
		t.Error("expected retake hint after success")
	}
}

func hasHint(s *QuizScreen, desc string) bool {
	for _, h := range s.KeyHints() {
		if h.Description == desc {
			return true
		}
	}
	return false
}

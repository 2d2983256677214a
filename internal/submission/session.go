// Package submission drives a quiz from answer collection through report
// generation and the follow-up profile sync.
package submission

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/pathfinder/internal/quiz"
	"github.com/abhisek/pathfinder/internal/report"
)

// Deps are the collaborators of a Session. Generator is required.
type Deps struct {
	Generator Generator
	Syncer    ProfileSyncer
	User      UserSource
	Logger    *zap.Logger
	Config    Config
}

// Session owns one user's pass through the quiz. All methods are safe for
// concurrent use; at most one submission runs at a time.
type Session struct {
	def    *quiz.Definition
	gen    Generator
	syncer ProfileSyncer
	user   UserSource
	logger *zap.Logger
	cfg    Config

	mu      sync.Mutex
	phase   Phase
	answers *quiz.AnswerSet
	result  *report.Result
	raw     string
	err     error
	attempt string
	epoch   uint64
	cancel  context.CancelFunc

	syncs sync.WaitGroup
}

// New creates an idle session for def.
func New(def *quiz.Definition, deps Deps) *Session {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		def:     def,
		gen:     deps.Generator,
		syncer:  deps.Syncer,
		user:    deps.User,
		logger:  logger,
		cfg:     deps.Config,
		answers: quiz.NewAnswerSet(def),
	}
}

// Definition returns the quiz being answered.
func (s *Session) Definition() *quiz.Definition {
	return s.def
}

// Select records an answer and clears any displayed error.
func (s *Session) Select(section, question int, option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhaseSubmitting:
		return ErrSubmissionInFlight
	case PhaseSuccess:
		return ErrAnswersLocked
	}

	if err := s.answers.Select(section, question, option); err != nil {
		return err
	}
	s.err = nil
	return nil
}

// Answer returns the selected option for k.
func (s *Session) Answer(k quiz.Key) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Answer(k)
}

// Progress returns the current answered/total counts.
func (s *Session) Progress() quiz.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Progress()
}

// Phase returns the current state.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Result returns the parsed report, or nil unless the phase is PhaseSuccess.
func (s *Session) Result() *report.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Raw returns the unparsed report text of a successful submission.
func (s *Session) Raw() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw
}

// Err returns the error to display, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Submit validates the answers, requests a report and parses it.
// It is allowed from PhaseIdle and PhaseFailed.
func (s *Session) Submit(ctx context.Context) (*report.Result, error) {
	s.mu.Lock()
	switch s.phase {
	case PhaseSubmitting:
		s.mu.Unlock()
		return nil, ErrSubmissionInFlight
	case PhaseSuccess:
		s.mu.Unlock()
		return nil, ErrAlreadySubmitted
	}

	if err := quiz.ValidateComplete(s.def, s.answers); err != nil {
		s.err = err
		s.mu.Unlock()
		return nil, err
	}

	prompt := quiz.BuildPrompt(s.def, s.answers)
	s.phase = PhaseSubmitting
	s.err = nil
	s.raw = ""
	s.result = nil
	s.attempt = uuid.NewString()
	attempt, epoch := s.attempt, s.epoch

	var cancel context.CancelFunc
	if s.cfg.RequestTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	log := s.logger.With(zap.String("attempt", attempt))
	log.Info("submitting quiz", zap.Int("prompt_bytes", len(prompt)))

	raw, genErr := s.gen.Generate(ctx, prompt)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		log.Info("discarding report for closed session")
		return nil, ErrSessionClosed
	}
	s.cancel = nil

	if genErr != nil {
		err := asExternal(genErr)
		log.Warn("report generation failed", zap.Error(err))
		s.fail(err)
		return nil, err
	}

	if raw == "" {
		raw = NoResponseText
	}
	res := report.Parse(raw)
	if !res.Complete() {
		err := &MalformedResponseError{
			MissingConclusion:      res.Conclusion == "",
			MissingRecommendations: res.Recommendations == "",
		}
		log.Warn("report could not be parsed", zap.Error(err), zap.Int("raw_bytes", len(raw)))
		s.fail(err)
		return nil, err
	}

	s.phase = PhaseSuccess
	s.result = res
	s.raw = raw
	log.Info("report generated", zap.Strings("careers", res.Titles))

	s.startSync(log, res)
	return res, nil
}

// Retake discards answers, report and error and returns to PhaseIdle.
func (s *Session) Retake() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseSubmitting {
		return ErrSubmissionInFlight
	}
	s.reset()
	return nil
}

// Close abandons the session from any phase. An in-flight request is
// cancelled and its result discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.epoch++
	s.reset()
}

// WaitForSync blocks until all detached profile syncs have finished.
func (s *Session) WaitForSync() {
	s.syncs.Wait()
}

func (s *Session) reset() {
	s.phase = PhaseIdle
	s.answers.Reset()
	s.result = nil
	s.raw = ""
	s.err = nil
	s.attempt = ""
}

func (s *Session) fail(err error) {
	s.phase = PhaseFailed
	s.err = err
	s.raw = ""
	s.result = nil
}

// startSync pushes the report summary to the profile in the background.
// The sync is not awaited and its outcome never touches session state.
func (s *Session) startSync(log *zap.Logger, res *report.Result) {
	if s.syncer == nil {
		return
	}
	var email string
	if s.user != nil {
		email = s.user.CurrentEmail()
	}
	if email == "" {
		log.Warn("skipping profile sync: no signed-in user")
		return
	}

	update := ProfileUpdate{
		Email:           email,
		Conclusion:      res.Conclusion,
		Recommendations: append([]string(nil), res.Titles...),
	}
	syncer, timeout := s.syncer, s.cfg.SyncTimeout

	s.syncs.Add(1)
	go func() {
		defer s.syncs.Done()
		if err := runSync(syncer, timeout, update); err != nil {
			log.Warn("profile sync failed", zap.Error(&SecondarySyncError{Email: email, Err: err}))
			return
		}
		log.Debug("profile synced", zap.String("email", email))
	}()
}

func runSync(syncer ProfileSyncer, timeout time.Duration, update ProfileUpdate) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return syncer.SyncProfile(ctx, update)
}

func asExternal(err error) *ExternalServiceError {
	var ext *ExternalServiceError
	if errors.As(err, &ext) {
		return ext
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &ExternalServiceError{Message: "timed out waiting for the generation service", Err: err}
	}
	return &ExternalServiceError{Message: err.Error(), Err: err}
}

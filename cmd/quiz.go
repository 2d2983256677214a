package cmd

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/pathfinder/internal/app"
	"github.com/abhisek/pathfinder/internal/screens/home"
	"github.com/abhisek/pathfinder/internal/submission"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take the career quiz in the terminal (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd)
	},
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, quizCmd} {
		c.Flags().Bool("no-splash", false, "Skip the welcome animation")
		c.Flags().String("email", "", "Email used to save the report (overrides user.email)")
	}
}

// runQuiz builds the session collaborators and launches the TUI.
func runQuiz(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if email, _ := cmd.Flags().GetString("email"); email != "" {
		cfg.User.Email = email
	}

	logger, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	def, err := loadQuiz(cfg)
	if err != nil {
		return err
	}

	svc, err := buildServices(ctx, cfg, logger, true)
	if err != nil {
		return err
	}
	defer svc.Close()

	var (
		mu       sync.Mutex
		sessions []*submission.Session
	)
	deps := home.Deps{
		Ctx:      ctx,
		Profiles: svc.Profiles,
		Email:    cfg.User.Email,
	}
	if svc.Generator != nil {
		deps.NewSession = func() *submission.Session {
			s := submission.New(def, submission.Deps{
				Generator: svc.Generator,
				Syncer:    svc.Syncer,
				User:      submission.StaticUser(cfg.User.Email),
				Logger:    logger.Named("submission"),
				Config:    cfg.Submission(),
			})
			mu.Lock()
			sessions = append(sessions, s)
			mu.Unlock()
			return s
		}
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), svc.GeneratorErr)
		fmt.Fprintln(cmd.ErrOrStderr(), "The quiz is disabled until a provider or generation.url is configured.")
	}

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	runErr := app.Run(ctx, app.Options{
		Home:       deps,
		SkipSplash: noSplash,
		Logger:     logger,
	})

	mu.Lock()
	defer mu.Unlock()
	for _, s := range sessions {
		s.WaitForSync()
	}
	logger.Debug("profile syncs finished", zap.Int("sessions", len(sessions)))
	return runErr
}

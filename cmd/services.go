package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/pathfinder/internal/config"
	"github.com/abhisek/pathfinder/internal/llm"
	"github.com/abhisek/pathfinder/internal/quiz"
	"github.com/abhisek/pathfinder/internal/remote"
	"github.com/abhisek/pathfinder/internal/screens/profile"
	"github.com/abhisek/pathfinder/internal/store"
	"github.com/abhisek/pathfinder/internal/submission"
)

// services are the collaborators of a quiz session. Remote URLs in the
// config select the HTTP clients; otherwise the LLM provider and the local
// database are used.
type services struct {
	Generator submission.Generator
	Syncer    submission.ProfileSyncer
	Profiles  profile.Loader

	// GeneratorErr explains why Generator is nil.
	GeneratorErr error

	store *store.Store
}

func (s *services) Close() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

// buildServices wires the profile collaborators and, when withGenerator is
// set, the report generator.
func buildServices(ctx context.Context, cfg *config.Config, logger *zap.Logger, withGenerator bool) (*services, error) {
	svc := &services{}

	needStore := cfg.Profile.URL == "" || (withGenerator && cfg.Generation.URL == "")
	if needStore {
		st, err := openStore(cfg)
		if err != nil {
			return nil, err
		}
		svc.store = st
	}

	switch {
	case !withGenerator:
	case cfg.Generation.URL != "":
		svc.Generator = remote.NewGenerationClient(cfg.Generation.URL)
		logger.Info("using remote generation service", zap.String("url", cfg.Generation.URL))
	default:
		provider, err := llm.NewProviderFromEnv(ctx, svc.store.EventRepo(), logger)
		if err != nil {
			svc.GeneratorErr = err
			logger.Warn("report generation unavailable", zap.Error(err))
		} else {
			svc.Generator = llm.NewGenerator(provider)
			logger.Info("using local LLM provider", zap.String("model", provider.ModelID()))
		}
	}

	if cfg.Profile.URL != "" {
		client := remote.NewProfileClient(cfg.Profile.URL)
		svc.Syncer = client
		svc.Profiles = client
	} else {
		repo := svc.store.ProfileRepo()
		svc.Syncer = store.ProfileSyncer{Repo: repo}
		svc.Profiles = repo
	}

	return svc, nil
}

// loadQuiz returns the configured quiz definition or the built-in one.
func loadQuiz(cfg *config.Config) (*quiz.Definition, error) {
	if cfg.Quiz.Path == "" {
		return quiz.Default()
	}
	def, err := quiz.LoadFile(cfg.Quiz.Path)
	if err != nil {
		return nil, fmt.Errorf("load quiz %s: %w", cfg.Quiz.Path, err)
	}
	return def, nil
}

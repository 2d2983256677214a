package cmd

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/pathfinder/internal/llm"
	"github.com/abhisek/pathfinder/internal/server"
	"github.com/abhisek/pathfinder/internal/submission"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST backend for report generation and profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		logger, err := newLogger(cfg, false)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		if cfg.Log.Level != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		var gen submission.Generator
		provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo(), logger)
		if err != nil {
			logger.Warn("LLM provider not configured; /api/generate will return 503", zap.Error(err))
		} else {
			gen = llm.NewGenerator(provider)
			logger.Info("LLM provider ready", zap.String("model", provider.ModelID()))
		}

		srv := server.New(server.Deps{
			Generator: gen,
			Profiles:  st.ProfileRepo(),
			Logger:    logger,
		})
		return srv.ListenAndServe(ctx, cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}

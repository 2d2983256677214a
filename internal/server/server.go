// Package server exposes report generation and profile storage over HTTP.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/pathfinder/internal/store"
	"github.com/abhisek/pathfinder/internal/submission"
)

// Deps are the collaborators of a Server.
type Deps struct {
	Generator submission.Generator
	Profiles  store.ProfileRepo
	Logger    *zap.Logger
}

// Server is the REST backend used by the TUI's remote mode.
type Server struct {
	gen      submission.Generator
	profiles store.ProfileRepo
	logger   *zap.Logger
	engine   *gin.Engine
}

// New builds the gin engine and registers all routes.
func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		gen:      deps.Generator,
		profiles: deps.Profiles,
		logger:   logger.Named("http"),
		engine:   gin.New(),
	}

	_ = s.engine.SetTrustedProxies(nil)
	s.engine.Use(RequestID(), Logger(s.logger), Recovery(s.logger), Cors())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api")
	{
		api.POST("/generate", s.handleGenerate)
		api.PATCH("/profile", s.handleUpdateProfile)
		api.GET("/profile/:email", s.handleGetProfile)
	}
}

// Handler returns the HTTP handler for use with http.Server or httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

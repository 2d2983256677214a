package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/pathfinder/internal/store"
	"github.com/abhisek/pathfinder/internal/submission"
)

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type profileRequest struct {
	Email           string   `json:"email"`
	Conclusion      string   `json:"conclusion"`
	Recommendations []string `json:"recommendations"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}
	if s.gen == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "report generation is not configured"})
		return
	}

	text, err := s.gen.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		_ = c.Error(err)
		msg := err.Error()
		var ext *submission.ExternalServiceError
		if errors.As(err, &ext) {
			msg = ext.Message
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": text})
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	profile, err := s.profiles.Upsert(c.Request.Context(), store.ProfileData{
		Email:           req.Email,
		Conclusion:      req.Conclusion,
		Recommendations: req.Recommendations,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
		return
	}

	s.logger.Debug("profile updated",
		zap.String("email", profile.Email),
		zap.Int("reports", profile.Reports),
	)
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (s *Server) handleGetProfile(c *gin.Context) {
	profile, err := s.profiles.Get(c.Request.Context(), c.Param("email"))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

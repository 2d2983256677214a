package llm

import (
	"context"
	"errors"
	"net/http"

	"github.com/abhisek/pathfinder/internal/submission"
)

// PurposeCareerReport labels report generation requests in the event log.
const PurposeCareerReport = "career-report"

// ProviderGenerator adapts a Provider to submission.Generator. The quiz
// prompt is sent as the only user message.
type ProviderGenerator struct {
	Provider    Provider
	MaxTokens   int
	Temperature float64
}

// NewGenerator returns a ProviderGenerator with report-sized defaults.
func NewGenerator(p Provider) *ProviderGenerator {
	return &ProviderGenerator{Provider: p, MaxTokens: 1500, Temperature: 0.7}
}

// Generate implements submission.Generator.
func (g *ProviderGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx = WithPurpose(ctx, PurposeCareerReport)
	resp, err := g.Provider.Generate(ctx, Request{
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		MaxTokens:   g.MaxTokens,
		Temperature: g.Temperature,
	})
	if err != nil {
		return "", toServiceError(err)
	}
	return resp.Text, nil
}

// toServiceError maps provider failures onto the status codes a remote
// generation service would have answered with.
func toServiceError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	status := http.StatusBadGateway
	var rl *ErrRateLimit
	var unavail *ErrProviderUnavailable
	switch {
	case errors.As(err, &rl):
		status = http.StatusTooManyRequests
	case errors.As(err, &unavail):
		status = http.StatusServiceUnavailable
	}
	return &submission.ExternalServiceError{StatusCode: status, Message: err.Error(), Err: err}
}

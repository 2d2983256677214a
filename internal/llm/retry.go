package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// retryClass says how a failed attempt may be repeated.
type retryClass int

const (
	retryNever retryClass = iota
	retryOnce
	retryAlways
)

// classify maps a provider error onto a retryClass. Unknown errors are
// treated as transient network failures.
func classify(err error) retryClass {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return retryNever
	case errors.As(err, new(*ErrMaxTokensExceeded)):
		return retryNever
	case errors.As(err, new(*ErrInvalidResponse)):
		return retryOnce
	default:
		return retryAlways
	}
}

// delay returns the pause before attempt+1. A rate limit carrying a
// RetryAfter hint wins over the computed backoff.
func (c RetryConfig) delay(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	base := math.Min(
		float64(c.InitialWait)*math.Pow(c.Multiplier, float64(attempt)),
		float64(c.MaxWait),
	)
	// +/-20% jitter
	d := base + base*0.2*(2*rand.Float64()-1)
	return time.Duration(math.Max(d, 0))
}

type retryingProvider struct {
	next   Provider
	cfg    RetryConfig
	logger *zap.Logger
}

// WithRetry repeats transient failures of p with exponential backoff.
// Invalid responses are retried at most once.
func WithRetry(p Provider, cfg RetryConfig, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &retryingProvider{next: p, cfg: cfg, logger: logger}
}

func (r *retryingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.cfg.MaxAttempts, 1)
	invalidSeen := false

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		var resp *Response
		resp, err = r.next.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch classify(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		}
		if attempt == attempts-1 {
			break
		}

		wait := r.cfg.delay(attempt, err)
		r.logger.Debug("retrying llm request",
			zap.String("model", r.next.ModelID()),
			zap.Int("attempt", attempt+1),
			zap.Duration("wait", wait),
			zap.Error(err))

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	return nil, err
}

func (r *retryingProvider) ModelID() string { return r.next.ModelID() }

package submission

import (
	"context"
	"time"
)

// Phase is the state of a quiz submission.
type Phase int

const (
	PhaseIdle       Phase = iota // Collecting answers
	PhaseSubmitting              // Waiting for the generation service
	PhaseSuccess                 // Report parsed and available
	PhaseFailed                  // Last submission failed; retry allowed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSuccess:
		return "success"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Generator sends a prompt to a text-generation service and returns the
// raw report text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ProfileUpdate is the summary pushed to the user's profile after a
// successful report.
type ProfileUpdate struct {
	Email           string   `json:"email"`
	Conclusion      string   `json:"conclusion"`
	Recommendations []string `json:"recommendations"`
}

// ProfileSyncer pushes a ProfileUpdate to wherever profiles live.
type ProfileSyncer interface {
	SyncProfile(ctx context.Context, update ProfileUpdate) error
}

// UserSource supplies the signed-in user's email.
type UserSource interface {
	CurrentEmail() string
}

// StaticUser is a UserSource with a fixed email.
type StaticUser string

// CurrentEmail returns the fixed email.
func (u StaticUser) CurrentEmail() string { return string(u) }

// Config holds submission timeouts.
type Config struct {
	// RequestTimeout bounds a single generation request. Zero disables it.
	RequestTimeout time.Duration

	// SyncTimeout bounds the detached profile sync.
	SyncTimeout time.Duration
}

// DefaultConfig returns the default timeouts.
func DefaultConfig() Config {
	return Config{
		RequestTimeout: 90 * time.Second,
		SyncTimeout:    15 * time.Second,
	}
}

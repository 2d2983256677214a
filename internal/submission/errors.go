package submission

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSubmissionInFlight is returned when a submission is already running.
	ErrSubmissionInFlight = errors.New("a submission is already in progress")

	// ErrAnswersLocked is returned when answers are changed after a report
	// has been generated.
	ErrAnswersLocked = errors.New("answers are locked; retake the quiz to change them")

	// ErrAlreadySubmitted is returned when submitting again after success.
	ErrAlreadySubmitted = errors.New("report already generated; retake the quiz to submit again")

	// ErrSessionClosed is returned to a submission whose session was closed
	// while the request was in flight.
	ErrSessionClosed = errors.New("quiz session closed")
)

// NoResponseText is used when the generation service returns no text.
const NoResponseText = "No response from AI."

// ExternalServiceError reports a failed call to the generation service:
// a non-2xx status, an error field in the payload, or a transport failure
// (StatusCode 0).
type ExternalServiceError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ExternalServiceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("generation service error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("generation service error: %s", e.Message)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// MalformedResponseError reports a successful response whose text did not
// contain both report sections.
type MalformedResponseError struct {
	MissingConclusion      bool
	MissingRecommendations bool
}

func (e *MalformedResponseError) Error() string {
	var missing []string
	if e.MissingConclusion {
		missing = append(missing, "conclusion")
	}
	if e.MissingRecommendations {
		missing = append(missing, "career recommendations")
	}
	return fmt.Sprintf("could not read the generated report: missing %s; please try again", strings.Join(missing, " and "))
}

// SecondarySyncError wraps a failed profile update. It is only logged.
type SecondarySyncError struct {
	Email string
	Err   error
}

func (e *SecondarySyncError) Error() string {
	return fmt.Sprintf("profile sync for %s failed: %v", e.Email, e.Err)
}

func (e *SecondarySyncError) Unwrap() error { return e.Err }

package quiz

import "fmt"

// ValidationKind classifies a ValidationError.
type ValidationKind string

const (
	// KindIncomplete means at least one question has no answer.
	KindIncomplete ValidationKind = "incomplete"
)

// ValidationError blocks submission of an answer set.
type ValidationError struct {
	Kind     ValidationKind
	Answered int
	Total    int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("please answer all questions before submitting (%d of %d answered)", e.Answered, e.Total)
}

// ValidateComplete returns a *ValidationError unless every question in def
// has an answer in answers.
func ValidateComplete(def *Definition, answers *AnswerSet) error {
	answered := 0
	for _, k := range def.Keys() {
		if _, ok := answers.Answer(k); ok {
			answered++
		}
	}
	total := def.Total()
	if answered < total {
		return &ValidationError{
			Kind:     KindIncomplete,
			Answered: answered,
			Total:    total,
		}
	}
	return nil
}

package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownQuestion is returned when a selection addresses a question
	// that does not exist in the definition.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrUnknownOption is returned when a selection names an option the
	// question does not offer.
	ErrUnknownOption = errors.New("option not offered by question")
)

// Progress reports how many questions have an answer.
type Progress struct {
	Answered int
	Total    int
}

// Percent returns the completion ratio in [0, 1].
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Answered) / float64(p.Total)
}

// Complete returns true when every question has an answer.
func (p Progress) Complete() bool {
	return p.Answered >= p.Total
}

// AnswerSet holds at most one selected option per question.
// It is not safe for concurrent use; the owning session serializes access.
type AnswerSet struct {
	def     *Definition
	answers map[Key]string
}

// NewAnswerSet creates an empty answer set for def.
func NewAnswerSet(def *Definition) *AnswerSet {
	return &AnswerSet{
		def:     def,
		answers: make(map[Key]string),
	}
}

// Select records option as the answer to the given question, replacing
// any earlier selection for the same question.
func (a *AnswerSet) Select(section, question int, option string) error {
	k := Key{Section: section, Question: question}
	q, ok := a.def.Question(k)
	if !ok {
		return fmt.Errorf("%w: section %d question %d", ErrUnknownQuestion, section, question)
	}
	if !q.HasOption(option) {
		return fmt.Errorf("%w: %q", ErrUnknownOption, option)
	}
	a.answers[k] = option
	return nil
}

// Answer returns the selected option for k.
func (a *AnswerSet) Answer(k Key) (string, bool) {
	v, ok := a.answers[k]
	return v, ok
}

// Len returns the number of answered questions.
func (a *AnswerSet) Len() int {
	return len(a.answers)
}

// Progress returns the current answered/total counts.
func (a *AnswerSet) Progress() Progress {
	return Progress{
		Answered: len(a.answers),
		Total:    a.def.Total(),
	}
}

// Reset discards all answers.
func (a *AnswerSet) Reset() {
	clear(a.answers)
}

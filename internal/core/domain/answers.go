package domain

import (
	"errors"
	"fmt"
)

// MinAnswers is the smallest answer set a question may carry.
const MinAnswers = 2

var ErrInvalidQuestion = errors.New("invalid question")

var (
	ErrNotEnoughAnswers       = fmt.Errorf("%w: at least %d answers required", ErrInvalidQuestion, MinAnswers)
	ErrMultipleCorrectAnswers = fmt.Errorf("%w: more than one correct answer", ErrInvalidQuestion)
	ErrNoCorrectAnswer        = fmt.Errorf("%w: no correct answer", ErrInvalidQuestion)
)

// ParseAnswers checks the answer-set rules in a fixed order and returns the accepted
// answers in input order:
//  1. at least MinAnswers answers;
//  2. scanning in order, a second correct answer is rejected as soon as it is seen;
//  3. after the scan, exactly one answer must have been correct.
func ParseAnswers(in []Answer) ([]Answer, error) {
	if len(in) < MinAnswers {
		return nil, ErrNotEnoughAnswers
	}

	parsed := make([]Answer, 0, len(in))
	hasCorrect := false
	for _, a := range in {
		if a.IsCorrect && hasCorrect {
			return nil, ErrMultipleCorrectAnswers
		}
		hasCorrect = hasCorrect || a.IsCorrect
		parsed = append(parsed, Answer{Title: a.Title, IsCorrect: a.IsCorrect})
	}

	if !hasCorrect {
		return nil, ErrNoCorrectAnswer
	}
	return parsed, nil
}

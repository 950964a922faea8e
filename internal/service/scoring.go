package service

import (
	"fmt"
	"strings"

	"wadayano_backend/internal/model"
	"wadayano_backend/internal/util"
)

// AttemptResponse carries a submitted answer. Exactly one field is populated,
// matching the question type.
type AttemptResponse struct {
	OptionID    string
	ShortAnswer string
}

// EvaluateAnswer computes the correctness of a response against a question.
// Deterministic and side-effect free; correctness is computed exactly once per
// attempt, at recording time.
func EvaluateAnswer(q *model.Question, resp AttemptResponse) (bool, error) {
	switch q.Type {
	case model.MultipleChoice:
		return evaluateMultipleChoice(q, resp.OptionID)
	case model.ShortAnswer:
		return evaluateShortAnswer(q, resp.ShortAnswer), nil
	default:
		return false, fmt.Errorf("%w: %q", util.ErrUnsupportedQuestionType, q.Type)
	}
}

func evaluateMultipleChoice(q *model.Question, optionID string) (bool, error) {
	correctID := ""
	correctCount := 0
	submittedKnown := false
	for _, opt := range q.Options {
		if opt.IsCorrect {
			correctID = opt.ID
			correctCount++
		}
		if opt.ID == optionID {
			submittedKnown = true
		}
	}

	// Bad question data is surfaced, never silently resolved to "incorrect".
	if correctCount != 1 {
		return false, fmt.Errorf("%w: question %s has %d correct options", util.ErrQuestionMisconfigured, q.ID, correctCount)
	}
	if optionID == "" || !submittedKnown {
		return false, fmt.Errorf("%w: option %q does not belong to question %s", util.ErrInvalidResponse, optionID, q.ID)
	}

	return optionID == correctID, nil
}

func evaluateShortAnswer(q *model.Question, submitted string) bool {
	normalized := normalizeAnswer(submitted)
	// Empty submissions are always incorrect, never an error.
	if normalized == "" {
		return false
	}
	for _, accepted := range q.AcceptedAnswers {
		if normalized == normalizeAnswer(accepted) {
			return true
		}
	}
	return false
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

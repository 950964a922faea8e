package util

import "errors"

var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrAttemptNotFound  = errors.New("quiz attempt not found")

	// ErrAttemptCompleted rejects submissions against an already-completed
	// quiz attempt.
	ErrAttemptCompleted = errors.New("quiz attempt already completed")

	// ErrDuplicateAttempt signals that a question attempt already exists for
	// this (quiz attempt, question) pair. Callers treat it as idempotent
	// success and serve the stored record.
	ErrDuplicateAttempt = errors.New("question already attempted")

	// ErrInvalidResponse covers malformed or out-of-domain submissions, such
	// as an option id that does not belong to the question.
	ErrInvalidResponse = errors.New("invalid response")

	// ErrQuestionMisconfigured surfaces bad question data, such as a
	// multiple-choice question without exactly one correct option.
	ErrQuestionMisconfigured = errors.New("question misconfigured")

	ErrUnsupportedQuestionType = errors.New("unsupported question type")

	ErrPermissionDenied = errors.New("permission denied")
)

package service

import "wadayano_backend/internal/model"

// QuizStore is the read contract the engine needs for quiz and question data.
// Implemented by repository.QuizRepository.
type QuizStore interface {
	// FindQuiz returns the quiz with its questions and options preloaded.
	FindQuiz(id string) (*model.Quiz, error)
	CreateQuiz(quiz *model.Quiz) error
	// FindQuestionsByIDs returns questions for the given ids, options included.
	FindQuestionsByIDs(ids []string) ([]model.Question, error)
}

// AttemptStore is the durable-store contract for attempt records. The single
// write entry point, InsertQuestionAttempt, must provide atomic
// insert-if-absent on the (quiz attempt, question) pair; everything else is a
// consistent read of committed records. Implemented by
// repository.AttemptRepository.
type AttemptStore interface {
	CreateQuizAttempt(attempt *model.QuizAttempt) error
	FindQuizAttempt(id string) (*model.QuizAttempt, error)
	FindInProgressAttempt(studentID uint, quizID string) (*model.QuizAttempt, error)

	// InsertQuestionAttempt transactionally stores the record and stamps the
	// quiz attempt's completion timestamp when this was its final unattempted
	// question. A concurrent insert for the same pair returns
	// util.ErrDuplicateAttempt and leaves the store unchanged.
	InsertQuestionAttempt(attempt *model.QuestionAttempt, questionCount int) (completed bool, err error)

	FindQuestionAttempt(quizAttemptID, questionID string) (*model.QuestionAttempt, error)
	ListQuestionAttempts(quizAttemptID string) ([]model.QuestionAttempt, error)
	// ListStudentQuestionAttempts returns all of a student's question attempts,
	// optionally narrowed to one quiz.
	ListStudentQuestionAttempts(studentID uint, quizID string) ([]model.QuestionAttempt, error)
	// ListCompletedQuizAttempts returns completed attempts for a quiz with
	// their question attempts preloaded.
	ListCompletedQuizAttempts(quizID string) ([]model.QuizAttempt, error)
}

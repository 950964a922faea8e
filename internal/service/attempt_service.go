package service

import (
	"context"
	"errors"
	"fmt"

	"wadayano_backend/internal/model"
	"wadayano_backend/internal/util"
	"wadayano_backend/pkg/monitoring"
)

type AttemptService struct {
	Quizzes  QuizStore
	Attempts AttemptStore
	Cache    *InsightCache
}

func NewAttemptService(quizzes QuizStore, attempts AttemptStore, cache *InsightCache) *AttemptService {
	return &AttemptService{Quizzes: quizzes, Attempts: attempts, Cache: cache}
}

type AttemptQuestionReq struct {
	Type        model.QuestionType `json:"type" binding:"required"`
	OptionID    *string            `json:"optionId"`
	ShortAnswer *string            `json:"shortAnswer"`
	// Pointer so a missing value is rejected instead of defaulting to false.
	IsConfident *bool `json:"isConfident" binding:"required"`
}

// QuestionAttemptResult is the stored record plus its derived calibration
// category.
type QuestionAttemptResult struct {
	model.QuestionAttempt
	Category CalibrationCategory `json:"category"`
}

func newResult(qa *model.QuestionAttempt) *QuestionAttemptResult {
	return &QuestionAttemptResult{
		QuestionAttempt: *qa,
		Category:        Classify(qa.IsCorrect, qa.IsConfident),
	}
}

// StartQuizAttempt returns the student's in-progress attempt for the quiz, or
// creates one.
func (s *AttemptService) StartQuizAttempt(studentID uint, quizID string) (*model.QuizAttempt, error) {
	existing, err := s.Attempts.FindInProgressAttempt(studentID, quizID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if _, err := s.Quizzes.FindQuiz(quizID); err != nil {
		return nil, err
	}

	attempt := &model.QuizAttempt{
		QuizID:    quizID,
		StudentID: studentID,
	}
	attempt.ID = model.GenerateUUID()
	if err := s.Attempts.CreateQuizAttempt(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// AttemptQuestion records a student's answer to a single question: it
// validates preconditions, evaluates correctness, and commits the immutable
// record. When the record already exists (earlier submission, double click,
// retried request) it returns the stored record together with
// util.ErrDuplicateAttempt; exactly one record per (quiz attempt, question)
// pair ever exists.
func (s *AttemptService) AttemptQuestion(ctx context.Context, studentID uint, quizAttemptID, questionID string, req AttemptQuestionReq) (*QuestionAttemptResult, error) {
	attempt, err := s.Attempts.FindQuizAttempt(quizAttemptID)
	if err != nil {
		return nil, err
	}
	// Hide other students' attempts rather than reporting a permission error.
	if attempt.StudentID != studentID {
		return nil, util.ErrAttemptNotFound
	}
	if attempt.IsCompleted() {
		return nil, util.ErrAttemptCompleted
	}

	quiz, err := s.Quizzes.FindQuiz(attempt.QuizID)
	if err != nil {
		return nil, err
	}
	var question *model.Question
	for i := range quiz.Questions {
		if quiz.Questions[i].ID == questionID {
			question = &quiz.Questions[i]
			break
		}
	}
	if question == nil {
		return nil, util.ErrQuestionNotFound
	}

	if existing, err := s.Attempts.FindQuestionAttempt(quizAttemptID, questionID); err != nil {
		return nil, err
	} else if existing != nil {
		monitoring.DuplicateAttempts.Inc()
		return newResult(existing), util.ErrDuplicateAttempt
	}

	if req.IsConfident == nil {
		return nil, fmt.Errorf("%w: confidence is required", util.ErrInvalidResponse)
	}
	resp, err := buildResponse(question, req)
	if err != nil {
		return nil, err
	}
	correct, err := EvaluateAnswer(question, resp)
	if err != nil {
		return nil, err
	}

	qa := &model.QuestionAttempt{
		QuizAttemptID: quizAttemptID,
		QuestionID:    questionID,
		IsConfident:   *req.IsConfident,
		IsCorrect:     correct,
	}
	qa.ID = model.GenerateUUID()
	if question.Type == model.MultipleChoice {
		qa.OptionID = &resp.OptionID
	} else {
		qa.ShortAnswer = &resp.ShortAnswer
	}

	completed, err := s.Attempts.InsertQuestionAttempt(qa, len(quiz.Questions))
	if errors.Is(err, util.ErrDuplicateAttempt) {
		// Lost an insert race; serve the winner's record.
		monitoring.DuplicateAttempts.Inc()
		stored, ferr := s.Attempts.FindQuestionAttempt(quizAttemptID, questionID)
		if ferr != nil || stored == nil {
			return nil, util.ErrDuplicateAttempt
		}
		return newResult(stored), util.ErrDuplicateAttempt
	}
	if err != nil {
		return nil, err
	}

	monitoring.QuestionAttemptsRecorded.WithLabelValues(string(question.Type)).Inc()
	if completed {
		monitoring.QuizAttemptsCompleted.Inc()
	}
	s.Cache.InvalidateQuiz(ctx, attempt.QuizID)

	return newResult(qa), nil
}

// buildResponse enforces the payload's mutual exclusivity against the
// question's actual type before evaluation.
func buildResponse(q *model.Question, req AttemptQuestionReq) (AttemptResponse, error) {
	if req.Type != q.Type {
		return AttemptResponse{}, fmt.Errorf("%w: submitted type %q does not match question type %q", util.ErrInvalidResponse, req.Type, q.Type)
	}
	switch q.Type {
	case model.MultipleChoice:
		if req.ShortAnswer != nil && *req.ShortAnswer != "" {
			return AttemptResponse{}, fmt.Errorf("%w: short answer supplied for a multiple-choice question", util.ErrInvalidResponse)
		}
		if req.OptionID == nil || *req.OptionID == "" {
			return AttemptResponse{}, fmt.Errorf("%w: option id is required", util.ErrInvalidResponse)
		}
		return AttemptResponse{OptionID: *req.OptionID}, nil
	case model.ShortAnswer:
		if req.OptionID != nil && *req.OptionID != "" {
			return AttemptResponse{}, fmt.Errorf("%w: option id supplied for a short-answer question", util.ErrInvalidResponse)
		}
		answer := ""
		if req.ShortAnswer != nil {
			answer = *req.ShortAnswer
		}
		return AttemptResponse{ShortAnswer: answer}, nil
	default:
		return AttemptResponse{}, fmt.Errorf("%w: %q", util.ErrUnsupportedQuestionType, q.Type)
	}
}

type QuestionSummary struct {
	QuestionID  string              `json:"questionId"`
	Prompt      string              `json:"prompt"`
	IsCorrect   bool                `json:"isCorrect"`
	IsConfident bool                `json:"isConfident"`
	Category    CalibrationCategory `json:"category"`
}

type QuizAttemptSummary struct {
	QuizAttemptID  string            `json:"quizAttemptId"`
	QuizID         string            `json:"quizId"`
	Completed      bool              `json:"completed"`
	PerQuestion    []QuestionSummary `json:"perQuestion"`
	Counts         CategoryCounts    `json:"categoryCounts"`
	KnowledgeScore *float64          `json:"knowledgeScore"`
	WadayanoScore  *float64          `json:"wadayanoScore"`
}

// GetAttemptSummary builds the student quiz view: per-question verdicts plus
// quiz-level scores, live over whatever has been attempted so far.
func (s *AttemptService) GetAttemptSummary(studentID uint, quizAttemptID string) (*QuizAttemptSummary, error) {
	attempt, err := s.Attempts.FindQuizAttempt(quizAttemptID)
	if err != nil {
		return nil, err
	}
	if attempt.StudentID != studentID {
		return nil, util.ErrAttemptNotFound
	}

	attempts, err := s.Attempts.ListQuestionAttempts(quizAttemptID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(attempts))
	for _, qa := range attempts {
		ids = append(ids, qa.QuestionID)
	}
	questions, err := s.Quizzes.FindQuestionsByIDs(ids)
	if err != nil {
		return nil, err
	}
	prompts := make(map[string]string, len(questions))
	for _, q := range questions {
		prompts[q.ID] = q.Prompt
	}

	summary := &QuizAttemptSummary{
		QuizAttemptID: attempt.ID,
		QuizID:        attempt.QuizID,
		Completed:     attempt.IsCompleted(),
		PerQuestion:   make([]QuestionSummary, 0, len(attempts)),
	}
	for _, qa := range attempts {
		category := Classify(qa.IsCorrect, qa.IsConfident)
		summary.Counts.Add(category)
		summary.PerQuestion = append(summary.PerQuestion, QuestionSummary{
			QuestionID:  qa.QuestionID,
			Prompt:      prompts[qa.QuestionID],
			IsCorrect:   qa.IsCorrect,
			IsConfident: qa.IsConfident,
			Category:    category,
		})
	}
	summary.KnowledgeScore = summary.Counts.KnowledgeScore()
	summary.WadayanoScore = summary.Counts.WadayanoScore()
	return summary, nil
}

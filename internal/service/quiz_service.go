package service

import (
	"fmt"

	"wadayano_backend/internal/model"
	"wadayano_backend/internal/util"
)

type QuizService struct {
	Quizzes QuizStore
}

func NewQuizService(quizzes QuizStore) *QuizService {
	return &QuizService{Quizzes: quizzes}
}

type QuizOptionReq struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuizQuestionReq struct {
	Type            model.QuestionType `json:"type" binding:"required"`
	Prompt          string             `json:"prompt" binding:"required"`
	Options         []QuizOptionReq    `json:"options"`
	AcceptedAnswers []string           `json:"acceptedAnswers"`
	Concepts        []string           `json:"concepts"`
}

type CreateQuizReq struct {
	CourseID  string            `json:"courseId"`
	Title     string            `json:"title" binding:"required"`
	Questions []QuizQuestionReq `json:"questions"`
}

// CreateQuiz authors a quiz with its questions. Question sets are fixed once a
// quiz has attempts against it; editing is out of scope here.
func (s *QuizService) CreateQuiz(req CreateQuizReq) (*model.Quiz, error) {
	quiz := &model.Quiz{
		CourseID: req.CourseID,
		Title:    req.Title,
	}
	quiz.ID = model.GenerateUUID()

	for i, qReq := range req.Questions {
		if err := validateQuestionReq(qReq); err != nil {
			return nil, err
		}
		q := model.Question{
			QuizID:          quiz.ID,
			Type:            qReq.Type,
			Prompt:          qReq.Prompt,
			AcceptedAnswers: qReq.AcceptedAnswers,
			Concepts:        qReq.Concepts,
			OrderIndex:      i,
		}
		q.ID = model.GenerateUUID()
		for _, oReq := range qReq.Options {
			opt := model.Option{
				QuestionID: q.ID,
				Text:       oReq.Text,
				IsCorrect:  oReq.IsCorrect,
			}
			opt.ID = model.GenerateUUID()
			q.Options = append(q.Options, opt)
		}
		quiz.Questions = append(quiz.Questions, q)
	}

	if err := s.Quizzes.CreateQuiz(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// validateQuestionReq rejects question configurations the evaluator would later
// refuse, so defects surface at authoring time rather than at the first
// student submission.
func validateQuestionReq(req QuizQuestionReq) error {
	switch req.Type {
	case model.MultipleChoice:
		correct := 0
		for _, opt := range req.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return fmt.Errorf("%w: multiple-choice questions need exactly one correct option, got %d", util.ErrQuestionMisconfigured, correct)
		}
	case model.ShortAnswer:
		if len(req.Options) > 0 {
			return fmt.Errorf("%w: short-answer questions cannot have options", util.ErrQuestionMisconfigured)
		}
	default:
		return fmt.Errorf("%w: %q", util.ErrUnsupportedQuestionType, req.Type)
	}
	return nil
}

type StudentOptionView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type StudentQuestionView struct {
	ID       string              `json:"id"`
	Type     model.QuestionType  `json:"type"`
	Prompt   string              `json:"prompt"`
	Concepts []string            `json:"concepts,omitempty"`
	Order    int                 `json:"order"`
	Options  []StudentOptionView `json:"options,omitempty"`
}

type StudentQuizView struct {
	ID        string                `json:"id"`
	Title     string                `json:"title"`
	Questions []StudentQuestionView `json:"questions"`
}

// GetQuizForStudent serves a quiz with the answer key stripped: no isCorrect
// flags, no accepted answers.
func (s *QuizService) GetQuizForStudent(quizID string) (*StudentQuizView, error) {
	quiz, err := s.Quizzes.FindQuiz(quizID)
	if err != nil {
		return nil, err
	}

	view := &StudentQuizView{
		ID:        quiz.ID,
		Title:     quiz.Title,
		Questions: make([]StudentQuestionView, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		qv := StudentQuestionView{
			ID:       q.ID,
			Type:     q.Type,
			Prompt:   q.Prompt,
			Concepts: q.Concepts,
			Order:    q.OrderIndex,
		}
		for _, opt := range q.Options {
			qv.Options = append(qv.Options, StudentOptionView{ID: opt.ID, Text: opt.Text})
		}
		view.Questions = append(view.Questions, qv)
	}
	return view, nil
}

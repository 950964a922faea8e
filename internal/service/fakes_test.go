package service

import (
	"sync"
	"time"

	"wadayano_backend/internal/model"
	"wadayano_backend/internal/util"
)

// In-memory store fakes implementing QuizStore and AttemptStore with the same
// atomicity contract as the gorm repositories.

type fakeQuizStore struct {
	mu      sync.Mutex
	quizzes map[string]*model.Quiz
}

func newFakeQuizStore(quizzes ...*model.Quiz) *fakeQuizStore {
	s := &fakeQuizStore{quizzes: map[string]*model.Quiz{}}
	for _, q := range quizzes {
		s.quizzes[q.ID] = q
	}
	return s
}

func (s *fakeQuizStore) CreateQuiz(quiz *model.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[quiz.ID] = quiz
	return nil
}

func (s *fakeQuizStore) FindQuiz(id string) (*model.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	quiz, ok := s.quizzes[id]
	if !ok {
		return nil, util.ErrQuizNotFound
	}
	return quiz, nil
}

func (s *fakeQuizStore) FindQuestionsByIDs(ids []string) ([]model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var questions []model.Question
	for _, quiz := range s.quizzes {
		for _, q := range quiz.Questions {
			if want[q.ID] {
				questions = append(questions, q)
			}
		}
	}
	return questions, nil
}

type fakeAttemptStore struct {
	mu           sync.Mutex
	quizAttempts map[string]*model.QuizAttempt
	// quiz attempt id -> question attempts in insertion order
	records map[string][]*model.QuestionAttempt
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{
		quizAttempts: map[string]*model.QuizAttempt{},
		records:      map[string][]*model.QuestionAttempt{},
	}
}

func (s *fakeAttemptStore) CreateQuizAttempt(attempt *model.QuizAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizAttempts[attempt.ID] = attempt
	return nil
}

func (s *fakeAttemptStore) FindQuizAttempt(id string) (*model.QuizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attempt, ok := s.quizAttempts[id]
	if !ok {
		return nil, util.ErrAttemptNotFound
	}
	copied := *attempt
	return &copied, nil
}

func (s *fakeAttemptStore) FindInProgressAttempt(studentID uint, quizID string) (*model.QuizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, attempt := range s.quizAttempts {
		if attempt.StudentID == studentID && attempt.QuizID == quizID && attempt.CompletedAt == nil {
			copied := *attempt
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeAttemptStore) InsertQuestionAttempt(attempt *model.QuestionAttempt, questionCount int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.records[attempt.QuizAttemptID] {
		if existing.QuestionID == attempt.QuestionID {
			return false, util.ErrDuplicateAttempt
		}
	}
	copied := *attempt
	s.records[attempt.QuizAttemptID] = append(s.records[attempt.QuizAttemptID], &copied)

	completed := false
	if questionCount > 0 && len(s.records[attempt.QuizAttemptID]) >= questionCount {
		if qa, ok := s.quizAttempts[attempt.QuizAttemptID]; ok && qa.CompletedAt == nil {
			now := time.Now()
			qa.CompletedAt = &now
			completed = true
		}
	}
	return completed, nil
}

func (s *fakeAttemptStore) FindQuestionAttempt(quizAttemptID, questionID string) (*model.QuestionAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.records[quizAttemptID] {
		if existing.QuestionID == questionID {
			copied := *existing
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeAttemptStore) ListQuestionAttempts(quizAttemptID string) ([]model.QuestionAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.QuestionAttempt, 0, len(s.records[quizAttemptID]))
	for _, qa := range s.records[quizAttemptID] {
		out = append(out, *qa)
	}
	return out, nil
}

func (s *fakeAttemptStore) ListStudentQuestionAttempts(studentID uint, quizID string) ([]model.QuestionAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.QuestionAttempt
	for id, attempt := range s.quizAttempts {
		if attempt.StudentID != studentID {
			continue
		}
		if quizID != "" && attempt.QuizID != quizID {
			continue
		}
		for _, qa := range s.records[id] {
			out = append(out, *qa)
		}
	}
	return out, nil
}

func (s *fakeAttemptStore) ListCompletedQuizAttempts(quizID string) ([]model.QuizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.QuizAttempt
	for id, attempt := range s.quizAttempts {
		if attempt.QuizID != quizID || attempt.CompletedAt == nil {
			continue
		}
		copied := *attempt
		for _, qa := range s.records[id] {
			copied.QuestionAttempts = append(copied.QuestionAttempts, *qa)
		}
		out = append(out, copied)
	}
	return out, nil
}

// Model builders shared across the service tests.

func mcQuestion(id, quizID string, concepts []string, optionIDs []string, correctID string) model.Question {
	q := model.Question{
		QuizID:   quizID,
		Type:     model.MultipleChoice,
		Prompt:   "prompt " + id,
		Concepts: concepts,
	}
	q.ID = id
	for _, optID := range optionIDs {
		opt := model.Option{QuestionID: id, Text: "option " + optID, IsCorrect: optID == correctID}
		opt.ID = optID
		q.Options = append(q.Options, opt)
	}
	return q
}

func saQuestion(id, quizID string, concepts []string, accepted ...string) model.Question {
	q := model.Question{
		QuizID:          quizID,
		Type:            model.ShortAnswer,
		Prompt:          "prompt " + id,
		Concepts:        concepts,
		AcceptedAnswers: accepted,
	}
	q.ID = id
	return q
}

func makeQuiz(id string, questions ...model.Question) *model.Quiz {
	quiz := &model.Quiz{Title: "quiz " + id, Questions: questions}
	quiz.ID = id
	return quiz
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

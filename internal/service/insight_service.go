package service

import (
	"context"
	"sort"

	"wadayano_backend/internal/model"
)

type InsightService struct {
	Quizzes  QuizStore
	Attempts AttemptStore
	Cache    *InsightCache
}

func NewInsightService(quizzes QuizStore, attempts AttemptStore, cache *InsightCache) *InsightService {
	return &InsightService{Quizzes: quizzes, Attempts: attempts, Cache: cache}
}

// ConceptScore is a per-student per-concept view computed from stored
// question attempts; it is never persisted, so late-arriving data simply
// changes the next read.
type ConceptScore struct {
	Concept        string         `json:"concept"`
	TotalAttempts  int            `json:"totalAttempts"`
	Counts         CategoryCounts `json:"categoryCounts"`
	KnowledgeScore *float64       `json:"knowledgeScore"`
	WadayanoScore  *float64       `json:"wadayanoScore"`
}

// GetConceptScores folds all of the student's question attempts (optionally
// narrowed to one quiz) into per-concept scores. A question tagged with
// several concepts contributes to each of them. Zero matching attempts yield
// an empty slice, never zero-valued scores.
func (s *InsightService) GetConceptScores(studentID uint, quizID string) ([]ConceptScore, error) {
	attempts, err := s.Attempts.ListStudentQuestionAttempts(studentID, quizID)
	if err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return []ConceptScore{}, nil
	}

	concepts, err := s.questionConcepts(attempts)
	if err != nil {
		return nil, err
	}

	byConcept := map[string]*CategoryCounts{}
	for _, qa := range attempts {
		category := Classify(qa.IsCorrect, qa.IsConfident)
		for _, concept := range concepts[qa.QuestionID] {
			counts, ok := byConcept[concept]
			if !ok {
				counts = &CategoryCounts{}
				byConcept[concept] = counts
			}
			counts.Add(category)
		}
	}

	scores := make([]ConceptScore, 0, len(byConcept))
	for concept, counts := range byConcept {
		scores = append(scores, ConceptScore{
			Concept:        concept,
			TotalAttempts:  counts.Total(),
			Counts:         *counts,
			KnowledgeScore: counts.KnowledgeScore(),
			WadayanoScore:  counts.WadayanoScore(),
		})
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].Concept < scores[j].Concept })
	return scores, nil
}

func (s *InsightService) questionConcepts(attempts []model.QuestionAttempt) (map[string][]string, error) {
	ids := make([]string, 0, len(attempts))
	seen := map[string]bool{}
	for _, qa := range attempts {
		if !seen[qa.QuestionID] {
			seen[qa.QuestionID] = true
			ids = append(ids, qa.QuestionID)
		}
	}
	questions, err := s.Quizzes.FindQuestionsByIDs(ids)
	if err != nil {
		return nil, err
	}
	concepts := make(map[string][]string, len(questions))
	for _, q := range questions {
		concepts[q.ID] = q.Concepts
	}
	return concepts, nil
}

type ConceptInsight struct {
	Concept           string         `json:"concept"`
	Counts            CategoryCounts `json:"categoryCounts"`
	MeanWadayanoScore *float64       `json:"meanWadayanoScore"`
}

// QuizInsights is the instructor projection for one quiz. CompletedAttempts
// makes the empty state explicit: zero completed attempts mean an empty
// Concepts slice, not zero scores.
type QuizInsights struct {
	QuizID            string           `json:"quizId"`
	CompletedAttempts int              `json:"completedAttempts"`
	Concepts          []ConceptInsight `json:"concepts"`
}

// GetQuizInsights aggregates every student's COMPLETED attempts of a quiz per
// concept tag: category distribution plus the mean of per-student wadayano
// scores. In-progress attempts are excluded so partial data cannot skew the
// counts. Results are served from the redis projection cache when fresh.
func (s *InsightService) GetQuizInsights(ctx context.Context, quizID string) (*QuizInsights, error) {
	var cached QuizInsights
	if s.Cache.Get(ctx, quizID, &cached) {
		return &cached, nil
	}

	quiz, err := s.Quizzes.FindQuiz(quizID)
	if err != nil {
		return nil, err
	}
	concepts := make(map[string][]string, len(quiz.Questions))
	for _, q := range quiz.Questions {
		concepts[q.ID] = q.Concepts
	}

	attempts, err := s.Attempts.ListCompletedQuizAttempts(quizID)
	if err != nil {
		return nil, err
	}

	byConcept := map[string]*CategoryCounts{}
	byStudent := map[string]map[uint]*CategoryCounts{}
	for _, attempt := range attempts {
		for _, qa := range attempt.QuestionAttempts {
			category := Classify(qa.IsCorrect, qa.IsConfident)
			for _, concept := range concepts[qa.QuestionID] {
				counts, ok := byConcept[concept]
				if !ok {
					counts = &CategoryCounts{}
					byConcept[concept] = counts
				}
				counts.Add(category)

				students, ok := byStudent[concept]
				if !ok {
					students = map[uint]*CategoryCounts{}
					byStudent[concept] = students
				}
				sc, ok := students[attempt.StudentID]
				if !ok {
					sc = &CategoryCounts{}
					students[attempt.StudentID] = sc
				}
				sc.Add(category)
			}
		}
	}

	insights := &QuizInsights{
		QuizID:            quizID,
		CompletedAttempts: len(attempts),
		Concepts:          make([]ConceptInsight, 0, len(byConcept)),
	}
	for concept, counts := range byConcept {
		insights.Concepts = append(insights.Concepts, ConceptInsight{
			Concept:           concept,
			Counts:            *counts,
			MeanWadayanoScore: meanWadayano(byStudent[concept]),
		})
	}
	sort.Slice(insights.Concepts, func(i, j int) bool {
		return insights.Concepts[i].Concept < insights.Concepts[j].Concept
	})

	s.Cache.Set(ctx, quizID, insights)
	return insights, nil
}

// meanWadayano averages per-student wadayano scores for one concept. Students
// with no attempts touching the concept have no score and are not averaged in.
func meanWadayano(students map[uint]*CategoryCounts) *float64 {
	sum := 0.0
	n := 0
	for _, counts := range students {
		if score := counts.WadayanoScore(); score != nil {
			sum += *score
			n++
		}
	}
	if n == 0 {
		return nil
	}
	mean := sum / float64(n)
	return &mean
}

package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wadayano_backend/internal/model"
	"wadayano_backend/internal/util"
)

func newTestAttemptService(quizzes ...*model.Quiz) (*AttemptService, *fakeAttemptStore) {
	attempts := newFakeAttemptStore()
	svc := NewAttemptService(newFakeQuizStore(quizzes...), attempts, nil)
	return svc, attempts
}

func startAttempt(t *testing.T, svc *AttemptService, studentID uint, quizID string) *model.QuizAttempt {
	t.Helper()
	attempt, err := svc.StartQuizAttempt(studentID, quizID)
	require.NoError(t, err)
	return attempt
}

func mcReq(optionID string, confident bool) AttemptQuestionReq {
	return AttemptQuestionReq{
		Type:        model.MultipleChoice,
		OptionID:    strPtr(optionID),
		IsConfident: boolPtr(confident),
	}
}

func saReq(answer string, confident bool) AttemptQuestionReq {
	return AttemptQuestionReq{
		Type:        model.ShortAnswer,
		ShortAnswer: strPtr(answer),
		IsConfident: boolPtr(confident),
	}
}

func TestStartQuizAttempt(t *testing.T) {
	quiz := makeQuiz("quiz1", mcQuestion("q1", "quiz1", nil, []string{"a", "b"}, "b"))
	svc, _ := newTestAttemptService(quiz)

	attempt := startAttempt(t, svc, 7, "quiz1")
	assert.Equal(t, "quiz1", attempt.QuizID)
	assert.Equal(t, uint(7), attempt.StudentID)
	assert.Nil(t, attempt.CompletedAt)

	// A second start resumes the in-progress attempt instead of opening a new one.
	resumed, err := svc.StartQuizAttempt(7, "quiz1")
	require.NoError(t, err)
	assert.Equal(t, attempt.ID, resumed.ID)

	_, err = svc.StartQuizAttempt(7, "missing")
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestAttemptQuestion_RecordsVerdict(t *testing.T) {
	quiz := makeQuiz("quiz1",
		mcQuestion("q1", "quiz1", nil, []string{"a", "b", "c"}, "b"),
		saQuestion("q2", "quiz1", nil, "42"),
	)
	svc, store := newTestAttemptService(quiz)
	attempt := startAttempt(t, svc, 7, "quiz1")
	ctx := context.Background()

	result, err := svc.AttemptQuestion(ctx, 7, attempt.ID, "q1", mcReq("b", true))
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.True(t, result.IsConfident)
	assert.Equal(t, WellCalibratedHigh, result.Category)
	require.NotNil(t, result.OptionID)
	assert.Equal(t, "b", *result.OptionID)

	stored, err := store.FindQuestionAttempt(attempt.ID, "q1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, result.ID, stored.ID)

	// Short answer is normalized before matching.
	result, err = svc.AttemptQuestion(ctx, 7, attempt.ID, "q2", saReq(" 42 ", false))
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, Underconfident, result.Category)
}

func TestAttemptQuestion_Preconditions(t *testing.T) {
	quiz := makeQuiz("quiz1", mcQuestion("q1", "quiz1", nil, []string{"a", "b"}, "b"))
	svc, _ := newTestAttemptService(quiz)
	attempt := startAttempt(t, svc, 7, "quiz1")
	ctx := context.Background()

	_, err := svc.AttemptQuestion(ctx, 7, "missing", "q1", mcReq("b", true))
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)

	// Another student's attempt reads as not found.
	_, err = svc.AttemptQuestion(ctx, 8, attempt.ID, "q1", mcReq("b", true))
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)

	_, err = svc.AttemptQuestion(ctx, 7, attempt.ID, "other-question", mcReq("b", true))
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)

	// Submitted type must match the question type.
	_, err = svc.AttemptQuestion(ctx, 7, attempt.ID, "q1", saReq("b", true))
	assert.ErrorIs(t, err, util.ErrInvalidResponse)

	// Confidence is required, no default.
	_, err = svc.AttemptQuestion(ctx, 7, attempt.ID, "q1", AttemptQuestionReq{
		Type:     model.MultipleChoice,
		OptionID: strPtr("b"),
	})
	assert.Error(t, err)
}

func TestAttemptQuestion_CompletedAttemptRejected(t *testing.T) {
	quiz := makeQuiz("quiz1", mcQuestion("q1", "quiz1", nil, []string{"a", "b"}, "b"))
	svc, store := newTestAttemptService(quiz)
	attempt := startAttempt(t, svc, 7, "quiz1")
	ctx := context.Background()

	// Single-question quiz: the first recording completes the attempt.
	_, err := svc.AttemptQuestion(ctx, 7, attempt.ID, "q1", mcReq("b", true))
	require.NoError(t, err)

	stamped, err := store.FindQuizAttempt(attempt.ID)
	require.NoError(t, err)
	require.NotNil(t, stamped.CompletedAt)
	assert.WithinDuration(t, time.Now(), *stamped.CompletedAt, time.Minute)
}

func TestAttemptQuestion_CompletionStampsOnFinalQuestion(t *testing.T) {
	quiz := makeQuiz("quiz1",
		mcQuestion("q1", "quiz1", nil, []string{"a", "b"}, "b"),
		saQuestion("q2", "quiz1", nil, "42"),
	)
	svc, store := newTestAttemptService(quiz)
	attempt := startAttempt(t, svc, 7, "quiz1")
	ctx := context.Background()

	_, err := svc.AttemptQuestion(ctx, 7, attempt.ID, "q1", mcReq("b", true))
	require.NoError(t, err)

	mid, err := store.FindQuizAttempt(attempt.ID)
	require.NoError(t, err)
	assert.Nil(t, mid.CompletedAt, "attempt must stay in progress until the final question")

	_, err = svc.AttemptQuestion(ctx, 7, attempt.ID, "q2", saReq("42", false))
	require.NoError(t, err)

	done, err := store.FindQuizAttempt(attempt.ID)
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)

	// And the store refuses further submissions.
	_, err = svc.AttemptQuestion(ctx, 7, attempt.ID, "q1", mcReq("a", true))
	assert.ErrorIs(t, err, util.ErrAttemptCompleted)
}

func TestAttemptQuestion_ResubmissionKeepsFirstRecord(t *testing.T) {
	quiz := makeQuiz("quiz1",
		mcQuestion("q1", "quiz1", nil, []string{"a", "b"}, "b"),
		saQuestion("q2", "quiz1", nil, "42"),
	)
	svc, store := newTestAttemptService(quiz)
	attempt := startAttempt(t, svc, 7, "quiz1")
	ctx := context.Background()

	first, err := svc.AttemptQuestion(ctx, 7, attempt.ID, "q1", mcReq("b", true))
	require.NoError(t, err)

	// Second submission with a different answer: rejected, original untouched.
	second, err := svc.AttemptQuestion(ctx, 7, attempt.ID, "q1", mcReq("a", false))
	assert.ErrorIs(t, err, util.ErrDuplicateAttempt)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "b", *second.OptionID)
	assert.True(t, second.IsCorrect)

	stored, err := store.FindQuestionAttempt(attempt.ID, "q1")
	require.NoError(t, err)
	assert.Equal(t, "b", *stored.OptionID)
	assert.True(t, stored.IsConfident)

	records, err := store.ListQuestionAttempts(attempt.ID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAttemptQuestion_ConcurrentSubmissionsStoreExactlyOne(t *testing.T) {
	quiz := makeQuiz("quiz1",
		mcQuestion("q1", "quiz1", nil, []string{"a", "b"}, "b"),
		saQuestion("q2", "quiz1", nil, "42"),
	)
	svc, store := newTestAttemptService(quiz)
	attempt := startAttempt(t, svc, 7, "quiz1")

	const callers = 16
	results := make([]*QuestionAttemptResult, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.AttemptQuestion(context.Background(), 7, attempt.ID, "q1", mcReq("b", true))
		}(i)
	}
	wg.Wait()

	records, err := store.ListQuestionAttempts(attempt.ID)
	require.NoError(t, err)
	require.Len(t, records, 1, "exactly one record must ever be stored")

	winners := 0
	for i := 0; i < callers; i++ {
		switch {
		case errs[i] == nil:
			winners++
			assert.Equal(t, records[0].ID, results[i].ID)
		case errors.Is(errs[i], util.ErrDuplicateAttempt):
			// Losers read back the winner's record.
			require.NotNil(t, results[i])
			assert.Equal(t, records[0].ID, results[i].ID)
		default:
			t.Fatalf("caller %d: unexpected error %v", i, errs[i])
		}
	}
	assert.Equal(t, 1, winners)
}

func TestGetAttemptSummary_WorkedExample(t *testing.T) {
	// Q1: multiple choice, correct option "b", student picks "b", confident.
	// Q2: short answer accepting "42", student submits " 42 ", not confident.
	quiz := makeQuiz("quiz1",
		mcQuestion("q1", "quiz1", nil, []string{"a", "b", "c"}, "b"),
		saQuestion("q2", "quiz1", nil, "42"),
	)
	svc, _ := newTestAttemptService(quiz)
	attempt := startAttempt(t, svc, 7, "quiz1")
	ctx := context.Background()

	_, err := svc.AttemptQuestion(ctx, 7, attempt.ID, "q1", mcReq("b", true))
	require.NoError(t, err)
	_, err = svc.AttemptQuestion(ctx, 7, attempt.ID, "q2", saReq(" 42 ", false))
	require.NoError(t, err)

	summary, err := svc.GetAttemptSummary(7, attempt.ID)
	require.NoError(t, err)

	require.Len(t, summary.PerQuestion, 2)
	assert.Equal(t, WellCalibratedHigh, summary.PerQuestion[0].Category)
	assert.True(t, summary.PerQuestion[1].IsCorrect)
	assert.Equal(t, Underconfident, summary.PerQuestion[1].Category)
	assert.True(t, summary.Completed)

	require.NotNil(t, summary.KnowledgeScore)
	assert.Equal(t, 1.0, *summary.KnowledgeScore)
	require.NotNil(t, summary.WadayanoScore)
	assert.Equal(t, 0.5, *summary.WadayanoScore)
}

func TestGetAttemptSummary_LiveOnInProgressAttempt(t *testing.T) {
	quiz := makeQuiz("quiz1",
		mcQuestion("q1", "quiz1", nil, []string{"a", "b"}, "b"),
		saQuestion("q2", "quiz1", nil, "42"),
	)
	svc, _ := newTestAttemptService(quiz)
	attempt := startAttempt(t, svc, 7, "quiz1")

	_, err := svc.AttemptQuestion(context.Background(), 7, attempt.ID, "q1", mcReq("a", true))
	require.NoError(t, err)

	summary, err := svc.GetAttemptSummary(7, attempt.ID)
	require.NoError(t, err)
	assert.False(t, summary.Completed)
	require.Len(t, summary.PerQuestion, 1)
	assert.Equal(t, Overconfident, summary.PerQuestion[0].Category)

	// Other students cannot read the attempt.
	_, err = svc.GetAttemptSummary(8, attempt.ID)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}

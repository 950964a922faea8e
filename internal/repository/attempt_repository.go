package repository

import (
	"errors"
	"time"

	"wadayano_backend/internal/model"
	"wadayano_backend/internal/util"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) CreateQuizAttempt(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindQuizAttempt(id string) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	if err := r.DB.First(&attempt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) FindInProgressAttempt(studentID uint, quizID string) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.
		Where("student_id = ? AND quiz_id = ? AND completed_at IS NULL", studentID, quizID).
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attempt, nil
}

// InsertQuestionAttempt commits a question attempt and, when it was the final
// unattempted question, stamps the quiz attempt's completion timestamp, all in
// one transaction. The composite unique index resolves concurrent inserts for
// the same (quiz attempt, question) pair: losers get util.ErrDuplicateAttempt
// and the transaction rolls back without touching the store.
func (r *AttemptRepository) InsertQuestionAttempt(attempt *model.QuestionAttempt, questionCount int) (bool, error) {
	completed := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return util.ErrDuplicateAttempt
			}
			return err
		}

		var count int64
		if err := tx.Model(&model.QuestionAttempt{}).
			Where("quiz_attempt_id = ?", attempt.QuizAttemptID).
			Count(&count).Error; err != nil {
			return err
		}
		if questionCount > 0 && int(count) >= questionCount {
			now := time.Now()
			if err := tx.Model(&model.QuizAttempt{}).
				Where("id = ? AND completed_at IS NULL", attempt.QuizAttemptID).
				Update("completed_at", &now).Error; err != nil {
				return err
			}
			completed = true
		}
		return nil
	})
	return completed, err
}

func (r *AttemptRepository) FindQuestionAttempt(quizAttemptID, questionID string) (*model.QuestionAttempt, error) {
	var attempt model.QuestionAttempt
	err := r.DB.
		Where("quiz_attempt_id = ? AND question_id = ?", quizAttemptID, questionID).
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) ListQuestionAttempts(quizAttemptID string) ([]model.QuestionAttempt, error) {
	var attempts []model.QuestionAttempt
	err := r.DB.
		Where("quiz_attempt_id = ?", quizAttemptID).
		Order("created_at").
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListStudentQuestionAttempts(studentID uint, quizID string) ([]model.QuestionAttempt, error) {
	q := r.DB.
		Joins("JOIN quiz_attempts ON quiz_attempts.id = question_attempts.quiz_attempt_id").
		Where("quiz_attempts.student_id = ?", studentID)
	if quizID != "" {
		q = q.Where("quiz_attempts.quiz_id = ?", quizID)
	}
	var attempts []model.QuestionAttempt
	err := q.Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListCompletedQuizAttempts(quizID string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.
		Preload("QuestionAttempts").
		Where("quiz_id = ? AND completed_at IS NOT NULL", quizID).
		Find(&attempts).Error
	return attempts, err
}

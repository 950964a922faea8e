package repository

import (
	"errors"

	"wadayano_backend/internal/model"
	"wadayano_backend/internal/util"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) CreateQuiz(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindQuiz(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index")
		}).
		Preload("Questions.Options").
		First(&quiz, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindQuestionsByIDs(ids []string) ([]model.Question, error) {
	if len(ids) == 0 {
		return []model.Question{}, nil
	}
	var questions []model.Question
	err := r.DB.Preload("Options").Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

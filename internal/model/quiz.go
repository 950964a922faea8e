package model

import "gorm.io/datatypes"

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	ShortAnswer    QuestionType = "short_answer"
)

type Course struct {
	UUIDBase
	Title   string `gorm:"size:255;not null" json:"title"`
	Quizzes []Quiz `gorm:"foreignKey:CourseID" json:"quizzes,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

type Quiz struct {
	UUIDBase
	CourseID  string     `gorm:"index;type:varchar(36)" json:"courseId"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Questions []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type Question struct {
	UUIDBase
	QuizID string       `gorm:"index;type:varchar(36)" json:"quizId"`
	Type   QuestionType `gorm:"size:50;not null" json:"type"`
	Prompt string       `gorm:"type:text;not null" json:"prompt"`
	// Multiple-choice options; empty for short-answer questions.
	Options []Option `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
	// Accepted answers for short-answer questions, matched after normalization.
	AcceptedAnswers datatypes.JSONSlice[string] `gorm:"type:json" json:"acceptedAnswers,omitempty"`
	// Concept tags linking the question to knowledge areas.
	Concepts   datatypes.JSONSlice[string] `gorm:"type:json" json:"concepts,omitempty"`
	OrderIndex int                         `gorm:"default:0" json:"order"`
}

func (Question) TableName() string {
	return "questions"
}

type Option struct {
	UUIDBase
	QuestionID string `gorm:"index;type:varchar(36)" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (Option) TableName() string {
	return "options"
}

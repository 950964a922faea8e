package model

import "time"

type QuizAttempt struct {
	UUIDBase
	QuizID    string `gorm:"index;type:varchar(36)" json:"quizId"`
	StudentID uint   `gorm:"index;type:bigint unsigned" json:"studentId"`
	// Set once all questions have been attempted; nil while in progress.
	CompletedAt      *time.Time        `json:"completedAt,omitempty"`
	QuestionAttempts []QuestionAttempt `gorm:"foreignKey:QuizAttemptID;constraint:OnDelete:CASCADE" json:"questionAttempts,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

func (a *QuizAttempt) IsCompleted() bool {
	return a.CompletedAt != nil
}

// QuestionAttempt is immutable after creation. The composite unique index on
// (quiz_attempt_id, question_id) is the durable-store guarantee that at most
// one attempt per question ever exists within a quiz attempt; a concurrent
// second insert fails on the index rather than producing a second row.
type QuestionAttempt struct {
	UUIDBase
	QuizAttemptID string `gorm:"type:varchar(36);uniqueIndex:idx_attempt_question,priority:1" json:"quizAttemptId"`
	QuestionID    string `gorm:"type:varchar(36);uniqueIndex:idx_attempt_question,priority:2;index" json:"questionId"`
	// Exactly one of OptionID / ShortAnswer is set, per question type.
	OptionID    *string `gorm:"type:varchar(36)" json:"optionId,omitempty"`
	ShortAnswer *string `gorm:"type:text" json:"shortAnswer,omitempty"`
	IsConfident bool    `gorm:"not null" json:"isConfident"`
	// Computed once by the answer evaluator at recording time.
	IsCorrect bool `gorm:"not null" json:"isCorrect"`
}

func (QuestionAttempt) TableName() string {
	return "question_attempts"
}

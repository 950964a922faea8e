// Seeds a local database with demo accounts and a sample quiz.
//
// Intended for development setups only; the production schema is populated
// through the API and the LMS launch flow.
//
// Usage: go run scripts/seed.go
package main

import (
	"log"

	"wadayano_backend/internal/config"
	"wadayano_backend/internal/model"
	"wadayano_backend/internal/repository"
	"wadayano_backend/internal/service"
	"wadayano_backend/pkg/database"
	"wadayano_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	instructor := &model.User{Name: "Demo Instructor", Email: "instructor@example.edu", Role: model.Instructor}
	student := &model.User{Name: "Demo Student", Email: "student@example.edu", Role: model.Student}
	for _, u := range []*model.User{instructor, student} {
		if err := db.Where("email = ?", u.Email).FirstOrCreate(u).Error; err != nil {
			log.Fatalf("Failed to seed user %s: %v", u.Email, err)
		}
	}

	quizzes := service.NewQuizService(repository.NewQuizRepository(db))
	quiz, err := quizzes.CreateQuiz(service.CreateQuizReq{
		Title: "Fractions check-in",
		Questions: []service.QuizQuestionReq{
			{
				Type:   model.MultipleChoice,
				Prompt: "What is 1/2 + 1/4?",
				Options: []service.QuizOptionReq{
					{Text: "3/4", IsCorrect: true},
					{Text: "2/6"},
					{Text: "1/8"},
				},
				Concepts: []string{"fractions"},
			},
			{
				Type:            model.ShortAnswer,
				Prompt:          "Simplify 2/4.",
				AcceptedAnswers: []string{"1/2", "one half"},
				Concepts:        []string{"fractions", "simplification"},
			},
		},
	})
	if err != nil {
		log.Fatalf("Failed to seed quiz: %v", err)
	}

	log.Printf("Seeded quiz %s with %d questions", quiz.ID, len(quiz.Questions))
	log.Printf("Instructor id=%d, student id=%d", instructor.ID, student.ID)
}

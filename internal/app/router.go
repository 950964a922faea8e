package app

import (
	"wadayano_backend/internal/config"
	"wadayano_backend/internal/middleware"
	"wadayano_backend/internal/model"
	"wadayano_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/api/health", c.health.HealthCheck)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerInstructorRoutes(authGroup, c)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	student := rg.Group("/student")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.GET("/quizzes/:quizId", c.quiz.GetQuizForStudent)
		student.POST("/quizzes/:quizId/attempts", c.attempt.StartQuizAttempt)
		student.GET("/attempts/:attemptId", c.attempt.GetAttemptSummary)
		student.POST("/attempts/:attemptId/questions/:questionId", c.attempt.AttemptQuestion)
		student.GET("/concept-scores", c.insight.GetMyConceptScores)
	}
}

func (a *App) registerInstructorRoutes(rg *gin.RouterGroup, c *controllers) {
	instructor := rg.Group("/instructor")
	instructor.Use(middleware.RoleMiddleware(model.Instructor))
	{
		instructor.POST("/quizzes", c.quiz.CreateQuiz)
		instructor.GET("/quizzes/:quizId/insights", c.insight.GetQuizInsights)
		instructor.GET("/students/:studentId/concept-scores", c.insight.GetStudentConceptScores)
	}
}

package controller

import (
	"errors"

	"wadayano_backend/internal/service"
	"wadayano_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req service.CreateQuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Service.CreateQuiz(req)
	if err != nil {
		// At authoring time a misconfigured question is the author's mistake.
		if errors.Is(err, util.ErrQuestionMisconfigured) || errors.Is(err, util.ErrUnsupportedQuestionType) {
			util.BadRequest(ctx, err.Error())
			return
		}
		respondError(ctx, err)
		return
	}

	util.Created(ctx, quiz)
}

// GetQuizForStudent serves the quiz without its answer key.
func (c *QuizController) GetQuizForStudent(ctx *gin.Context) {
	quiz, err := c.Service.GetQuizForStudent(ctx.Param("quizId"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

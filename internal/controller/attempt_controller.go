package controller

import (
	"errors"

	"wadayano_backend/internal/service"
	"wadayano_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	Service *service.AttemptService
}

func NewAttemptController(svc *service.AttemptService) *AttemptController {
	return &AttemptController{Service: svc}
}

// StartQuizAttempt opens (or resumes) the student's attempt for a quiz.
func (c *AttemptController) StartQuizAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attempt, err := c.Service.StartQuizAttempt(user.UserID, ctx.Param("quizId"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, attempt)
}

// AttemptQuestion records an answer with its confidence rating. A repeat
// submission for the same question returns the originally stored record with
// 200, so client retries and double clicks are transparent.
func (c *AttemptController) AttemptQuestion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AttemptQuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.AttemptQuestion(
		ctx.Request.Context(),
		user.UserID,
		ctx.Param("attemptId"),
		ctx.Param("questionId"),
		req,
	)
	if errors.Is(err, util.ErrDuplicateAttempt) {
		util.Success(ctx, result)
		return
	}
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

// GetAttemptSummary serves the student's live review of one quiz attempt.
func (c *AttemptController) GetAttemptSummary(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.Service.GetAttemptSummary(user.UserID, ctx.Param("attemptId"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}

package controller

import (
	"strconv"

	"wadayano_backend/internal/service"
	"wadayano_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type InsightController struct {
	Service *service.InsightService
}

func NewInsightController(svc *service.InsightService) *InsightController {
	return &InsightController{Service: svc}
}

// GetMyConceptScores serves the authenticated student's per-concept scores,
// optionally narrowed to one quiz via ?quizId=.
func (c *InsightController) GetMyConceptScores(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	scores, err := c.Service.GetConceptScores(user.UserID, ctx.Query("quizId"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, scores)
}

// GetStudentConceptScores lets an instructor inspect one student's
// per-concept scores.
func (c *InsightController) GetStudentConceptScores(ctx *gin.Context) {
	studentID, err := strconv.ParseUint(ctx.Param("studentId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	scores, err := c.Service.GetConceptScores(uint(studentID), ctx.Query("quizId"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, scores)
}

// GetQuizInsights serves the instructor dashboard projection for one quiz.
func (c *InsightController) GetQuizInsights(ctx *gin.Context) {
	insights, err := c.Service.GetQuizInsights(ctx.Request.Context(), ctx.Param("quizId"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, insights)
}

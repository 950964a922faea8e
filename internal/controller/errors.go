package controller

import (
	"errors"

	"wadayano_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError maps engine errors to HTTP responses. ErrDuplicateAttempt is
// handled by callers before reaching here, since it is an idempotent success
// rather than a failure.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrAttemptNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrInvalidResponse):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrAttemptCompleted):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrQuestionMisconfigured),
		errors.Is(err, util.ErrUnsupportedQuestionType):
		// Bad question data is a server-side defect, not a client mistake.
		util.LogInternalError(ctx, err)
	default:
		util.LogInternalError(ctx, err)
	}
}

package controller

import (
	"aiact_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the API envelope. Configuration
// errors and anything unrecognized are logged and surfaced as 500.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUseCaseNotFound),
		errors.Is(err, util.ErrModelNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrDocumentNotFound),
		errors.Is(err, util.ErrUserNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrUnknownQuestion),
		errors.Is(err, util.ErrInvalidAnswer):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrIncomplete),
		errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrCollaboratorExists):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrModelScoreMissing):
		util.UnprocessableEntity(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

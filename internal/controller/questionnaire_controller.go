package controller

import (
	"aiact_backend/internal/model"
	"aiact_backend/internal/service"
	"aiact_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionnaireController struct {
	Questionnaire  *service.QuestionnaireService
	UseCaseService *service.UseCaseService
	Scoring        *service.ScoringService
}

func NewQuestionnaireController(questionnaire *service.QuestionnaireService, useCaseService *service.UseCaseService, scoring *service.ScoringService) *QuestionnaireController {
	return &QuestionnaireController{
		Questionnaire:  questionnaire,
		UseCaseService: useCaseService,
		Scoring:        scoring,
	}
}

// swagger:model SubmitAnswerRequest
type SubmitAnswerRequest struct {
	QuestionCode string       `json:"questionCode" binding:"required"`
	Answer       model.Answer `json:"answer" binding:"required"`
}

// swagger:model BulkSaveRequest
type BulkSaveRequest struct {
	Answers map[string]model.Answer `json:"answers" binding:"required"`
}

// Current godoc
// @Summary Question to show next
// @Description First unanswered question on the resolved path, empty once complete
// @Tags questionnaire
// @Produce json
// @Security BearerAuth
// @Param id path string true "Use case id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/usecases/{id}/questionnaire/current [get]
func (c *QuestionnaireController) Current(ctx *gin.Context) {
	if !c.canView(ctx) {
		return
	}
	q, err := c.Questionnaire.CurrentQuestion(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if q == nil {
		util.Success(ctx, gin.H{"completed": true})
		return
	}
	util.Success(ctx, gin.H{"question": q})
}

// Submit godoc
// @Summary Submit one answer
// @Description Stores the answer (replacing any prior answer for the same question) and advances the flow. Reaching a terminal node or an eliminatory option triggers scoring.
// @Tags questionnaire
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Use case id"
// @Param body body SubmitAnswerRequest true "Answer"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response "Unknown question code or mismatched payload"
// @Failure 404 {object} util.Response
// @Router /api/usecases/{id}/questionnaire/answers [post]
func (c *QuestionnaireController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if !c.canEdit(ctx) {
		return
	}

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Questionnaire.SubmitAnswer(ctx.Param("id"), req.QuestionCode, req.Answer, claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// BulkSave godoc
// @Summary Save a batch of answers
// @Description Resumable-session entry point; scoring fires if the batch completes the path
// @Tags questionnaire
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Use case id"
// @Param body body BulkSaveRequest true "Answers keyed by question code"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Router /api/usecases/{id}/questionnaire/answers/bulk [post]
func (c *QuestionnaireController) BulkSave(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if !c.canEdit(ctx) {
		return
	}

	var req BulkSaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Questionnaire.BulkSave(ctx.Param("id"), req.Answers, claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Answers godoc
// @Summary Stored answers of a use case
// @Tags questionnaire
// @Produce json
// @Security BearerAuth
// @Param id path string true "Use case id"
// @Success 200 {object} util.Response
// @Router /api/usecases/{id}/questionnaire/answers [get]
func (c *QuestionnaireController) Answers(ctx *gin.Context) {
	if !c.canView(ctx) {
		return
	}
	answers, err := c.Questionnaire.ListAnswers(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, answers)
}

// Progress godoc
// @Summary Questionnaire progress
// @Tags questionnaire
// @Produce json
// @Security BearerAuth
// @Param id path string true "Use case id"
// @Success 200 {object} util.Response{data=service.Progress}
// @Router /api/usecases/{id}/questionnaire/progress [get]
func (c *QuestionnaireController) Progress(ctx *gin.Context) {
	if !c.canView(ctx) {
		return
	}
	p, err := c.Questionnaire.GetProgress(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// Recalculate godoc
// @Summary Recompute the compliance score
// @Description Full recomputation from stored answers; 409 while the path is incomplete
// @Tags questionnaire
// @Produce json
// @Security BearerAuth
// @Param id path string true "Use case id"
// @Success 200 {object} util.Response{data=service.ScoreResult}
// @Failure 409 {object} util.Response "Questionnaire incomplete"
// @Failure 422 {object} util.Response "Model score unavailable"
// @Router /api/usecases/{id}/score [post]
func (c *QuestionnaireController) Recalculate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if !c.canEdit(ctx) {
		return
	}

	result, err := c.Scoring.Recalculate(ctx.Param("id"), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Reset godoc
// @Summary Restart the questionnaire
// @Description Deletes every stored answer and clears scores; the use case returns to the entry question
// @Tags questionnaire
// @Produce json
// @Security BearerAuth
// @Param id path string true "Use case id"
// @Success 200 {object} util.Response
// @Router /api/usecases/{id}/questionnaire/answers [delete]
func (c *QuestionnaireController) Reset(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if !c.canEdit(ctx) {
		return
	}

	if err := c.Questionnaire.Reset(ctx.Param("id"), claims.UserID); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *QuestionnaireController) canView(ctx *gin.Context) bool {
	_, err := c.UseCaseService.Get(ctx.Param("id"), util.GetUserFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return false
	}
	return true
}

func (c *QuestionnaireController) canEdit(ctx *gin.Context) bool {
	if err := c.UseCaseService.CheckEdit(ctx.Param("id"), util.GetUserFromContext(ctx)); err != nil {
		respondError(ctx, err)
		return false
	}
	return true
}

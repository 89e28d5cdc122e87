package controller

import (
	"aiact_backend/internal/service"
	"aiact_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

// QuestionController exposes the question bank: read-only for members,
// authoring for admins.
type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// Sections godoc
// @Summary Questionnaire sections
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.QuestionnaireSection}
// @Router /api/questions/sections [get]
func (c *QuestionController) Sections(ctx *gin.Context) {
	sections, err := c.QuestionService.ListSections()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, sections)
}

// List godoc
// @Summary All questions
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.QuestionnaireQuestion}
// @Router /api/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	questions, err := c.QuestionService.ListQuestions()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// Get godoc
// @Summary One question by code
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param code path string true "Question code"
// @Success 200 {object} util.Response{data=model.QuestionnaireQuestion}
// @Failure 404 {object} util.Response
// @Router /api/questions/{code} [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	q, err := c.QuestionService.GetQuestion(ctx.Param("code"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// Create godoc
// @Summary Create a question (admin)
// @Description The whole flow graph is revalidated before the write lands
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.QuestionRequest true "Question"
// @Success 201 {object} util.Response{data=model.QuestionnaireQuestion}
// @Failure 422 {object} util.Response "Graph validation failed"
// @Router /api/admin/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.QuestionService.CreateQuestion(req)
	if err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// Update godoc
// @Summary Update a question (admin)
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Question code"
// @Param body body service.QuestionRequest true "Question"
// @Success 200 {object} util.Response{data=model.QuestionnaireQuestion}
// @Failure 422 {object} util.Response "Graph validation failed"
// @Router /api/admin/questions/{code} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.QuestionService.UpdateQuestion(ctx.Param("code"), req)
	if err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// Deactivate godoc
// @Summary Retire a question (admin)
// @Tags questions
// @Security BearerAuth
// @Param code path string true "Question code"
// @Success 204
// @Failure 422 {object} util.Response "Remaining graph would be invalid"
// @Router /api/admin/questions/{code} [delete]
func (c *QuestionController) Deactivate(ctx *gin.Context) {
	if err := c.QuestionService.DeactivateQuestion(ctx.Param("code")); err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// Flow godoc
// @Summary Flow graph dump (admin)
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.FlowEdge}
// @Router /api/admin/questions/flow [get]
func (c *QuestionController) Flow(ctx *gin.Context) {
	edges, err := c.QuestionService.FlowDump()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, edges)
}

// Validate godoc
// @Summary Validate the active flow graph (admin)
// @Description Rebuilds the graph from the stored questions and reports the first configuration error
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Failure 422 {object} util.Response "Graph validation failed"
// @Router /api/admin/questions/validate [post]
func (c *QuestionController) Validate(ctx *gin.Context) {
	if err := c.QuestionService.ValidateFlow(); err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"valid": true})
}

// respondAuthoringError reports graph-validation failures as 422: at
// authoring time a broken graph is a client mistake, not a server fault.
func respondAuthoringError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrFlowConfiguration) {
		util.UnprocessableEntity(ctx, err.Error())
		return
	}
	respondError(ctx, err)
}

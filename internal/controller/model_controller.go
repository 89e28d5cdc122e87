package controller

import (
	"aiact_backend/internal/service"
	"aiact_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ModelController struct {
	ModelService *service.ModelService
}

func NewModelController(modelService *service.ModelService) *ModelController {
	return &ModelController{ModelService: modelService}
}

// List godoc
// @Summary List AI models with their capability scores
// @Tags models
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/models [get]
func (c *ModelController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	models, total, err := c.ModelService.List(page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: models, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary One AI model
// @Tags models
// @Produce json
// @Security BearerAuth
// @Param id path int true "Model id"
// @Success 200 {object} util.Response{data=service.ModelView}
// @Failure 404 {object} util.Response
// @Router /api/models/{id} [get]
func (c *ModelController) Get(ctx *gin.Context) {
	m, err := c.ModelService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, m)
}

// Create godoc
// @Summary Register an AI model (admin)
// @Tags models
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ModelRequest true "Model with per-principle ratings"
// @Success 201 {object} util.Response{data=model.AIModel}
// @Router /api/admin/models [post]
func (c *ModelController) Create(ctx *gin.Context) {
	var req service.ModelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	m, err := c.ModelService.Create(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, m)
}

// Update godoc
// @Summary Update an AI model's ratings (admin)
// @Description Invalidates the cached capability score
// @Tags models
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Model id"
// @Param body body service.ModelRequest true "Model"
// @Success 200 {object} util.Response{data=model.AIModel}
// @Failure 404 {object} util.Response
// @Router /api/admin/models/{id} [put]
func (c *ModelController) Update(ctx *gin.Context) {
	var req service.ModelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	m, err := c.ModelService.Update(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, m)
}

// Recalculate godoc
// @Summary Recompute one model's capability score (admin)
// @Tags models
// @Produce json
// @Security BearerAuth
// @Param id path int true "Model id"
// @Success 200 {object} util.Response{data=service.ModelView}
// @Failure 404 {object} util.Response
// @Router /api/admin/models/{id}/recalculate [post]
func (c *ModelController) Recalculate(ctx *gin.Context) {
	v, err := c.ModelService.Recalculate(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, v)
}

// RecalculateAll godoc
// @Summary Recompute every model's capability score (admin)
// @Tags models
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.ModelView}
// @Router /api/admin/model-scores/recalculate [post]
func (c *ModelController) RecalculateAll(ctx *gin.Context) {
	views, err := c.ModelService.RecalculateAll()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

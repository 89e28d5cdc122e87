package controller

import (
	"aiact_backend/internal/model"
	"aiact_backend/internal/service"
	"aiact_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UseCaseController struct {
	UseCaseService *service.UseCaseService
}

func NewUseCaseController(useCaseService *service.UseCaseService) *UseCaseController {
	return &UseCaseController{UseCaseService: useCaseService}
}

// swagger:model SetModelRequest
type SetModelRequest struct {
	ModelID *uint `json:"modelId"`
}

// swagger:model CollaboratorRequest
type CollaboratorRequest struct {
	UserID uint                   `json:"userId" binding:"required"`
	Role   model.CollaboratorRole `json:"role" binding:"required,oneof=viewer editor"`
}

// Create godoc
// @Summary Create a use case
// @Tags usecases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.UseCaseRequest true "Use case"
// @Success 201 {object} util.Response{data=model.UseCase}
// @Failure 400 {object} util.Response
// @Router /api/usecases [post]
func (c *UseCaseController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	user := c.requireCompany(ctx, claims)
	if user == nil {
		return
	}

	var req service.UseCaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	uc, err := c.UseCaseService.Create(claims.UserID, *user.CompanyID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, uc)
}

// Get godoc
// @Summary Get a use case
// @Tags usecases
// @Produce json
// @Security BearerAuth
// @Param id path string true "Use case id"
// @Success 200 {object} util.Response{data=model.UseCase}
// @Failure 404 {object} util.Response
// @Router /api/usecases/{id} [get]
func (c *UseCaseController) Get(ctx *gin.Context) {
	uc, err := c.UseCaseService.Get(ctx.Param("id"), util.GetUserFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	resp := gin.H{"useCase": uc}
	if docType, required := c.UseCaseService.RequiredDocumentType(uc); required {
		resp["requiredDocumentType"] = docType
	}
	util.Success(ctx, resp)
}

// List godoc
// @Summary List the company's use cases
// @Tags usecases
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/usecases [get]
func (c *UseCaseController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	user := c.requireCompany(ctx, claims)
	if user == nil {
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	ucs, total, err := c.UseCaseService.ListByCompany(*user.CompanyID, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: ucs, Total: total, Page: page, Limit: limit})
}

// Update godoc
// @Summary Update use case metadata
// @Tags usecases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Use case id"
// @Param body body service.UseCaseRequest true "Use case"
// @Success 200 {object} util.Response{data=model.UseCase}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/usecases/{id} [put]
func (c *UseCaseController) Update(ctx *gin.Context) {
	var req service.UseCaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	uc, err := c.UseCaseService.Update(ctx.Param("id"), util.GetUserFromContext(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, uc)
}

// Delete godoc
// @Summary Delete a use case and everything attached to it
// @Tags usecases
// @Security BearerAuth
// @Param id path string true "Use case id"
// @Success 204
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/usecases/{id} [delete]
func (c *UseCaseController) Delete(ctx *gin.Context) {
	if err := c.UseCaseService.Delete(ctx.Param("id"), util.GetUserFromContext(ctx)); err != nil {
		respondError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// SetModel godoc
// @Summary Attach or detach the primary AI model
// @Description Rescoring runs immediately when the use case is already completed
// @Tags usecases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Use case id"
// @Param body body SetModelRequest true "Model reference, null to detach"
// @Success 200 {object} util.Response{data=model.UseCase}
// @Failure 404 {object} util.Response
// @Router /api/usecases/{id}/model [put]
func (c *UseCaseController) SetModel(ctx *gin.Context) {
	var req SetModelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	uc, err := c.UseCaseService.SetPrimaryModel(ctx.Param("id"), util.GetUserFromContext(ctx), req.ModelID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, uc)
}

// History godoc
// @Summary Score history of a use case
// @Tags usecases
// @Produce json
// @Security BearerAuth
// @Param id path string true "Use case id"
// @Param limit query int false "Max entries"
// @Success 200 {object} util.Response{data=[]model.ScoreHistory}
// @Router /api/usecases/{id}/history [get]
func (c *UseCaseController) History(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	hs, err := c.UseCaseService.GetHistory(ctx.Param("id"), util.GetUserFromContext(ctx), limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, hs)
}

// AddCollaborator godoc
// @Summary Share a use case with another user
// @Tags usecases
// @Accept json
// @Security BearerAuth
// @Param id path string true "Use case id"
// @Param body body CollaboratorRequest true "Collaborator"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response "Already a collaborator"
// @Router /api/usecases/{id}/collaborators [post]
func (c *UseCaseController) AddCollaborator(ctx *gin.Context) {
	var req CollaboratorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.UseCaseService.AddCollaborator(ctx.Param("id"), util.GetUserFromContext(ctx), req.UserID, req.Role)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, nil)
}

// ListCollaborators godoc
// @Summary List collaborators
// @Tags usecases
// @Produce json
// @Security BearerAuth
// @Param id path string true "Use case id"
// @Success 200 {object} util.Response{data=[]model.UseCaseCollaborator}
// @Router /api/usecases/{id}/collaborators [get]
func (c *UseCaseController) ListCollaborators(ctx *gin.Context) {
	cs, err := c.UseCaseService.ListCollaborators(ctx.Param("id"), util.GetUserFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, cs)
}

// RemoveCollaborator godoc
// @Summary Remove a collaborator
// @Tags usecases
// @Security BearerAuth
// @Param id path string true "Use case id"
// @Param userId path int true "User id"
// @Success 204
// @Router /api/usecases/{id}/collaborators/{userId} [delete]
func (c *UseCaseController) RemoveCollaborator(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("userId"))
	if err := c.UseCaseService.RemoveCollaborator(ctx.Param("id"), util.GetUserFromContext(ctx), userID); err != nil {
		respondError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

func (c *UseCaseController) requireCompany(ctx *gin.Context, claims *util.Claims) *model.User {
	if claims == nil {
		util.Unauthorized(ctx)
		return nil
	}
	user, err := c.UseCaseService.Users.FindByID(claims.UserID)
	if err != nil {
		util.Unauthorized(ctx)
		return nil
	}
	if user.CompanyID == nil {
		util.BadRequest(ctx, "User is not attached to a company")
		return nil
	}
	return user
}

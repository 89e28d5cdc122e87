package controller

import (
	"aiact_backend/internal/service"
	"aiact_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary Register a new account
// @Description Creates a user, and a company when a company name is given
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.RegisterRequest true "Registration payload"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response "Email already registered"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Register(req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"id": user.ID})
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		util.Error(ctx, 401, "Invalid credentials")
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

// Me godoc
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response
// @Router /api/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}

package app

import (
	"aiact_backend/docs"
	"aiact_backend/internal/config"
	"aiact_backend/internal/middleware"
	"aiact_backend/internal/model"
	"aiact_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/register", c.auth.Register)
		api.POST("/login", c.auth.Login)
	}

	authorized := router.Group("/api")
	authorized.Use(middleware.AuthMiddleware(cfg))
	{
		authorized.GET("/me", c.auth.Me)

		authorized.GET("/questions/sections", c.question.Sections)
		authorized.GET("/questions", c.question.List)
		authorized.GET("/questions/:code", c.question.Get)

		authorized.GET("/models", c.model.List)
		authorized.GET("/models/:id", c.model.Get)

		usecases := authorized.Group("/usecases")
		{
			usecases.POST("", c.useCase.Create)
			usecases.GET("", c.useCase.List)
			usecases.GET("/:id", c.useCase.Get)
			usecases.PUT("/:id", c.useCase.Update)
			usecases.DELETE("/:id", c.useCase.Delete)
			usecases.PUT("/:id/model", c.useCase.SetModel)
			usecases.GET("/:id/history", c.useCase.History)

			usecases.GET("/:id/collaborators", c.useCase.ListCollaborators)
			usecases.POST("/:id/collaborators", c.useCase.AddCollaborator)
			usecases.DELETE("/:id/collaborators/:userId", c.useCase.RemoveCollaborator)

			usecases.GET("/:id/questionnaire/current", c.questionnaire.Current)
			usecases.GET("/:id/questionnaire/answers", c.questionnaire.Answers)
			usecases.POST("/:id/questionnaire/answers", c.questionnaire.Submit)
			usecases.POST("/:id/questionnaire/answers/bulk", c.questionnaire.BulkSave)
			usecases.DELETE("/:id/questionnaire/answers", c.questionnaire.Reset)
			usecases.GET("/:id/questionnaire/progress", c.questionnaire.Progress)
			usecases.POST("/:id/score", c.questionnaire.Recalculate)

			usecases.GET("/:id/documents", c.document.List)
			usecases.POST("/:id/documents", c.document.Upload)
		}

		authorized.DELETE("/documents/:docId", c.document.Delete)
	}

	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/questions/flow", c.question.Flow)
		admin.POST("/questions", c.question.Create)
		admin.PUT("/questions/:code", c.question.Update)
		admin.DELETE("/questions/:code", c.question.Deactivate)

		admin.POST("/questions/validate", c.question.Validate)

		admin.POST("/models", c.model.Create)
		admin.PUT("/models/:id", c.model.Update)
		admin.POST("/models/:id/recalculate", c.model.Recalculate)
		admin.POST("/model-scores/recalculate", c.model.RecalculateAll)
	}
}

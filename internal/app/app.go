package app

import (
	"aiact_backend/internal/config"
	"aiact_backend/internal/controller"
	"aiact_backend/internal/repository"
	"aiact_backend/internal/service"
	"aiact_backend/pkg/database"
	"aiact_backend/pkg/logger"
	"aiact_backend/pkg/monitoring"
	"aiact_backend/pkg/security"
	"aiact_backend/pkg/tracing"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user         *repository.UserRepository
	company      *repository.CompanyRepository
	question     *repository.QuestionRepository
	response     *repository.ResponseRepository
	useCase      *repository.UseCaseRepository
	aiModel      *repository.AIModelRepository
	history      *repository.HistoryRepository
	collaborator *repository.CollaboratorRepository
	document     *repository.DocumentRepository
}

type services struct {
	auth          *service.AuthService
	storage       *service.StorageService
	modelScore    *service.ModelScoreService
	model         *service.ModelService
	scoring       *service.ScoringService
	questionnaire *service.QuestionnaireService
	useCase       *service.UseCaseService
	question      *service.QuestionService
	document      *service.DocumentService
}

type controllers struct {
	auth          *controller.AuthController
	useCase       *controller.UseCaseController
	questionnaire *controller.QuestionnaireController
	question      *controller.QuestionController
	model         *controller.ModelController
	document      *controller.DocumentController
	health        *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		company:      repository.NewCompanyRepository(db),
		question:     repository.NewQuestionRepository(db),
		response:     repository.NewResponseRepository(db),
		useCase:      repository.NewUseCaseRepository(db),
		aiModel:      repository.NewAIModelRepository(db),
		history:      repository.NewHistoryRepository(db),
		collaborator: repository.NewCollaboratorRepository(db),
		document:     repository.NewDocumentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, repos.company, cfg)
	s.modelScore = service.NewModelScoreService(repos.aiModel, rdb, cfg.Scoring.ModelScoreMax)
	s.model = service.NewModelService(repos.aiModel, s.modelScore)
	s.scoring = service.NewScoringService(
		repos.question,
		repos.response,
		repos.useCase,
		repos.history,
		s.modelScore,
		cfg.Scoring,
		database.EntryQuestionCode,
	)
	s.questionnaire = service.NewQuestionnaireService(s.scoring, repos.response, repos.useCase)
	s.useCase = service.NewUseCaseService(repos.useCase, repos.user, repos.collaborator, repos.history, s.scoring)
	s.question = service.NewQuestionService(repos.question, s.scoring)
	s.document = service.NewDocumentService(repos.document, s.useCase, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:          controller.NewAuthController(s.auth),
		useCase:       controller.NewUseCaseController(s.useCase),
		questionnaire: controller.NewQuestionnaireController(s.questionnaire, s.useCase, s.scoring),
		question:      controller.NewQuestionController(s.question),
		model:         controller.NewModelController(s.model),
		document:      controller.NewDocumentController(s.document),
		health:        controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	if cfg.RateLimit.Enabled {
		router.Use(security.RateLimiter(cfg.RateLimit.Burst, time.Second))
	}

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(func() string {
		if cfg.Server.Mode == "release" {
			return gin.ReleaseMode
		}
		return gin.DebugMode
	}())
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.JaegerEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Provider == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
	}

	go func() {
		log.Printf("Server running on port %d", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

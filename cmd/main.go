package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hiresense/backend/config"
	"github.com/hiresense/backend/database"
	_ "github.com/hiresense/backend/docs" // Swagger docs - auto-generated
	assessmentctrl "github.com/hiresense/backend/internal/controller/assessment"
	"github.com/hiresense/backend/internal/logger"
	"github.com/hiresense/backend/internal/model"
	"github.com/hiresense/backend/internal/repository"
	"github.com/hiresense/backend/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title HireSense Recruiting Platform API
// @version 1.0
// @description Assessment backend: timed AI interview sessions, MCQ evaluation and profile journey propagation.
// @contact.name API Support
// @contact.email support@hiresense.example.com
// @host localhost:3008
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewCandidateRepository,
			repository.NewSessionRepository,
			repository.NewMCQRepository,
			repository.NewJobAssessmentRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewQuestionSequencer,
			service.NewGeminiLLMService,
			service.NewTTSService,
			service.NewFallbackScorer,
			service.NewJourneyService,
			service.NewInterviewSessionService,
			service.NewInterviewScoringService,
			service.NewMCQEvaluationService,
		),

		// API Controllers Layer
		fx.Provide(
			assessmentctrl.NewAssessmentController,
		),

		// Invokers - Functions that are executed by Fx
		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Request logging through Zerolog instead of Gin's default logger
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	// CORS Configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Synthesized question audio is served as plain static files
	r.Static("/static/audio", cfg.Speech.AudioDir)

	// Swagger UI
	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	assessmentCtrl *assessmentctrl.AssessmentController,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")
	{
		interviewsGroup := apiGroup.Group("/interviews")
		interviewsGroup.POST("/advance", assessmentCtrl.AdvanceInterview)
		interviewsGroup.POST("/end", assessmentCtrl.EndInterview)

		mcqGroup := apiGroup.Group("/mcq")
		mcqGroup.POST("/evaluate", assessmentCtrl.EvaluateMCQ)
		mcqGroup.GET("/questions/:jobId", assessmentCtrl.GetMCQByJob)

		assessmentsGroup := apiGroup.Group("/assessments")
		assessmentsGroup.GET("/:jobId/:candidateId", assessmentCtrl.GetAssessmentState)

		apiGroup.POST("/journey-status", assessmentCtrl.UpdateJourneyStatus)
	}

	// HTTP Server Setup and Lifecycle
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Assessment API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.CandidateProfile{},
		&model.Job{},
		&model.AssessmentSession{},
		&model.MCQQuestion{},
		&model.MCQAnswer{},
		&model.JobAssessment{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

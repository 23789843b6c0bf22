package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hirepulse/hirepulse-api/api/swagger"
	"github.com/hirepulse/hirepulse-api/internal/handler"
	"github.com/hirepulse/hirepulse-api/internal/repository"
	"github.com/hirepulse/hirepulse-api/internal/service"
	"github.com/hirepulse/hirepulse-api/pkg/cache"
	"github.com/hirepulse/hirepulse-api/pkg/config"
	"github.com/hirepulse/hirepulse-api/pkg/database"
	"github.com/hirepulse/hirepulse-api/pkg/export"
	"github.com/hirepulse/hirepulse-api/pkg/logger"
	corsmiddleware "github.com/hirepulse/hirepulse-api/pkg/middleware/cors"
	reqidmiddleware "github.com/hirepulse/hirepulse-api/pkg/middleware/requestid"
	"github.com/hirepulse/hirepulse-api/pkg/storage"
	"go.uber.org/zap"
)

// @title HirePulse API
// @version 0.1.0
// @description Recruitment pipeline service: jobs, applications, interviews and offers
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, dashboard caching disabled", zap.Error(err))
		redisClient = nil
	}

	files, err := storage.NewLocalStorage(cfg.Storage.UploadsDir)
	if err != nil {
		logr.Fatal("failed to prepare uploads directory", zap.Error(err))
	}
	signer := storage.NewSignedURLSigner(cfg.Storage.SignedURLSecret, cfg.Storage.SignedURLTTL)

	userRepo := repository.NewUserRepository(db)
	candidateRepo := repository.NewCandidateRepository(db)
	jobRepo := repository.NewJobRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	interviewRepo := repository.NewInterviewRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	mprRepo := repository.NewMPRRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	validate := validator.New()

	notifier := service.NewNotificationService(notificationRepo, service.NewSMTPSender(cfg.Email), cfg.Email, "HirePulse", logr)
	notifier.Start(context.Background())
	defer notifier.Stop()

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, candidateRepo, validate, logr, cfg.JWT)
	candidateSvc := service.NewCandidateService(candidateRepo, jobRepo, service.NewHeuristicResumeParser(), files, validate, logr)
	jobSvc := service.NewJobService(jobRepo, candidateRepo, validate, logr)
	applicationSvc := service.NewApplicationService(applicationRepo, candidateRepo, jobRepo, notifier, validate, logr)
	pipelineSvc := service.NewPipelineService(applicationRepo, candidateRepo, jobRepo, notifier, cfg.Pipeline, logr)
	interviewSvc := service.NewInterviewService(interviewRepo, applicationRepo, candidateRepo, jobRepo, notifier, cfg.Pipeline, validate, logr)
	offerSvc := service.NewOfferService(offerRepo, candidateRepo, jobRepo, mprRepo, notifier, cfg.Pipeline, validate, logr)
	mprSvc := service.NewMPRService(mprRepo, validate, logr)
	dashboardSvc := service.NewDashboardService(service.DashboardStores{
		Applications: applicationRepo,
		Interviews:   interviewRepo,
		Offers:       offerRepo,
		Jobs:         jobRepo,
	}, redisClient, cfg.Dashboard, logr)

	handlers := handler.Handlers{
		Auth:         handler.NewAuthHandler(authSvc),
		Candidates:   handler.NewCandidateHandler(candidateSvc, files, signer, cfg.Storage.MaxResumeSizeByte),
		Jobs:         handler.NewJobHandler(jobSvc, applicationSvc, export.NewCSVExporter()),
		Applications: handler.NewApplicationHandler(applicationSvc, pipelineSvc, metricsSvc),
		Interviews:   handler.NewInterviewHandler(interviewSvc),
		Offers:       handler.NewOfferHandler(offerSvc, candidateSvc, jobSvc, export.NewOfferLetterRenderer()),
		MPRs:         handler.NewMPRHandler(mprSvc),
		Dashboard:    handler.NewDashboardHandler(dashboardSvc),
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, handlers, handler.RouterDeps{
		AuthService: authSvc,
		AuditRepo:   auditRepo,
		Metrics:     metricsSvc,
		APIPrefix:   cfg.APIPrefix,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

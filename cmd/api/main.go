package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/config"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/database"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/handler"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/middleware"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/models"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/repository"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/router"
	"github.com/noxarianet-commits/olahraga-smk1-sragi/internal/service"
	cloud "github.com/noxarianet-commits/olahraga-smk1-sragi/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Class{}, &models.Activity{}, &models.Announcement{}, &models.AuditLog{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	auditService := service.NewAuditService(auditRepo, logger)
	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	activityService := service.NewActivityService(activityRepo, validate, logger)
	verificationService := service.NewVerificationService(activityRepo, auditService, logger)
	userService := service.NewUserService(userRepo, auditService, logger)
	classService := service.NewClassService(classRepo, userRepo, validate, logger)
	announcementService := service.NewAnnouncementService(announcementRepo, validate, redisClient, cfg.DashboardCacheTTL, logger)
	dashboardService := service.NewDashboardService(activityRepo, userRepo, classRepo, announcementService, redisClient, cfg.DashboardCacheTTL, logger)
	uploadService := service.NewUploadService(uploader, cfg.UploadMaxSizeMB, logger)

	authHandler := handler.NewAuthHandler(authService, logger)
	activityHandler := handler.NewActivityHandler(activityService, verificationService, logger)
	userHandler := handler.NewUserHandler(userService, authService, logger)
	classHandler := handler.NewClassHandler(classService, logger)
	announcementHandler := handler.NewAnnouncementHandler(announcementService, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)
	uploadHandler := handler.NewUploadHandler(uploadService, logger)
	auditHandler := handler.NewAuditHandler(auditService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:         authHandler,
		ActivityHandler:     activityHandler,
		UserHandler:         userHandler,
		ClassHandler:        classHandler,
		AnnouncementHandler: announcementHandler,
		DashboardHandler:    dashboardHandler,
		UploadHandler:       uploadHandler,
		AuditHandler:        auditHandler,
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
		LoginRateLimit:      middleware.RateLimit("login", cfg.LoginRateLimit, cfg.LoginRateWindow),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}

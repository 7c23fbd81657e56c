package main

import (
	"log"
	"net/http"

	"bikefine/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"bikefine/internal/auth"
	"bikefine/internal/cache"
	"bikefine/internal/config"
	"bikefine/internal/db"
	"bikefine/internal/handler"
	"bikefine/internal/model"
	"bikefine/internal/repository"
	"bikefine/internal/router"
	"bikefine/internal/service"
	"bikefine/internal/upload"
)

// @title Bike Violation Management API
// @version 1.0
// @description Municipal bike violation management: citizen accounts, violation cases, support queries, fine payments and admin sessions.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Case{},
		&model.Query{},
		&model.QueryResponse{},
		&model.QueryAttachment{},
		&model.AdminUser{},
		&model.AdminSession{},
		&model.AdminActivity{},
		&model.Payment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	uploadStore, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload store init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	caseRepo := repository.NewCaseRepository(gormDB)
	queryRepo := repository.NewQueryRepository(gormDB)
	paymentRepo := repository.NewPaymentRepository(gormDB)
	adminRepo := repository.NewAdminRepository(gormDB)
	sessionRepo := repository.NewSessionRepository(gormDB)
	activityRepo := repository.NewActivityRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	sessionCache := auth.NewSessionCache(cacheClient)

	// Initialize services
	userService := service.NewUserService(userRepo, jwtService)
	caseService := service.NewCaseService(caseRepo, userRepo, queryRepo)
	queryService := service.NewQueryService(queryRepo, caseRepo)
	paymentService := service.NewPaymentService(paymentRepo, caseRepo)
	adminService := service.NewAdminService(adminRepo, sessionRepo, activityRepo, sessionCache)
	statsService := service.NewStatsService(userRepo, caseRepo, queryRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService)
	userHandler := handler.NewUserHandler(userService, adminService)
	caseHandler := handler.NewCaseHandler(caseService, adminService)
	queryHandler := handler.NewQueryHandler(queryService, adminService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	adminHandler := handler.NewAdminHandler(adminService)
	uploadHandler := handler.NewUploadHandler(uploadStore, caseService, queryService, adminService)
	statsHandler := handler.NewStatsHandler(statsService)
	healthHandler := handler.NewHealthHandler(gormDB)

	// Register routes
	router.Register(
		e,
		cfg,
		adminService,
		authHandler,
		userHandler,
		caseHandler,
		queryHandler,
		paymentHandler,
		adminHandler,
		uploadHandler,
		statsHandler,
		healthHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"workOracle/app/echo-server/router"
	"workOracle/business/engine"
	"workOracle/internal/middleware"
	psqlRepo "workOracle/internal/repository/postgres"
	redisRepo "workOracle/internal/repository/redis"
	"workOracle/internal/rest"
	"workOracle/pkg/config"
	"workOracle/pkg/database"
	redisdb "workOracle/pkg/database/redis"
	"workOracle/pkg/logger"
	"workOracle/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting WorkOracle", "version", cfg.App.Version)

	defaultCfg := engine.DefaultConfig()
	if err := defaultCfg.Validate(); err != nil {
		logger.Fatal("Invalid default engine config", "error", err)
	}

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer func() {
		if err := redisdb.CloseRedisClient(redisClient); err != nil {
			logger.Error("Failed to close Redis client", "error", err)
		}
	}()

	logger.Info("Redis connected successfully")

	metrics.Init()

	// Init repo
	workRepo := psqlRepo.NewWorkRepository(db)
	tagRepo := psqlRepo.NewTagRepository(db)
	eventRepo := psqlRepo.NewGameEventRepository(db)
	engineConfigRepo := psqlRepo.NewEngineConfigRepository(db)
	sessionRepo := redisRepo.NewSessionRepository(redisClient)

	// Init service
	gameService := engine.NewGameService(
		workRepo,
		tagRepo,
		sessionRepo,
		eventRepo,
		engineConfigRepo,
		cfg.Engine.ConfigName,
		defaultCfg,
		nil,
	)

	// Init handler
	gameHandler := rest.NewGameHandler(gameService)
	catalogHandler := rest.NewCatalogHandler(workRepo, tagRepo)
	adminHandler := rest.NewEngineAdminHandler(engineConfigRepo, gameService, eventRepo)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceMiddleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetGameRoutes(api, gameHandler)
	router.SetCatalogRoutes(api, catalogHandler)
	router.SetEngineAdminRoutes(api, adminHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

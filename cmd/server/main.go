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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/nbasharp/nba-sharp-go/internal/api"
	"github.com/nbasharp/nba-sharp-go/internal/cache"
	"github.com/nbasharp/nba-sharp-go/internal/config"
	"github.com/nbasharp/nba-sharp-go/internal/database"
	"github.com/nbasharp/nba-sharp-go/internal/logging"
	"github.com/nbasharp/nba-sharp-go/internal/services"
	"github.com/nbasharp/nba-sharp-go/internal/slate"
)

func main() {
	// Local development reads .env; absence is fine in deployment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.NewLogger(cfg.LogLevel, cfg.Environment)

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(context.Background(), db.Pool); err != nil {
		logger.Fatalf("Failed to ensure database schema: %v", err)
	}

	// Initialize Redis
	redis, err := database.NewRedisConnection(cfg.Redis)
	if err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	// Repositories
	teamRepo := database.NewTeamStatsRepository(db.Pool)
	playerRepo := database.NewPlayerStatsRepository(db.Pool)
	scheduleRepo := database.NewScheduleRepository(db.Pool)
	matchupRepo := database.NewMatchupRepository(db.Pool)
	projectionRepo := database.NewProjectionRepository(db.Pool)

	// Caches
	slateCache := cache.NewSlateCache(redis.Client, cfg.Cache.SlateTTL)
	projCache := cache.NewProjectionCache(redis.Client, cfg.Cache.ProjectionTTL)

	// Collectors and pipeline stages
	statsClient := services.NewStatsAPIClient(cfg.StatsAPI, logger)
	statsCollector := services.NewStatsCollector(statsClient, teamRepo, playerRepo, logger)
	scheduleCollector, err := services.NewScheduleCollector(cfg.OddsAPI, scheduleRepo, logger)
	if err != nil {
		logger.Fatalf("Failed to create schedule collector: %v", err)
	}
	matchupService := services.NewMatchupService(scheduleRepo, teamRepo, matchupRepo, logger)
	projectionService := services.NewProjectionService(playerRepo, teamRepo, matchupRepo, projectionRepo, logger)
	pipeline := services.NewPipelineService(
		scheduleCollector, statsCollector, matchupService, projectionService,
		slateCache, projCache, logger,
	)

	// Scheduler
	scheduler, err := services.NewScheduler(cfg.Scheduler, pipeline, logger)
	if err != nil {
		logger.Fatalf("Failed to create scheduler: %v", err)
	}
	if cfg.Scheduler.Enabled {
		if err := scheduler.Start(); err != nil {
			logger.Fatalf("Failed to start scheduler: %v", err)
		}
		defer scheduler.Stop()
	}

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	handlers := api.NewHandlers(
		db, redis,
		pipeline, matchupService, matchupRepo, projectionRepo,
		projCache, slate.NewLoader(logger), slateCache,
		scheduler, logger,
	)
	api.SetupRoutes(router, handlers)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/lcoutinho/valor-explorer/internal/api"
	"github.com/lcoutinho/valor-explorer/internal/api/handlers"
	"github.com/lcoutinho/valor-explorer/internal/api/middleware"
	"github.com/lcoutinho/valor-explorer/internal/catalog"
	"github.com/lcoutinho/valor-explorer/internal/models"
	"github.com/lcoutinho/valor-explorer/internal/services"
	"github.com/lcoutinho/valor-explorer/internal/squad"
	"github.com/lcoutinho/valor-explorer/pkg/config"
	"github.com/lcoutinho/valor-explorer/pkg/database"
	"github.com/lcoutinho/valor-explorer/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	log := logger.InitLogger()
	if cfg.IsDevelopment() {
		log.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to the saved-squad store
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.SavedSquad{}); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	// Connect to Redis if configured; the stats cache is optional
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logrus.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opt)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logrus.Warnf("Redis unavailable, stats caching disabled: %v", err)
			redisClient.Close()
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}
	cacheService := services.NewCacheService(redisClient)

	// Load the player catalog; an empty catalog is served as empty listings
	store := catalog.NewStore()
	loader := catalog.NewLoader(cfg.PlayersDataSource, log)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), time.Minute)
	players, err := loader.Load(loadCtx)
	cancelLoad()
	if err != nil {
		logrus.Errorf("Failed to load player catalog: %v", err)
	} else {
		store.Replace(players)
	}

	// Optional scheduled catalog refresh
	if cfg.CatalogRefreshInterval > 0 {
		refresher := catalog.NewRefresher(store, loader, cacheService, log, cfg.CatalogRefreshInterval)
		if err := refresher.Start(); err != nil {
			logrus.Errorf("Failed to start catalog refresher: %v", err)
		} else {
			defer refresher.Stop()
		}
	}

	// Squad-building sessions
	manager := squad.NewManager(cfg.SquadBudget)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CorsOrigins))
	router.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(store)
	router.GET("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, db, store, cacheService, manager, cfg)

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	ginprometheus "github.com/zsais/go-gin-prometheus"

	"wyr-server/internal/config"
	"wyr-server/internal/handler"
	"wyr-server/internal/middleware"
	"wyr-server/internal/repository"
	"wyr-server/internal/service"
	"wyr-server/pkg/logger"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Setup ---
	log, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: "json",
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	zap.ReplaceGlobals(log)
	zap.L().Info("Logger initialized successfully", zap.String("logLevel", cfg.LogLevel))
	zap.L().Info("Configuration loaded")

	// --- Storage Connection ---
	// A missing DATABASE_URL is not fatal: the server starts without storage
	// and the data-touching endpoints report the database as not configured.
	var promptRepo repository.PromptRepository
	var mongoClient *mongo.Client
	if cfg.DatabaseURL == "" {
		zap.L().Warn("DATABASE_URL is not set, starting without storage")
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		mongoClient, err = setupMongo(ctx, cfg)
		cancel()
		if err != nil {
			zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		defer func() {
			disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer disconnectCancel()
			if err := mongoClient.Disconnect(disconnectCtx); err != nil {
				zap.L().Error("Error disconnecting from MongoDB", zap.Error(err))
			}
		}()
		zap.L().Info("Connected to MongoDB", zap.String("database", cfg.DatabaseName))

		db := mongoClient.Database(cfg.DatabaseName)

		indexCtx, indexCancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = repository.EnsureIndexes(indexCtx, db)
		indexCancel()
		if err != nil {
			zap.L().Fatal("Failed to create indexes", zap.Error(err))
		}

		promptRepo = repository.NewMongoPromptRepository(db, log)
	}

	// --- Dependency Injection ---
	promptService := service.NewPromptService(promptRepo, log)
	promptHandler := handler.NewPromptHandler(promptService)

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(middleware.GinZapLogger(log))
	router.Use(gin.Recovery())

	// Configure CORS Middleware. The wildcard policy keeps credentials
	// allowed by matching every origin through AllowOriginFunc, since
	// gin-contrib rejects AllowAllOrigins combined with credentials.
	corsConfig := cors.DefaultConfig()
	if cfg.AllowAllOrigins() {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		corsConfig.AllowOrigins = cfg.GetAllowedOrigins()
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Health Check Endpoint
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// Register Application Routes
	promptHandler.RegisterRoutes(router)

	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	// --- Start HTTP Server ---
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.Port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}

// setupMongo connects to MongoDB with retry logic and verifies the connection
// with a ping.
func setupMongo(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	zap.L().Debug("Setting up MongoDB connection...")

	var client *mongo.Client
	var lastErr error
	maxRetries := 10
	retryDelay := 3 * time.Second

	zap.L().Info("Attempting to connect to MongoDB", zap.Int("max_retries", maxRetries), zap.Duration("retry_delay", retryDelay))

	for i := 0; i < maxRetries; i++ {
		attempt := i + 1

		connectCtx, connectCancel := context.WithTimeout(ctx, 5*time.Second)
		client, lastErr = mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.DatabaseURL))
		connectCancel()

		if lastErr != nil {
			zap.L().Warn("MongoDB connection failed, retrying...",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", maxRetries),
				zap.Error(lastErr),
			)
			if i < maxRetries-1 {
				time.Sleep(retryDelay)
			}
			continue
		}

		pingCtx, pingCancel := context.WithTimeout(ctx, 2*time.Second)
		lastErr = client.Ping(pingCtx, readpref.Primary())
		pingCancel()

		if lastErr == nil {
			zap.L().Info("Successfully connected and pinged MongoDB", zap.Int("attempt", attempt))
			return client, nil
		}

		_ = client.Disconnect(context.Background())
		zap.L().Warn("MongoDB ping failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxRetries),
			zap.Error(lastErr),
		)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to mongodb after %d attempts: %w", maxRetries, lastErr)
}

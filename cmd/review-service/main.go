package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cuongbtq/news-review/internal/api/handler"
	"github.com/cuongbtq/news-review/internal/api/router"
	"github.com/cuongbtq/news-review/internal/config"
	"github.com/cuongbtq/news-review/internal/review"
	"github.com/cuongbtq/news-review/internal/review/storage"
	"github.com/cuongbtq/news-review/shared/logger"
	"github.com/cuongbtq/news-review/shared/mongodb"
	"github.com/cuongbtq/news-review/shared/openai"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or flags")
	}

	// Parse command-line flags
	defaultConfigPath := os.Getenv("REVIEW_SERVICE_CONFIG_PATH")
	if defaultConfigPath == "" {
		defaultConfigPath = "configs/review-service/config.yaml"
	}
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Initialize logger
	appLogger, err := initLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger.Info("Starting review service",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.App.Environment),
	)

	// Initialize MongoDB client
	mongoClient, err := mongodb.NewClient(&mongodb.Config{
		URI:            cfg.MongoDB.URI,
		Database:       cfg.MongoDB.Database,
		ConnectTimeout: cfg.MongoDB.ConnectTimeout,
	}, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize MongoDB: %w", err)
	}

	appLogger.Info("Document store connection established")

	// Initialize chat completion client
	chatClient := openai.NewClient(&openai.Config{
		Endpoint: cfg.LLM.Endpoint,
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		Timeout:  cfg.LLM.RequestTimeout,
	}, appLogger.Logger)

	// Wire the review pipeline
	articleStore := storage.NewArticleStore(mongoClient, cfg.MongoDB.Collection, appLogger.Logger)
	analyzer := review.NewAnalyzer(chatClient, appLogger.Logger)
	registry := review.NewRegistry()

	runner := review.NewRunner(&review.Config{
		Logger:      appLogger.Logger,
		Articles:    articleStore,
		Analyzer:    analyzer,
		Registry:    registry,
		Concurrency: cfg.Worker.Concurrency,
		QueueSize:   cfg.Worker.QueueSize,
	})

	runnerCtx, runnerCancel := context.WithCancel(context.Background())
	defer runnerCancel()
	runner.Start(runnerCtx)

	// Initialize router
	r := initRouter(cfg.App.Environment, appLogger.Logger, registry, runner)

	// Create HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed to start",
				slog.Any("error", err),
			)
			os.Exit(1)
		}
	}()

	appLogger.Info("Review service is running",
		slog.String("address", addr),
	)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown",
			slog.Any("error", err),
		)
	}

	// Stop accepting review work and let in-flight jobs finish
	done := make(chan struct{})
	go func() {
		runner.Stop()
		close(done)
	}()

	select {
	case <-done:
		appLogger.Info("Review runner stopped gracefully")
	case <-time.After(30 * time.Second):
		appLogger.Warn("Review runner shutdown timeout exceeded, forcing exit")
	}

	runnerCancel()

	if err := mongoClient.Close(context.Background()); err != nil {
		appLogger.Error("Failed to close document store connection",
			slog.Any("error", err),
		)
	}

	appLogger.Info("Review service shutdown complete")
	return nil
}

// initLogger initializes and configures the application logger
func initLogger(cfg *config.LoggingConfig) (*logger.Logger, error) {
	loggerCfg := &logger.Config{
		Level:        cfg.Level,
		Format:       cfg.Format,
		Output:       cfg.Output,
		EnableSource: cfg.EnableCaller,
		TimeFormat:   time.RFC3339,
	}

	return logger.New(loggerCfg)
}

// initRouter initializes the Gin router with all routes and middleware
func initRouter(environment string, logger *slog.Logger, registry *review.Registry, runner *review.Runner) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	handlerDeps := &handler.Dependencies{
		Logger:   logger,
		Registry: registry,
		Runner:   runner,
	}

	return router.SetupRouter(handlerDeps)
}

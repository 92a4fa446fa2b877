package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sjperalta/cabinet-api/docs" // Swagger docs
	"github.com/sjperalta/cabinet-api/internal/access"
	"github.com/sjperalta/cabinet-api/internal/config"
	"github.com/sjperalta/cabinet-api/internal/database"
	"github.com/sjperalta/cabinet-api/internal/events"
	"github.com/sjperalta/cabinet-api/internal/events/kafka"
	"github.com/sjperalta/cabinet-api/internal/handlers"
	"github.com/sjperalta/cabinet-api/internal/jobs"
	"github.com/sjperalta/cabinet-api/internal/metrics"
	"github.com/sjperalta/cabinet-api/internal/middleware"
	"github.com/sjperalta/cabinet-api/internal/rules"
	"github.com/sjperalta/cabinet-api/internal/services"
	"github.com/sjperalta/cabinet-api/internal/storage"
	"github.com/sjperalta/cabinet-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Cabinet Ledger API
// @version 1.0
// @description REST API for the school club cabinet ledger: payments, cashbook, loans, savings and roster

// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	table, pins, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		logger.Error("Failed to load rules", "error", err)
		os.Exit(1)
	}
	engine, err := rules.NewEngine(table)
	if err != nil {
		logger.Error("Invalid rules", "error", err)
		os.Exit(1)
	}
	logger.Info("Loaded rules", "version", table.Version, "roles", len(pins))

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database", "driver", cfg.DatabaseDriver)

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	worker := jobs.NewWorker(cfg.WorkerCount, 256)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	var publisher events.Publisher = events.Noop{}
	if cfg.EventsEnabled() {
		publisher = events.NewAsync(kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), worker)
		logger.Info("Publishing ledger events", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	svcs := services.NewServices(db, access.NewGate(pins), engine, publisher, store, cfg)

	scheduleJobs(worker, svcs, cfg)

	h := handlers.NewHandlers(svcs, store)
	router := setupRouter(h, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// the worker drains queued publishes before the publisher closes
	worker.Shutdown()
	logger.Info("Background worker stopped")
	if err := publisher.Close(); err != nil {
		logger.Error("Failed to close event publisher", "error", err)
	}

	if err := database.Close(db); err != nil {
		logger.Error("Failed to close database", "error", err)
	}

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	h.Register(router.Group("/api/v1"), cfg.JWTSecret)

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services, cfg *config.Config) {
	if cfg.BackupIntervalHours <= 0 {
		return
	}

	interval := time.Duration(cfg.BackupIntervalHours) * time.Hour
	worker.ScheduleEvery("ledger backup", interval, func(ctx context.Context) error {
		logger.Info("[Job] Archiving ledger...")
		return svcs.Snapshot.Backup(ctx)
	})

	logger.Info("Scheduled recurring jobs", "backup_interval", interval.String())
}

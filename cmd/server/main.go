package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightlog-service/internal/api"
	"flightlog-service/internal/domain/repository"
	"flightlog-service/internal/handler"
	"flightlog-service/internal/infrastructure/config"
	"flightlog-service/internal/infrastructure/persistence"
	localRepo "flightlog-service/internal/interface/repository"
	"flightlog-service/internal/usecase"
	"flightlog-service/pkg/logger"
	"flightlog-service/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func main() {
	// Create logger
	log := logger.NewLogger(os.Getenv("LOG_LEVEL"))
	defer log.Sync()
	log.Info("Starting Flightlog Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	log.Info("Configuration loaded",
		"version", cfg.AppVersion,
		"backend", cfg.StorageBackend)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics("flightlog")

	// Set up the flight store backend
	var flightRepository repository.FlightRepository
	switch cfg.StorageBackend {
	case config.BackendSQLite:
		log.Info("Opening SQLite store", "path", cfg.SQLitePath)
		db, err := persistence.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			log.Fatal("Failed to open SQLite store", "error", err)
		}
		flightRepository, err = localRepo.NewGormFlightRepository(db)
		if err != nil {
			log.Fatal("Failed to prepare SQLite store", "error", err)
		}
	default:
		log.Info("Using JSON file store", "path", cfg.StorePath)
		flightRepository = localRepo.NewFileFlightRepository(cfg.StorePath)
	}

	// Load the flight log; a corrupt store is fatal, a missing one is empty
	flightService, err := usecase.NewFlightService(ctx, flightRepository, log, m)
	if err != nil {
		log.Fatal("Failed to load flight log", "error", err)
	}

	// Set up the assistant gateway
	assistantRepository := localRepo.NewOpenAIAssistantRepository(
		cfg.AssistBaseURL,
		cfg.AssistAPIKey,
		cfg.AssistModel,
		cfg.AssistTimeout,
		log,
	)
	assistService := usecase.NewAssistService(assistantRepository, log, m)

	// Set up HTTP surface
	gin.SetMode(gin.ReleaseMode)
	router := api.SetupRouter(
		handler.NewPageHandler(flightService),
		handler.NewFlightHandler(flightService, log),
		handler.NewStatsHandler(flightService),
		handler.NewAssistHandler(assistService, flightService, log),
		log,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	log.Info("Flightlog Service stopped")
}

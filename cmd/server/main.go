package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ibp-ai/planning-engine/internal/api"
	"github.com/ibp-ai/planning-engine/internal/cache"
	"github.com/ibp-ai/planning-engine/internal/config"
	"github.com/ibp-ai/planning-engine/internal/featurestore"
	"github.com/ibp-ai/planning-engine/internal/forecast"
	"github.com/ibp-ai/planning-engine/internal/metrics"
	"github.com/ibp-ai/planning-engine/internal/repository/postgres"
	"github.com/ibp-ai/planning-engine/internal/service"
	"github.com/ibp-ai/planning-engine/internal/store"
	"github.com/ibp-ai/planning-engine/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	collector, err := metrics.NewCollector()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	loader := featurestore.NewLoader(cfg.App.UploadDir, cfg.App.DataDir)
	source := buildHistorySource(cfg, loader)

	sessions := store.New()
	engine := forecast.NewEngine(source, collector)

	services := &api.Services{
		ForecastService: service.NewForecastService(engine, sessions, collector),
		PlanningService: service.NewPlanningService(sessions, collector),
		ScenarioService: service.NewScenarioService(sessions, collector),
		ExplainService:  service.NewExplainService(sessions, loader),
	}

	// Initialize HTTP server
	router := api.NewRouter(services, cfg, collector)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

// buildHistorySource wires the sales history chain: Postgres when a DSN is
// configured, otherwise the CSV feature store, optionally behind the Redis
// read-through cache.
func buildHistorySource(cfg *config.Config, loader *featurestore.Loader) featurestore.HistorySource {
	var source featurestore.HistorySource = featurestore.NewCSVSource(loader)

	if cfg.Database.DSN != "" {
		db, err := postgres.NewDB(cfg.Database.DSN)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to connect to sales database")
		}
		source = postgres.NewSalesRepository(db)
		logger.Log.Info().Msg("Sales history source: postgres")
	} else {
		logger.Log.Info().Str("data_dir", cfg.App.DataDir).Msg("Sales history source: csv feature store")
	}

	if cfg.Cache.Enabled {
		historyCache, err := cache.NewHistoryCache(cfg.Cache)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to initialize history cache")
		}
		source = featurestore.NewCachingSource(source, historyCache)
		logger.Log.Info().Msg("History cache enabled")
	}

	return source
}

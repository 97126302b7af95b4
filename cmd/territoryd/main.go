package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"territory/internal/amqp"
	"territory/internal/backend"
	"territory/internal/cache"
	"territory/internal/config"
	"territory/internal/feed"
	apphttp "territory/internal/http"
	"territory/internal/log"
	"territory/internal/metrics"
	"territory/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.Config{Level: log.LevelFromEnv(), Component: "territoryd"})
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	result, err := backend.NewFactory(logger.Logger).CreateBackend(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to initialize settings backend", log.FieldError, err)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", log.FieldError, err)
			}
		}()
	}

	// AMQP is optional: without it settings changes are stored but not
	// mirrored to the spreadsheet.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without sync", log.FieldError, err)
		} else {
			logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	settingsSvc := services.NewSettingsService(result.Store, amqpClient, cfg.SettingsDebounce, logger)
	defer settingsSvc.Close()

	loader := feed.NewLoader(
		feed.NewSource(cfg.ConsumptionFeed, cfg.FeedTimeout),
		feed.NewSource(cfg.NEFeed, cfg.FeedTimeout),
		feed.NewSource(cfg.WorkloadFeed, cfg.FeedTimeout),
		logger,
	)

	modelCache := cache.NewLRUCache[*services.DashboardModel](256, 5*time.Minute)
	cacheManager := cache.NewManager()
	cacheManager.Register(modelCache)
	cacheManager.StartCleanup(10 * time.Minute)
	defer cacheManager.Stop()

	modelSvc := services.NewModelService(loader, settingsSvc, modelCache, logger)

	srv := apphttp.NewServer(":"+cfg.Port, settingsSvc, modelSvc, metrics.New(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting territoryd",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"amqp_enabled", amqpClient != nil)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

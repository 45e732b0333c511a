package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Sharma12321/SreeHari-Portfolio/pkg/api"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/clients/ipapi"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/clients/ipapico"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/clients/telegram"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/config"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/logging"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/metrics"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/middleware"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/services"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/storage"
)

func main() {
	envErr := godotenv.Load()

	// Initialize configuration
	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		logger.Warn().Err(envErr).Msg("Error loading .env file")
	}
	if cfg.TelegramBotToken == "" || cfg.TelegramChatID == "" {
		logger.Warn().Msg("TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID is not set, submissions will fail to deliver")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage
	db, err := storage.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("Error opening database")
	}
	defer db.Close()

	assetStore := storage.NewAssetStore(db, cfg.DBDriver)
	if err := assetStore.Migrate(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Error creating asset tables")
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// Initialize API clients
	geolocationClient := ipapi.NewClient(cfg.GeolocationAPIURL, cfg.LookupTimeout)
	reputationClient := ipapico.NewClient(cfg.ReputationAPIURL, cfg.LookupTimeout)
	telegramClient := telegram.NewClient(cfg.TelegramAPIURL, cfg.TelegramBotToken, cfg.TelegramChatID, cfg.DispatchTimeout)

	// Initialize services
	submissionService := services.NewContactSubmissionService(
		services.NewGeolocationResolver(geolocationClient, logger, m),
		services.NewRiskHeuristic(reputationClient, logger, m),
		telegramClient,
		m,
		logger,
		nil,
	)
	assetService := services.NewAssetService(assetStore, logger)

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(
		middleware.Recovery(logger),
		middleware.RequestLogger(logging.Component(logger, "http")),
		middleware.CORS(),
		middleware.BodyLimit(cfg.MaxBodyBytes),
	)

	handlers := api.NewHandlers(submissionService, assetService, assetStore, logger)
	handlers.RegisterRoutes(router, registry)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.LookupTimeout + cfg.DispatchTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("db_driver", cfg.DBDriver).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Error starting server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error during shutdown")
	}
}

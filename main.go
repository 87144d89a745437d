package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/forecast"
	"github.com/fakhrymubarak/weather-dashboard/internal/handler"
	"github.com/fakhrymubarak/weather-dashboard/internal/kvstore"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
	"github.com/fakhrymubarak/weather-dashboard/internal/preferences"
	"github.com/fakhrymubarak/weather-dashboard/internal/repository"
	"github.com/fakhrymubarak/weather-dashboard/internal/service"
)

// newApp wires every component from cfg. httpClient may be nil.
func newApp(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger, httpClient *http.Client) (http.Handler, func() error) {
	backend, closeStore := kvstore.Open(ctx, cfg, logger)
	prefs := preferences.NewManager(kvstore.NewStore(backend, logger), model.Unit(cfg.DefaultUnit))

	weatherRepo := repository.NewWeatherRepository(repository.Options{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
		Logger:  logger,
	}, httpClient)
	weatherService := service.NewWeatherService(weatherRepo, prefs, forecast.Aggregator{MaxDays: cfg.ForecastMaxDays}, logger)

	return handler.NewRouter(handler.NewWeatherHandler(weatherService, logger), logger), closeStore
}

func main() {
	logger := config.GetLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalw("Failed to load config", "error", err)
	}
	if cfg.APIKey == "" || cfg.APIKey == repository.APIKeyPlaceholder {
		logger.Warn(service.MsgConfiguration)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, closeStore := newApp(ctx, cfg, logger, nil)
	defer closeStore()

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           app,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	go func() {
		logger.Infow("Weather dashboard running", "port", cfg.ServerPort, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("Server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("Error during shutdown", "error", err)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nomadreads/nomadreads-server/internal/config"
	"github.com/nomadreads/nomadreads-server/internal/infrastructure"
	"github.com/nomadreads/nomadreads-server/internal/infrastructure/metrics"
	"github.com/nomadreads/nomadreads-server/internal/infrastructure/observability"
	"github.com/nomadreads/nomadreads-server/internal/interfaces/httpserver"
)

type Application struct {
	httpServer    *httpserver.HttpServer
	metricsServer *metrics.Server
	log           zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, metricsServer *metrics.Server, log zerolog.Logger) *Application {
	return &Application{
		httpServer:    httpServer,
		metricsServer: metricsServer,
		log:           log,
	}
}

// Start runs the API and metrics listeners until ctx is cancelled or one of them fails.
func (a *Application) Start(ctx context.Context) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return a.httpServer.Run(egCtx)
	})
	eg.Go(func() error {
		return a.metricsServer.Run(egCtx)
	})
	return eg.Wait()
}

func main() {
	loadEnvFiles()

	cfg, err := infrastructure.ProvideConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := infrastructure.ProvideLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	completer := infrastructure.ProvideChatCompleter(cfg, log)
	recommendationService := infrastructure.ProvideRecommendationService(cfg, completer, log)
	httpServer := httpserver.New(cfg, log, recommendationService)
	app := NewApplication(httpServer, infrastructure.ProvideMetricsServer(cfg, log), log)

	log.Info().
		Str("version", config.Version).
		Str("model", completer.Model()).
		Str("llm_base_url", cfg.LLMBaseURL).
		Bool("sanitize_model_output", cfg.SanitizeModelOutput).
		Int("rate_limit_per_minute", cfg.RateLimitPerMinute).
		Msg("starting recommendation server")

	if err := app.Start(ctx); err != nil {
		log.Error().Err(err).Msg("application stopped with error")
		return
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}

package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/nomadreads/nomadreads-server/internal/config"
	"github.com/nomadreads/nomadreads-server/internal/domain/recommendation"
	"github.com/nomadreads/nomadreads-server/internal/infrastructure/inference"
	"github.com/nomadreads/nomadreads-server/internal/infrastructure/logger"
	"github.com/nomadreads/nomadreads-server/internal/infrastructure/metrics"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideLogger builds the process logger and tags it with the service name.
func ProvideLogger(cfg *config.Config) (zerolog.Logger, error) {
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return zerolog.Logger{}, err
	}
	return log.With().Str("service", cfg.ServiceName).Logger(), nil
}

// ProvideChatCompleter provides the model client
func ProvideChatCompleter(cfg *config.Config, log zerolog.Logger) *inference.ChatCompleter {
	return inference.NewChatCompleter(inference.ChatCompleterOptions{
		BaseURL:     cfg.LLMBaseURL,
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.LLMModel,
		Temperature: cfg.LLMTemperature,
		Timeout:     cfg.LLMRequestTimeout,
	}, log)
}

// ProvidePromptSet applies the optional prompt file on top of the defaults.
func ProvidePromptSet(cfg *config.Config) recommendation.PromptSet {
	if cfg.Prompts == nil {
		return recommendation.NewPromptSet("", "")
	}
	return recommendation.NewPromptSet(cfg.Prompts.SystemPrompt, cfg.Prompts.UserPromptPrefix)
}

// ProvideSanitizer returns nil when sanitising is switched off.
func ProvideSanitizer(cfg *config.Config) *recommendation.Sanitizer {
	if !cfg.SanitizeModelOutput {
		return nil
	}
	return recommendation.NewSanitizer()
}

func ProvideMetricsServer(cfg *config.Config, log zerolog.Logger) *metrics.Server {
	return metrics.NewServer(cfg.MetricsPort, cfg.ShutdownTimeout, log)
}

// ProvideRecommendationService wires the service the way both entry points need it.
func ProvideRecommendationService(cfg *config.Config, completer recommendation.Completer, log zerolog.Logger) recommendation.Service {
	return recommendation.NewService(completer, ProvidePromptSet(cfg), ProvideSanitizer(cfg), log)
}

var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Logger
	ProvideLogger,

	// Model client
	ProvideChatCompleter,
	wire.Bind(new(recommendation.Completer), new(*inference.ChatCompleter)),

	// Recommendation pipeline
	ProvideRecommendationService,

	// Metrics listener
	ProvideMetricsServer,
)

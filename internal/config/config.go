package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// Config holds all environment backed configuration for the recommendation server.
type Config struct {
	// HTTP Server
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080" validate:"gte=1,lte=65535"`
	MetricsPort     int           `env:"METRICS_PORT" envDefault:"9091" validate:"gte=0,lte=65535"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s" validate:"gt=0"`

	// Model API
	OpenAIAPIKey      string        `env:"OPENAI_API_KEY,notEmpty"`
	LLMBaseURL        string        `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1" validate:"required,url"`
	LLMModel          string        `env:"LLM_MODEL" envDefault:"gpt-4o-mini" validate:"required"`
	LLMTemperature    float32       `env:"LLM_TEMPERATURE" envDefault:"0.6" validate:"gte=0,lte=2"`
	LLMRequestTimeout time.Duration `env:"LLM_REQUEST_TIMEOUT" envDefault:"10m" validate:"gt=0"`

	// Recommendation behaviour
	PromptConfigFile    string        `env:"PROMPT_CONFIG_FILE"`
	Prompts             *PromptConfig `env:"-"`
	SanitizeModelOutput bool          `env:"SANITIZE_MODEL_OUTPUT" envDefault:"true"`
	RateLimitPerMinute  int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"0" validate:"gte=0"`

	// Observability / Logging
	EnableTracing bool   `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint  string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders   string `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName   string `env:"SERVICE_NAME" envDefault:"nomadreads-api" validate:"required"`
	Environment   string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"console" validate:"oneof=console json"`

	// Internal
	EnvReloadedAt time.Time `env:"-"`
}

// Load parses environment variables into Config and validates them.
func Load() (*Config, error) {
	return LoadWithOptions(env.Options{})
}

// LoadWithOptions is Load with explicit env options, mostly so tests can pass an Environment map.
func LoadWithOptions(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	cfg.LLMBaseURL = strings.TrimRight(strings.TrimSpace(cfg.LLMBaseURL), "/")

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if _, err := url.ParseRequestURI(cfg.LLMBaseURL); err != nil {
		return nil, fmt.Errorf("invalid LLM_BASE_URL: %w", err)
	}

	if cfg.EnableTracing && strings.TrimSpace(cfg.OTLPEndpoint) == "" {
		return nil, fmt.Errorf("OTEL_EXPORTER_OTLP_ENDPOINT is required when ENABLE_TRACING is true")
	}

	prompts, err := LoadPromptConfig(cfg.PromptConfigFile)
	if err != nil {
		return nil, fmt.Errorf("load prompt config: %w", err)
	}
	cfg.Prompts = prompts
	cfg.EnvReloadedAt = time.Now()

	return cfg, nil
}

// IsProduction reports whether gin should run in release mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

var Version = "dev"

func IsDev() bool {
	return strings.HasPrefix(Version, "dev")
}

package infrastructure

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomadreads/nomadreads-server/internal/config"
	"github.com/nomadreads/nomadreads-server/internal/domain/recommendation"
)

func testConfig() *config.Config {
	return &config.Config{
		ServiceName:         "nomadreads-test",
		LogLevel:            "info",
		LogFormat:           "json",
		LLMBaseURL:          "http://127.0.0.1:1/v1",
		LLMModel:            "gpt-4o-mini",
		LLMTemperature:      0.6,
		LLMRequestTimeout:   time.Second,
		SanitizeModelOutput: true,
		ShutdownTimeout:     time.Second,
	}
}

func TestProvidePromptSet(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, recommendation.NewPromptSet("", ""), ProvidePromptSet(cfg))

	cfg.Prompts = &config.PromptConfig{UserPromptPrefix: "Trip: "}
	prompts := ProvidePromptSet(cfg)
	assert.Equal(t, recommendation.DefaultSystemPrompt, prompts.System)
	assert.Equal(t, "Trip: Oslo", prompts.UserPrompt("Oslo"))
}

func TestProvideSanitizer(t *testing.T) {
	cfg := testConfig()
	assert.NotNil(t, ProvideSanitizer(cfg))

	cfg.SanitizeModelOutput = false
	assert.Nil(t, ProvideSanitizer(cfg))
}

func TestProvideChatCompleterAndService(t *testing.T) {
	cfg := testConfig()
	completer := ProvideChatCompleter(cfg, zerolog.Nop())
	require.NotNil(t, completer)
	assert.Equal(t, "gpt-4o-mini", completer.Model())
	assert.NotNil(t, ProvideRecommendationService(cfg, completer, zerolog.Nop()))
}

func TestProvideLogger(t *testing.T) {
	cfg := testConfig()
	_, err := ProvideLogger(cfg)
	require.NoError(t, err)

	cfg.LogFormat = "xml"
	_, err = ProvideLogger(cfg)
	assert.Error(t, err)
}

func TestProvideMetricsServer_Disabled(t *testing.T) {
	cfg := testConfig()
	assert.Nil(t, ProvideMetricsServer(cfg, zerolog.Nop()))

	cfg.MetricsPort = 9091
	assert.NotNil(t, ProvideMetricsServer(cfg, zerolog.Nop()))
}

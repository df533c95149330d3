package inference

import (
	"context"
	"strings"
	"time"

	"github.com/nomadreads/nomadreads-server/internal/domain/recommendation"
	"github.com/nomadreads/nomadreads-server/internal/infrastructure/metrics"
	"github.com/nomadreads/nomadreads-server/internal/utils/httpclients"
	chatclient "github.com/nomadreads/nomadreads-server/internal/utils/httpclients/chat"
	"github.com/nomadreads/nomadreads-server/internal/utils/platformerrors"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

const clientName = "llm-provider"

// ChatCompleterOptions configures a ChatCompleter.
type ChatCompleterOptions struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// ChatCompleter is a recommendation.Completer backed by an OpenAI-compatible API.
type ChatCompleter struct {
	client      *chatclient.ChatCompletionClient
	apiKey      string
	model       string
	temperature float32
	log         zerolog.Logger
}

var _ recommendation.Completer = (*ChatCompleter)(nil)

func NewChatCompleter(opts ChatCompleterOptions, log zerolog.Logger) *ChatCompleter {
	restyClient := httpclients.NewClient(clientName, opts.Timeout)
	return &ChatCompleter{
		client:      chatclient.NewChatCompletionClient(restyClient, clientName, opts.BaseURL),
		apiKey:      opts.APIKey,
		model:       opts.Model,
		temperature: opts.Temperature,
		log:         log.With().Str("component", "chat-completer").Logger(),
	}
}

// Model returns the configured model identifier.
func (c *ChatCompleter) Model() string {
	return c.model
}

// Complete sends one non-streaming chat completion in JSON object mode.
func (c *ChatCompleter) Complete(ctx context.Context, req recommendation.CompletionRequest) (*recommendation.Completion, error) {
	request := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, c.apiKey, request)
	metrics.RecordLLMDuration(c.model, time.Since(start).Seconds())
	if err != nil {
		metrics.RecordProviderError(providerErrorType(err))
		return nil, err
	}

	if len(resp.Choices) == 0 {
		metrics.RecordProviderError("empty_choices")
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, "model returned no choices", nil, "f19c3b6a-7d42-4e08-b5a1-0c8e6d2f9a34")
	}

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		metrics.RecordProviderError("empty_content")
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, "model returned empty content", nil, "2a6e0f8d-9b13-4c57-8e4a-d7f1b3c5e902")
	}

	model := resp.Model
	if model == "" {
		model = c.model
	}

	c.log.Debug().
		Str("model", model).
		Str("finish_reason", string(resp.Choices[0].FinishReason)).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("chat completion finished")

	return &recommendation.Completion{Text: text, Model: model}, nil
}

func providerErrorType(err error) string {
	platformErr := platformerrors.GetPlatformError(err)
	if platformErr == nil {
		return "unknown"
	}
	if status, ok := platformErr.Context["status_code"].(int); ok && status > 0 {
		switch {
		case status == 429:
			return "rate_limited"
		case status >= 500:
			return "upstream_5xx"
		case status >= 400:
			return "upstream_4xx"
		}
	}
	return "transport"
}

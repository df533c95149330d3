package handlers

import (
	"github.com/rs/zerolog"

	"github.com/nomadreads/nomadreads-server/internal/config"
	"github.com/nomadreads/nomadreads-server/internal/domain/recommendation"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Recommend *RecommendHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(cfg *config.Config, recommendationService recommendation.Service, log zerolog.Logger) *Provider {
	return &Provider{
		Recommend: NewRecommendHandler(recommendationService, cfg.ServiceName, cfg.LLMModel, log),
	}
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nomadreads/nomadreads-server/internal/domain/recommendation"
	"github.com/nomadreads/nomadreads-server/internal/infrastructure/metrics"
	"github.com/nomadreads/nomadreads-server/internal/infrastructure/observability"
	"github.com/nomadreads/nomadreads-server/internal/utils/platformerrors"
)

const (
	// InternalErrorMessage is the only body a 500 ever carries.
	InternalErrorMessage = "Recommendation error"
	CountryHeader        = "X-Country"
	maxBodyBytes         = 1 << 20
)

// RecommendHandler serves the recommendation endpoint.
type RecommendHandler struct {
	service     recommendation.Service
	serviceName string
	model       string
	log         zerolog.Logger
}

func NewRecommendHandler(service recommendation.Service, serviceName, model string, log zerolog.Logger) *RecommendHandler {
	return &RecommendHandler{
		service:     service,
		serviceName: serviceName,
		model:       model,
		log:         log.With().Str("component", "recommend-handler").Logger(),
	}
}

// PostRecommend answers POST with the augmented recommendation set.
func (h *RecommendHandler) PostRecommend(c *gin.Context) {
	ctx, span := observability.StartSpan(c.Request.Context(), h.serviceName, "recommendation.Recommend",
		observability.AttrModel.String(h.model),
	)
	defer span.End()

	req, err := decodeRequest(c.Request.Body)
	if err != nil {
		platformErr := platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeInternal, "decode request body", err, "6d3a9f0e-41b2-4c7d-8a5e-b9c0f2e1d478")
		h.fail(c, ctx, platformErr, "bad_body")
		return
	}
	req.CountryHeader = c.GetHeader(CountryHeader)

	observability.AddSpanAttributes(ctx, observability.AttrDestinationLength.Int(len(req.Destination)))

	result, err := h.service.Recommend(ctx, req)
	if err != nil {
		// Keep the domain error as is so client-facing messages stay verbatim.
		platformErr := platformerrors.GetPlatformError(err)
		if platformErr == nil {
			platformErr = platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "recommend")
		}
		h.fail(c, ctx, platformErr, outcomeFor(err))
		return
	}

	books := result.Set.BookCount()
	observability.AddSpanAttributes(ctx,
		observability.AttrRetailerDomain.String(result.Domain),
		observability.AttrBookCount.Int(books),
	)
	metrics.RecordRecommendation("success", result.Domain, books)

	c.PureJSON(http.StatusOK, result.Set)
}

// GetSchema returns the JSON Schema the model output must satisfy.
func (h *RecommendHandler) GetSchema(c *gin.Context) {
	c.PureJSON(http.StatusOK, recommendation.OutputSchema())
}

func (h *RecommendHandler) fail(c *gin.Context, ctx context.Context, err *platformerrors.PlatformError, outcome string) {
	observability.RecordError(ctx, err, string(err.Type))
	metrics.RecordRecommendation(outcome, "", 0)
	platformerrors.WriteHTTPError(c, err, h.log, InternalErrorMessage)
}

// decodeRequest treats an empty body as {}. Malformed JSON, null, or an object with non-string fields fails.
func decodeRequest(body io.Reader) (recommendation.Request, error) {
	var req recommendation.Request
	if body == nil {
		return req, nil
	}
	data, err := io.ReadAll(io.LimitReader(body, maxBodyBytes+1))
	if err != nil {
		return req, err
	}
	if len(data) > maxBodyBytes {
		return req, errors.New("request body too large")
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return req, nil
	}
	if data[0] != '{' {
		// Valid non-object JSON carries no fields, so it reads as a request without a destination.
		if !json.Valid(data) {
			return req, errors.New("request body is not valid JSON")
		}
		if bytes.Equal(data, []byte("null")) {
			return req, errors.New("request body is null")
		}
		return req, nil
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, err
	}
	return req, nil
}

func outcomeFor(err error) string {
	switch {
	case platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation):
		return "invalid_request"
	case platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal):
		return "model_error"
	default:
		return "malformed_output"
	}
}

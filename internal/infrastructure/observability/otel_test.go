package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/nomadreads/nomadreads-server/internal/config"
)

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), &config.Config{ServiceName: "test"}, zerolog.Nop())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNormalizeEndpoint(t *testing.T) {
	endpoint, insecure := normalizeEndpoint("https://collector.example.com:4318/")
	assert.Equal(t, "collector.example.com:4318", endpoint)
	assert.False(t, insecure)

	endpoint, insecure = normalizeEndpoint("http://otel:4318")
	assert.Equal(t, "otel:4318", endpoint)
	assert.True(t, insecure)

	endpoint, insecure = normalizeEndpoint("otel:4318")
	assert.Equal(t, "otel:4318", endpoint)
	assert.True(t, insecure)
}

func TestParseHeaders(t *testing.T) {
	headers := parseHeaders("authorization=Bearer abc, x-tenant = nomad ,broken,empty=")
	assert.Equal(t, map[string]string{"authorization": "Bearer abc", "x-tenant": "nomad"}, headers)
}

func TestSpanHelpers(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	ctx, span := StartSpan(context.Background(), "test", "recommendation.Recommend", AttrModel.String("gpt-4o-mini"))
	traceID, spanID, ok := TraceIDs(ctx)
	assert.True(t, ok)
	assert.NotEmpty(t, traceID)
	assert.NotEmpty(t, spanID)

	AddSpanAttributes(ctx, AttrBookCount.Int(9))
	RecordError(ctx, errors.New("boom"), "EXTERNAL")
	RecordError(ctx, nil, "ignored")
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	ended := spans[0]
	assert.Equal(t, "recommendation.Recommend", ended.Name())
	assert.Equal(t, trace.SpanKindInternal, ended.SpanKind())
	assert.Equal(t, codes.Error, ended.Status().Code)
	assert.Len(t, ended.Events(), 1)
	assert.Contains(t, ended.Attributes(), AttrModel.String("gpt-4o-mini"))
	assert.Contains(t, ended.Attributes(), AttrBookCount.Int(9))
	assert.Contains(t, ended.Attributes(), AttrErrorType.String("EXTERNAL"))

	_, _, ok = TraceIDs(context.Background())
	assert.False(t, ok)
}

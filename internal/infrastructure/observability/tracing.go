package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys set on recommendation spans.
const (
	AttrDestinationLength = attribute.Key("recommendation.destination_length")
	AttrModel             = attribute.Key("recommendation.model")
	AttrRetailerDomain    = attribute.Key("recommendation.retailer_domain")
	AttrBookCount         = attribute.Key("recommendation.book_count")
	AttrErrorType         = attribute.Key("error.type")
)

// StartSpan starts an internal span on the named tracer with initial attributes.
func StartSpan(ctx context.Context, tracerName, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

func AddSpanAttributes(ctx context.Context, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(attrs...)
	}
}

// RecordError marks the span in ctx as failed. errorType is omitted when empty.
func RecordError(ctx context.Context, err error, errorType string) {
	if err == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if errorType != "" {
		span.SetAttributes(AttrErrorType.String(errorType))
	}
}

// TraceIDs returns the trace and span ids in ctx, ok is false without a valid span.
func TraceIDs(ctx context.Context) (traceID, spanID string, ok bool) {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return "", "", false
	}
	return sc.TraceID().String(), sc.SpanID().String(), true
}

package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName scopes the application spans.
const TracerName = "cozico-storefront"

// Span attributes set by the application services.
const (
	SpanAttrSessionID  attribute.Key = "cozico.session_id"
	SpanAttrProductID  attribute.Key = "cozico.product_id"
	SpanAttrCategory   attribute.Key = "cozico.category"
	SpanAttrQuantity   attribute.Key = "cozico.quantity"
	SpanAttrResultSize attribute.Key = "cozico.result_size"
	SpanAttrSort       attribute.Key = "cozico.sort"
	SpanAttrAction     attribute.Key = "cozico.cart.action"
)

// StartServiceSpan starts an internal span named "<service>.<operation>",
// e.g. "cart.add", on the global tracer provider. The caller ends it.
func StartServiceSpan(ctx context.Context, service, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, service+"."+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// RecordError attaches err to span and marks it failed. A nil err is
// ignored.
func RecordError(span trace.Span, err error, opts ...trace.EventOption) {
	if err == nil {
		return
	}
	span.RecordError(err, opts...)
	span.SetStatus(codes.Error, err.Error())
}

// GetTraceID returns the trace ID of the span in ctx, or "".
func GetTraceID(ctx context.Context) string {
	if id := trace.SpanContextFromContext(ctx).TraceID(); id.IsValid() {
		return id.String()
	}
	return ""
}

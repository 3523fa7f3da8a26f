package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// scope is what a request carries: its logger and the IDs already bound
// to it.
type scope struct {
	log       *zap.Logger
	requestID string
	sessionID string
}

type scopeKey struct{}

func scopeOf(ctx context.Context) scope {
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

func (s scope) into(ctx context.Context) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// WithContext stores l in ctx.
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	s := scopeOf(ctx)
	s.log = l
	return s.into(ctx)
}

// FromContext returns the stored logger, or a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if l := scopeOf(ctx).log; l != nil {
		return l
	}
	return zap.NewNop()
}

// WithRequestID binds the request ID to l and stores both in ctx.
func WithRequestID(ctx context.Context, l *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	s := scopeOf(ctx)
	s.requestID = requestID
	s.log = l.With(zap.String("request_id", requestID))
	return s.into(ctx), s.log
}

// WithSessionID binds the shopper session ID to l and stores both in ctx.
func WithSessionID(ctx context.Context, l *zap.Logger, sessionID string) (context.Context, *zap.Logger) {
	s := scopeOf(ctx)
	s.sessionID = sessionID
	s.log = l.With(zap.String("session_id", sessionID))
	return s.into(ctx), s.log
}

func GetRequestID(ctx context.Context) string { return scopeOf(ctx).requestID }

func GetSessionID(ctx context.Context) string { return scopeOf(ctx).sessionID }

// L is FromContext plus trace_id and span_id when ctx holds a valid span.
func L(ctx context.Context) *zap.Logger {
	l := FromContext(ctx)
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return l
	}
	return l.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}

package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey     contextKey = "logger"
	requestIDKey  contextKey = "request_id"
	businessIDKey contextKey = "business_id"
)

// WithContext attaches logger to ctx
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger attached to ctx, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID records the request id and attaches a logger carrying it
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	enriched := logger.With(zap.String("request_id", requestID))
	return WithContext(ctx, enriched), enriched
}

// WithBusinessID records the business scope and attaches a logger carrying it
func WithBusinessID(ctx context.Context, logger *zap.Logger, businessID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, businessIDKey, businessID)
	enriched := logger.With(zap.String("business_id", businessID))
	return WithContext(ctx, enriched), enriched
}

// RequestID returns the request id stored in ctx
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// BusinessID returns the business id stored in ctx
func BusinessID(ctx context.Context) string {
	id, _ := ctx.Value(businessIDKey).(string)
	return id
}

// TraceFields returns trace_id and span_id for the active span, if any
func TraceFields(ctx context.Context) []zap.Field {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	}
}

// L returns base enriched with the trace and scope fields found in ctx.
// Loggers attached by WithRequestID/WithBusinessID already carry their ids,
// so only base loggers get them added here.
//
//	logger.L(ctx, s.logger).Warn("Failed to publish events", zap.Error(err))
func L(ctx context.Context, base *zap.Logger) *zap.Logger {
	if base == nil {
		base = FromContext(ctx)
	}
	fields := TraceFields(ctx)
	if id := RequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if id := BusinessID(ctx); id != "" {
		fields = append(fields, zap.String("business_id", id))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

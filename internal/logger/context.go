package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey int

const requestIDKey ctxKey = iota

// WithRequestID stores the request id for the rest of the request's
// call chain.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFrom returns the stored request id, or "" outside a request.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// FromCtx returns the global logger tagged with the request id when
// one is present.
func FromCtx(ctx context.Context) *zap.Logger {
	if id := RequestIDFrom(ctx); id != "" {
		return L().With(zap.String("request_id", id))
	}
	return L()
}

package api

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const ctxKeyLogger ctxKey = "logger"

func WithLogger(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKeyLogger, log)
}

// LoggerFromContext never returns nil.
func LoggerFromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKeyLogger).(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.NewNop()
}

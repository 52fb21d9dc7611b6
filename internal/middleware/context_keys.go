package middleware

import (
	"context"
	"log/slog"
)

// contextKey is a private type for context keys defined by this package.
// Using a custom type prevents collisions.
type contextKey string

const loggerKey = contextKey("logger")

// GetLoggerFromCtx retrieves the request-scoped logger from the context.
// It returns the default logger when none is present, so callers outside a
// request (tests, startup code) work unchanged.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	logger, ok := ctx.Value(loggerKey).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

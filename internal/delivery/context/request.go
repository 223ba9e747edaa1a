// Package context carries per-request state (request id, caller and the
// scoped logger) between the echo handlers and the use case layer.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	KeyRequestID ContextKey = "request_id"
	KeyLogger    ContextKey = "logger"

	// HeaderXRequestID is echoed back on every response and forwarded on
	// published events.
	HeaderXRequestID = "X-Request-Id"

	maxRequestIDLength = 64
)

// NormalizeRequestID returns id when it is safe to log and forward, otherwise
// a fresh UUID.
func NormalizeRequestID(id string) string {
	if id == "" || len(id) > maxRequestIDLength {
		return uuid.NewString()
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == ':':
		default:
			return uuid.NewString()
		}
	}

	return id
}

// GetRequestID returns the id assigned by the request middleware, or a fresh
// one outside it.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok && id != "" {
		return id
	}

	return uuid.NewString()
}

// BindRequest stores the request id on both contexts and scopes logger to it.
func BindRequest(c echo.Context, requestID string, logger *slog.Logger) {
	c.Set(string(KeyRequestID), requestID)

	ctx := WithRequestID(c.Request().Context(), requestID)
	ctx = WithLogger(ctx, logger.With(slog.String("request_id", requestID)))
	c.SetRequest(c.Request().WithContext(ctx))
}

func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)

	return id
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLoggerOrDefault returns the request-scoped logger, or fallback when the
// context has none.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return fallback
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

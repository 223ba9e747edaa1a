package context

import (
	"context"
	"log/slog"

	"ridehail/internal/usecase"

	"github.com/labstack/echo/v4"
)

// KeyActor holds the authenticated caller on both echo.Context and the
// request's context.Context.
const KeyActor ContextKey = "actor"

// SetActor records the authenticated caller. The request-scoped logger, if
// any, gains the caller's user id and role so service logs name who acted.
func SetActor(c echo.Context, actor *usecase.Actor) {
	c.Set(string(KeyActor), actor)
	c.SetRequest(c.Request().WithContext(WithActor(c.Request().Context(), actor)))
}

// GetActor returns the authenticated caller, or nil for an anonymous request.
func GetActor(c echo.Context) *usecase.Actor {
	if actor, ok := c.Get(string(KeyActor)).(*usecase.Actor); ok {
		return actor
	}

	return nil
}

// WithActor stores actor on ctx and tags the scoped logger with it.
func WithActor(ctx context.Context, actor *usecase.Actor) context.Context {
	if actor == nil {
		return ctx
	}

	ctx = context.WithValue(ctx, KeyActor, actor)
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		ctx = WithLogger(ctx, logger.With(
			slog.String("user_id", actor.UserID),
			slog.String("role", actor.Role.String()),
		))
	}

	return ctx
}

// ActorFromContext returns the caller stored by WithActor, or nil.
func ActorFromContext(ctx context.Context) *usecase.Actor {
	actor, _ := ctx.Value(KeyActor).(*usecase.Actor)

	return actor
}

// Package middleware holds the echo middlewares specific to the API server.
package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "ridehail/internal/delivery/context"
	"ridehail/internal/domain/entity"
	domainerrors "ridehail/internal/domain/errors"
	"ridehail/internal/domain/service"
	"ridehail/internal/usecase"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate requires a valid bearer token and stores the caller on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return domainerrors.ErrUnauthenticated
		}

		actor, err := m.verify(c, tokenString)
		if err != nil {
			return err
		}
		deliverycontext.SetActor(c, actor)

		return next(c)
	}
}

// OptionalAuthenticate attaches the caller when a valid bearer token is
// present and otherwise continues anonymously.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if tokenString, ok := bearerToken(c); ok {
			if actor, err := m.verify(c, tokenString); err == nil {
				deliverycontext.SetActor(c, actor)
			}
		}

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the caller has one of the roles.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	allowed := entity.Roles(roles)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := deliverycontext.GetActor(c)
			if actor == nil {
				return domainerrors.ErrUnauthenticated
			}

			if !allowed.Contains(actor.Role) {
				return domainerrors.ErrForbidden.WithDetails("requires role " + strings.Join(allowed.ToStrings(), " or "))
			}

			return next(c)
		}
	}
}

func (m *AuthMiddleware) verify(c echo.Context, tokenString string) (*usecase.Actor, error) {
	claims, err := m.tokenSvc.ValidateToken(tokenString)
	if err != nil {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Debug("Rejected bearer token", slog.Any("error", err))

		return nil, domainerrors.ErrInvalidCredential
	}

	return usecase.ActorFromClaims(claims), nil
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", false
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))

	return tokenString, tokenString != ""
}

package middleware

import (
	"log/slog"

	deliverycontext "ridehail/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// RequestIDMiddleware assigns every request an id and a logger scoped to it.
// A client-supplied X-Request-Id is kept when it is short and printable.
type RequestIDMiddleware struct {
	logger *slog.Logger
}

func NewRequestIDMiddleware(logger *slog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{logger: logger}
}

func (m *RequestIDMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		requestID := deliverycontext.NormalizeRequestID(req.Header.Get(deliverycontext.HeaderXRequestID))

		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)
		deliverycontext.BindRequest(c, requestID, m.logger.With(
			slog.String("method", req.Method),
			slog.String("path", c.Path()),
		))

		return next(c)
	}
}

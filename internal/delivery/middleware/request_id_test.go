package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "ridehail/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveWithRequestID(t *testing.T, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	e := echo.New()
	e.Use(NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))).Process)

	var seen string
	e.GET("/trips/:id", func(c echo.Context) error {
		seen = deliverycontext.GetRequestIDFromContext(c.Request().Context())

		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/trips/t1", nil)
	if header != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	return rec, seen
}

func TestRequestIDMiddleware_KeepsClientID(t *testing.T) {
	rec, seen := serveWithRequestID(t, "client-abc-123")

	assert.Equal(t, "client-abc-123", seen)
	assert.Equal(t, "client-abc-123", rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestRequestIDMiddleware_ReplacesUnsafeID(t *testing.T) {
	for _, header := range []string{"", "bad id\twith tab"} {
		rec, seen := serveWithRequestID(t, header)

		_, err := uuid.Parse(seen)
		require.NoError(t, err, "header %q", header)
		assert.Equal(t, seen, rec.Header().Get(deliverycontext.HeaderXRequestID))
	}
}

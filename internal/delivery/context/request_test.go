package context

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ridehail/internal/domain/entity"
	"ridehail/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRequestID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		keep bool
	}{
		{name: "uuid", in: "6f1c2a9e-4b1d-4c3e-9f7a-0d2b8e5c1a44", keep: true},
		{name: "trace style", in: "trip-42:retry_1.a", keep: true},
		{name: "empty", in: ""},
		{name: "newline", in: "abc\nlevel=ERROR"},
		{name: "space", in: "abc def"},
		{name: "too long", in: strings.Repeat("a", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeRequestID(tt.in)
			if tt.keep {
				assert.Equal(t, tt.in, got)

				return
			}
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}

func TestSetActor_TagsScopedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/trips", nil), httptest.NewRecorder())
	BindRequest(c, "req-1", logger)

	actor := &usecase.Actor{UserID: "u-7", Email: "rider@example.com", Role: entity.RoleDriver}
	SetActor(c, actor)

	ctx := c.Request().Context()
	assert.Same(t, actor, GetActor(c))
	assert.Same(t, actor, ActorFromContext(ctx))
	assert.Equal(t, "req-1", GetRequestID(c))
	assert.Equal(t, "req-1", GetRequestIDFromContext(ctx))

	GetLoggerOrDefault(ctx, nil).Info("trip listed")
	line := buf.String()
	require.NotEmpty(t, line)
	assert.Contains(t, line, "request_id=req-1")
	assert.Contains(t, line, "user_id=u-7")
	assert.Contains(t, line, "role=driver")
}

func TestWithActor_NilLeavesContextAlone(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	ctx := c.Request().Context()

	assert.Equal(t, ctx, WithActor(ctx, nil))
	assert.Nil(t, ActorFromContext(ctx))
	assert.Nil(t, GetActor(c))
}

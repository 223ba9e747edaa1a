package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"ridehail/internal/delivery/http/response"
	domainerrors "ridehail/internal/domain/errors"
	"ridehail/internal/domain/repository"
	"ridehail/internal/infra/persistence"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const healthPingTimeout = 2 * time.Second

// HealthHandlerParams holds dependencies for HealthHandler, injected by Fx.
type HealthHandlerParams struct {
	fx.In

	Store    repository.Store
	Selector *persistence.Selector
	Logger   *slog.Logger
}

type HealthHandler struct {
	store    repository.Store
	selector *persistence.Selector
	logger   *slog.Logger
}

func NewHealthHandler(params HealthHandlerParams) *HealthHandler {
	return &HealthHandler{
		store:    params.Store,
		selector: params.Selector,
		logger:   params.Logger,
	}
}

// HealthResponse reports liveness and which backend serves records.
type HealthResponse struct {
	Health    string    `json:"health"`
	Backend   string    `json:"backend"`
	State     string    `json:"state"`
	Timestamp time.Time `json:"timestamp"`
}

// Health answers 200 while the active store responds. A failed ping is a 503
// error envelope. Why selection fell back is only logged, never returned.
func (h *HealthHandler) Health(c echo.Context) error {
	resp := HealthResponse{
		Health:    "ok",
		Backend:   h.store.Backend(),
		Timestamp: time.Now().UTC(),
	}
	if h.selector != nil {
		resp.State = h.selector.State().String()
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), healthPingTimeout)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		h.logger.WarnContext(ctx, "Health ping failed", slog.String("backend", resp.Backend), slog.Any("error", err))

		return domainerrors.ErrUpstreamUnavailable
	}

	return response.Success(c, http.StatusOK, resp)
}

package handler

import (
	"log/slog"
	"net/http"

	"ridehail/internal/delivery/http/response"
	"ridehail/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AnalyticsHandlerParams holds dependencies for AnalyticsHandler, injected by Fx.
type AnalyticsHandlerParams struct {
	fx.In

	AnalyticsUC usecase.AnalyticsUsecase
	DemoUC      usecase.DemoUsecase
	Logger      *slog.Logger
}

// AnalyticsHandler serves aggregate statistics and the demo data snapshot.
type AnalyticsHandler struct {
	analyticsUC usecase.AnalyticsUsecase
	demoUC      usecase.DemoUsecase
	logger      *slog.Logger
}

func NewAnalyticsHandler(params AnalyticsHandlerParams) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsUC: params.AnalyticsUC,
		demoUC:      params.DemoUC,
		logger:      params.Logger,
	}
}

func (h *AnalyticsHandler) Overview(c echo.Context) error {
	overview, err := h.analyticsUC.Overview(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]any{"overview": overview})
}

func (h *AnalyticsHandler) Revenue(c echo.Context) error {
	revenue, err := h.analyticsUC.Revenue(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]any{"revenue": revenue})
}

func (h *AnalyticsHandler) Trips(c echo.Context) error {
	stats, err := h.analyticsUC.Trips(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]any{"trips": stats})
}

// DemoData returns a snapshot of the records currently served.
func (h *AnalyticsHandler) DemoData(c echo.Context) error {
	snapshot, err := h.demoUC.Snapshot(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, snapshot)
}

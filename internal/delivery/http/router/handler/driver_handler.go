package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "ridehail/internal/delivery/context"
	"ridehail/internal/delivery/http/response"
	"ridehail/internal/domain/entity"
	"ridehail/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DriverHandlerParams holds dependencies for DriverHandler, injected by Fx.
type DriverHandlerParams struct {
	fx.In

	DriverUC usecase.DriverUsecase
	Logger   *slog.Logger
}

// DriverHandler holds dependencies for driver-related handlers
type DriverHandler struct {
	driverUC usecase.DriverUsecase
	logger   *slog.Logger
}

// NewDriverHandler is the constructor for DriverHandler
func NewDriverHandler(params DriverHandlerParams) *DriverHandler {
	return &DriverHandler{
		driverUC: params.DriverUC,
		logger:   params.Logger,
	}
}

// CreateDriverRequest represents the request body for creating a driver profile
type CreateDriverRequest struct {
	UserID      string `json:"userId"`
	Name        string `json:"name" validate:"required"`
	Phone       string `json:"phone"`
	VehicleID   string `json:"vehicleId"`
	IsAvailable bool   `json:"isAvailable"`
	City        string `json:"city"`
}

// ListDrivers handles listing drivers, optionally filtered by availability and city
func (h *DriverHandler) ListDrivers(c echo.Context) error {
	available, err := queryBool(c, "available")
	if err != nil {
		return err
	}

	drivers, err := h.driverUC.List(c.Request().Context(), usecase.DriverFilter{
		Available: available,
		City:      c.QueryParam("city"),
	})
	if err != nil {
		return err
	}

	return response.List(c, "drivers", drivers)
}

// GetDriver handles retrieving one driver
func (h *DriverHandler) GetDriver(c echo.Context) error {
	driver, err := h.driverUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]any{"driver": driver})
}

// CreateDriver handles driver profile creation
func (h *DriverHandler) CreateDriver(c echo.Context) error {
	var req CreateDriverRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	driver, err := h.driverUC.Create(c.Request().Context(), deliverycontext.GetActor(c), &usecase.CreateDriverInput{
		UserID:      req.UserID,
		Name:        req.Name,
		Phone:       req.Phone,
		VehicleID:   req.VehicleID,
		IsAvailable: req.IsAvailable,
		City:        req.City,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, map[string]any{"driver": driver})
}

// UpdateDriver handles partial driver updates
func (h *DriverHandler) UpdateDriver(c echo.Context) error {
	var req entity.DriverUpdate
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	driver, err := h.driverUC.Update(c.Request().Context(), deliverycontext.GetActor(c), c.Param("id"), &req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]any{"driver": driver})
}

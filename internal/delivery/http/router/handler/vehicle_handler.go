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

// VehicleHandlerParams holds dependencies for VehicleHandler, injected by Fx.
type VehicleHandlerParams struct {
	fx.In

	VehicleUC usecase.VehicleUsecase
	Logger    *slog.Logger
}

// VehicleHandler holds dependencies for vehicle-related handlers
type VehicleHandler struct {
	vehicleUC usecase.VehicleUsecase
	logger    *slog.Logger
}

// NewVehicleHandler is the constructor for VehicleHandler
func NewVehicleHandler(params VehicleHandlerParams) *VehicleHandler {
	return &VehicleHandler{
		vehicleUC: params.VehicleUC,
		logger:    params.Logger,
	}
}

// CreateVehicleRequest represents the request body for registering a vehicle
type CreateVehicleRequest struct {
	DriverID string             `json:"driverId"`
	Brand    string             `json:"brand" validate:"required"`
	Model    string             `json:"model" validate:"required"`
	Year     int                `json:"year" validate:"omitempty,gte=1950,lte=2100"`
	Color    string             `json:"color"`
	Plate    string             `json:"plate" validate:"required"`
	Type     entity.VehicleType `json:"type" validate:"omitempty,oneof=standard premium"`
}

// ListVehicles handles listing vehicles
func (h *VehicleHandler) ListVehicles(c echo.Context) error {
	vehicles, err := h.vehicleUC.List(c.Request().Context(), usecase.VehicleFilter{
		DriverID: c.QueryParam("driverId"),
		Type:     entity.VehicleType(c.QueryParam("type")),
	})
	if err != nil {
		return err
	}

	return response.List(c, "vehicles", vehicles)
}

// GetVehicle handles retrieving one vehicle
func (h *VehicleHandler) GetVehicle(c echo.Context) error {
	vehicle, err := h.vehicleUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]any{"vehicle": vehicle})
}

// CreateVehicle handles vehicle registration
func (h *VehicleHandler) CreateVehicle(c echo.Context) error {
	var req CreateVehicleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	vehicle, err := h.vehicleUC.Create(c.Request().Context(), deliverycontext.GetActor(c), &usecase.CreateVehicleInput{
		DriverID: req.DriverID,
		Brand:    req.Brand,
		Model:    req.Model,
		Year:     req.Year,
		Color:    req.Color,
		Plate:    req.Plate,
		Type:     req.Type,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, map[string]any{"vehicle": vehicle})
}

// UpdateVehicle handles partial vehicle updates
func (h *VehicleHandler) UpdateVehicle(c echo.Context) error {
	var req entity.VehicleUpdate
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	vehicle, err := h.vehicleUC.Update(c.Request().Context(), deliverycontext.GetActor(c), c.Param("id"), &req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]any{"vehicle": vehicle})
}

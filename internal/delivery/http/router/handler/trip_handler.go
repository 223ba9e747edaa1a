package handler

import (
	"log/slog"
	"net/http"
	"time"

	deliverycontext "ridehail/internal/delivery/context"
	"ridehail/internal/delivery/http/response"
	"ridehail/internal/domain/entity"
	"ridehail/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TripHandlerParams holds dependencies for TripHandler, injected by Fx.
type TripHandlerParams struct {
	fx.In

	TripUC usecase.TripUsecase
	Logger *slog.Logger
}

// TripHandler holds dependencies for trip-related handlers
type TripHandler struct {
	tripUC usecase.TripUsecase
	logger *slog.Logger
}

// NewTripHandler is the constructor for TripHandler
func NewTripHandler(params TripHandlerParams) *TripHandler {
	return &TripHandler{
		tripUC: params.TripUC,
		logger: params.Logger,
	}
}

// PointRequest is a WGS84 coordinate in a request body.
type PointRequest struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

func (p *PointRequest) toEntity() *entity.GeoPoint {
	if p == nil {
		return nil
	}

	return &entity.GeoPoint{Lat: p.Lat, Lng: p.Lng}
}

// CreateTripRequest represents the request body for booking a trip
type CreateTripRequest struct {
	DriverID      string               `json:"driverId"`
	From          string               `json:"from" validate:"required"`
	To            string               `json:"to" validate:"required"`
	FromLocation  *PointRequest        `json:"fromLocation"`
	ToLocation    *PointRequest        `json:"toLocation"`
	DistanceKm    *float64             `json:"distanceKm" validate:"omitempty,gte=0"`
	Price         *float64             `json:"price" validate:"omitempty,gte=0"`
	Status        entity.TripStatus    `json:"status" validate:"omitempty,oneof=active completed scheduled cancelled"`
	City          string               `json:"city"`
	VehicleType   entity.VehicleType   `json:"vehicleType" validate:"omitempty,oneof=standard premium"`
	PaymentMethod entity.PaymentMethod `json:"paymentMethod" validate:"omitempty,oneof=card cash wallet"`
	ScheduledAt   *time.Time           `json:"scheduledAt"`
}

// EstimateRequest represents the request body for a fare quote
type EstimateRequest struct {
	From        PointRequest       `json:"from"`
	To          PointRequest       `json:"to"`
	VehicleType entity.VehicleType `json:"vehicleType" validate:"omitempty,oneof=standard premium"`
}

// ListTrips handles listing trips. Authenticated non-admin callers only see their own.
func (h *TripHandler) ListTrips(c echo.Context) error {
	filter := usecase.TripFilter{
		Status:   entity.TripStatus(c.QueryParam("status")),
		UserID:   c.QueryParam("userId"),
		DriverID: c.QueryParam("driverId"),
		City:     c.QueryParam("city"),
	}

	trips, err := h.tripUC.List(c.Request().Context(), deliverycontext.GetActor(c), filter)
	if err != nil {
		return err
	}

	return response.List(c, "trips", trips)
}

// GetTrip handles retrieving one trip
func (h *TripHandler) GetTrip(c echo.Context) error {
	trip, err := h.tripUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]any{"trip": trip})
}

// CreateTrip handles trip booking
func (h *TripHandler) CreateTrip(c echo.Context) error {
	var req CreateTripRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	trip, err := h.tripUC.Create(c.Request().Context(), deliverycontext.GetActor(c), &usecase.CreateTripInput{
		DriverID:      req.DriverID,
		From:          req.From,
		To:            req.To,
		FromLocation:  req.FromLocation.toEntity(),
		ToLocation:    req.ToLocation.toEntity(),
		DistanceKm:    req.DistanceKm,
		Price:         req.Price,
		Status:        req.Status,
		City:          req.City,
		VehicleType:   req.VehicleType,
		PaymentMethod: req.PaymentMethod,
		ScheduledAt:   req.ScheduledAt,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, map[string]any{"trip": trip})
}

// UpdateTrip handles partial trip updates
func (h *TripHandler) UpdateTrip(c echo.Context) error {
	var req entity.TripUpdate
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	trip, err := h.tripUC.Update(c.Request().Context(), deliverycontext.GetActor(c), c.Param("id"), &req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]any{"trip": trip})
}

// DeleteTrip handles trip removal
func (h *TripHandler) DeleteTrip(c echo.Context) error {
	if err := h.tripUC.Delete(c.Request().Context(), deliverycontext.GetActor(c), c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// EstimateFare quotes distance, duration and price between two points
func (h *TripHandler) EstimateFare(c echo.Context) error {
	var req EstimateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	quote, err := h.tripUC.Estimate(c.Request().Context(), &usecase.EstimateInput{
		From:        *req.From.toEntity(),
		To:          *req.To.toEntity(),
		VehicleType: req.VehicleType,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]any{"estimate": quote})
}

package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "ridehail/internal/delivery/context"
	"ridehail/internal/delivery/http/response"
	"ridehail/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RatingHandlerParams holds dependencies for RatingHandler, injected by Fx.
type RatingHandlerParams struct {
	fx.In

	RatingUC usecase.RatingUsecase
	Logger   *slog.Logger
}

// RatingHandler holds dependencies for rating-related handlers
type RatingHandler struct {
	ratingUC usecase.RatingUsecase
	logger   *slog.Logger
}

// NewRatingHandler is the constructor for RatingHandler
func NewRatingHandler(params RatingHandlerParams) *RatingHandler {
	return &RatingHandler{
		ratingUC: params.RatingUC,
		logger:   params.Logger,
	}
}

// CreateRatingRequest represents the request body for rating a driver
type CreateRatingRequest struct {
	TripID   string   `json:"tripId" validate:"required_without=DriverID"`
	DriverID string   `json:"driverId"`
	Score    *float64 `json:"score" validate:"required,gte=0,lte=5"`
	Comment  string   `json:"comment" validate:"max=500"`
}

// CreateRating handles rating submission and returns the driver's new average
func (h *RatingHandler) CreateRating(c echo.Context) error {
	var req CreateRatingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.ratingUC.Create(c.Request().Context(), deliverycontext.GetActor(c), &usecase.CreateRatingInput{
		TripID:   req.TripID,
		DriverID: req.DriverID,
		Score:    *req.Score,
		Comment:  req.Comment,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, map[string]any{
		"rating":       out.Rating,
		"driverRating": out.DriverRating,
	})
}

// ListRatings handles listing every rating
func (h *RatingHandler) ListRatings(c echo.Context) error {
	ratings, err := h.ratingUC.List(c.Request().Context())
	if err != nil {
		return err
	}

	return response.List(c, "ratings", ratings)
}

// ListDriverRatings handles listing one driver's ratings with their average
func (h *RatingHandler) ListDriverRatings(c echo.Context) error {
	out, err := h.ratingUC.ListByDriver(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"driverId": out.DriverID,
		"average":  out.Average,
		"count":    len(out.Ratings),
		"ratings":  out.Ratings,
	})
}

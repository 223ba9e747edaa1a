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

// PaymentHandlerParams holds dependencies for PaymentHandler, injected by Fx.
type PaymentHandlerParams struct {
	fx.In

	PaymentUC usecase.PaymentUsecase
	Logger    *slog.Logger
}

// PaymentHandler holds dependencies for payment-related handlers
type PaymentHandler struct {
	paymentUC usecase.PaymentUsecase
	logger    *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler
func NewPaymentHandler(params PaymentHandlerParams) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: params.PaymentUC,
		logger:    params.Logger,
	}
}

// CreatePaymentRequest represents the request body for recording a payment.
// A missing or zero amount and a missing method default to the trip's price
// and payment method.
type CreatePaymentRequest struct {
	TripID string               `json:"tripId" validate:"required"`
	Amount *float64             `json:"amount" validate:"omitempty,gte=0"`
	Method entity.PaymentMethod `json:"method" validate:"omitempty,oneof=card cash wallet"`
	Status entity.PaymentStatus `json:"status" validate:"omitempty,oneof=pending completed failed refunded"`
}

// ListPayments handles listing payments
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	payments, err := h.paymentUC.List(c.Request().Context(), deliverycontext.GetActor(c), usecase.PaymentFilter{
		Status: entity.PaymentStatus(c.QueryParam("status")),
		TripID: c.QueryParam("tripId"),
	})
	if err != nil {
		return err
	}

	return response.List(c, "payments", payments)
}

// GetPayment handles retrieving one payment
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	payment, err := h.paymentUC.Get(c.Request().Context(), deliverycontext.GetActor(c), c.Param("id"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]any{"payment": payment})
}

// CreatePayment handles payment creation
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	var req CreatePaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := &usecase.CreatePaymentInput{
		TripID: req.TripID,
		Method: req.Method,
		Status: req.Status,
	}
	if req.Amount != nil {
		input.Amount = *req.Amount
	}

	payment, err := h.paymentUC.Create(c.Request().Context(), deliverycontext.GetActor(c), input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, map[string]any{"payment": payment})
}

// UpdatePayment handles partial payment updates
func (h *PaymentHandler) UpdatePayment(c echo.Context) error {
	var req entity.PaymentUpdate
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	payment, err := h.paymentUC.Update(c.Request().Context(), deliverycontext.GetActor(c), c.Param("id"), &req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]any{"payment": payment})
}

// GetReceiptQR renders the payment receipt as a PNG QR code
func (h *PaymentHandler) GetReceiptQR(c echo.Context) error {
	png, err := h.paymentUC.ReceiptQR(c.Request().Context(), deliverycontext.GetActor(c), c.Param("id"))
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

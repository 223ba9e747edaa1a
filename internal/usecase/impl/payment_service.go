package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"ridehail/internal/domain/entity"
	domainerrors "ridehail/internal/domain/errors"
	"ridehail/internal/domain/repository"
	"ridehail/internal/domain/service"
	"ridehail/internal/errors"
	"ridehail/internal/usecase"

	"go.uber.org/fx"
)

const transactionSuffixRange = 1_000_000

// paymentService implements the PaymentUsecase interface.
type paymentService struct {
	base
	publisher
	qrcode service.QRCodeService
}

// PaymentServiceParams holds dependencies for PaymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	Store     repository.Store
	QRCode    service.QRCodeService
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(params PaymentServiceParams) usecase.PaymentUsecase {
	return &paymentService{
		base:      newBase(params.Store, params.Logger),
		publisher: publisher{events: params.Publisher},
		qrcode:    params.QRCode,
	}
}

func (srv *paymentService) List(ctx context.Context, actor *usecase.Actor, filter usecase.PaymentFilter) ([]*entity.Payment, error) {
	if actor == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	var f repository.Filter
	if !actor.IsAdmin() {
		f = f.And(entity.FieldUserID, actor.UserID)
	}
	if filter.Status != "" {
		f = f.And(entity.FieldStatus, filter.Status)
	}
	if filter.TripID != "" {
		f = f.And(entity.FieldTripID, filter.TripID)
	}

	payments, err := srv.store.Payments().Find(ctx, f)

	return payments, storeError(err, domainerrors.ErrPaymentNotFound, "failed to list payments")
}

func (srv *paymentService) Get(ctx context.Context, actor *usecase.Actor, id string) (*entity.Payment, error) {
	if actor == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	payment, err := srv.store.Payments().FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, domainerrors.ErrPaymentNotFound, "failed to find payment")
	}
	if !actor.CanAccess(payment.UserID) {
		return nil, domainerrors.ErrForbidden
	}

	return payment, nil
}

// Create records a payment for a trip the caller owns. The amount defaults
// to the trip price and the status to pending.
func (srv *paymentService) Create(ctx context.Context, actor *usecase.Actor, input *usecase.CreatePaymentInput) (*entity.Payment, error) {
	if actor == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	trip, err := srv.store.Trips().FindByID(ctx, input.TripID)
	if err != nil {
		return nil, storeError(err, domainerrors.ErrTripNotFound, "failed to find trip for payment")
	}
	if !actor.CanAccess(trip.UserID) {
		return nil, domainerrors.ErrForbidden
	}

	method := input.Method
	if method == "" {
		method = trip.PaymentMethod
	}
	if !method.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown payment method")
	}
	status := input.Status
	if status == "" {
		status = entity.PaymentStatusPending
	}
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown payment status")
	}
	amount := input.Amount
	if amount == 0 {
		amount = trip.Price
	}
	if amount < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("amount must not be negative")
	}

	id, now := srv.stamp()
	payment := &entity.Payment{
		ID:            id,
		TripID:        trip.ID,
		UserID:        trip.UserID,
		Amount:        amount,
		Method:        method,
		Status:        status,
		TransactionID: fmt.Sprintf("TXN%d%06d", now.UnixMilli(), rand.IntN(transactionSuffixRange)),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := srv.store.Payments().Create(ctx, payment); err != nil {
		return nil, storeError(err, domainerrors.ErrPaymentNotFound, "failed to create payment")
	}

	srv.log(ctx).Info("Payment created",
		slog.String("paymentID", payment.ID),
		slog.String("tripID", trip.ID),
		slog.String("transactionID", payment.TransactionID),
	)
	srv.publish(ctx, srv.log(ctx), &service.DomainEvent{
		Type:     service.EventPaymentCreated,
		Kind:     entity.KindPayment.String(),
		RecordID: payment.ID,
		UserID:   payment.UserID,
		Attributes: map[string]string{
			"trip_id":        payment.TripID,
			"status":         payment.Status.String(),
			"method":         payment.Method.String(),
			"transaction_id": payment.TransactionID,
		},
		OccurredAt: now,
	})

	return payment, nil
}

func (srv *paymentService) Update(ctx context.Context, actor *usecase.Actor, id string, update *entity.PaymentUpdate) (*entity.Payment, error) {
	if _, err := srv.Get(ctx, actor, id); err != nil {
		return nil, err
	}

	patch := *update
	if patch.Method != nil && !patch.Method.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown payment method")
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown payment status")
	}
	if patch.Amount != nil && *patch.Amount < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("amount must not be negative")
	}

	payment, err := srv.store.Payments().Update(ctx, id, patch)

	return payment, storeError(err, domainerrors.ErrPaymentNotFound, "failed to update payment")
}

func (srv *paymentService) ReceiptQR(ctx context.Context, actor *usecase.Actor, id string) ([]byte, error) {
	payment, err := srv.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrcode.GeneratePaymentQR(payment)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render payment receipt")
	}

	return png, nil
}

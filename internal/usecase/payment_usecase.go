package usecase

import (
	"context"

	"ridehail/internal/domain/entity"
)

// PaymentFilter narrows a payment listing.
type PaymentFilter struct {
	Status entity.PaymentStatus
	TripID string
}

// CreatePaymentInput describes a payment for a trip. Status defaults to pending.
type CreatePaymentInput struct {
	TripID string
	Amount float64
	Method entity.PaymentMethod
	Status entity.PaymentStatus
}

// PaymentUsecase manages payments.
type PaymentUsecase interface {
	// List returns every payment for admins and the caller's own otherwise.
	List(ctx context.Context, actor *Actor, filter PaymentFilter) ([]*entity.Payment, error)
	Get(ctx context.Context, actor *Actor, id string) (*entity.Payment, error)
	Create(ctx context.Context, actor *Actor, input *CreatePaymentInput) (*entity.Payment, error)
	Update(ctx context.Context, actor *Actor, id string, update *entity.PaymentUpdate) (*entity.Payment, error)
	// ReceiptQR renders the payment receipt as a PNG QR code.
	ReceiptQR(ctx context.Context, actor *Actor, id string) ([]byte, error)
}

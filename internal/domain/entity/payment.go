package entity

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodWallet PaymentMethod = "wallet"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodCash, PaymentMethodWallet:
		return true
	default:
		return false
	}
}

// Payment settles a trip. TransactionID is assigned once at creation.
type Payment struct {
	ID            string        `json:"id" firestore:"id"`
	TripID        string        `json:"tripId" firestore:"trip_id"`
	UserID        string        `json:"userId" firestore:"user_id"`
	Amount        float64       `json:"amount" firestore:"amount"`
	Method        PaymentMethod `json:"method" firestore:"method"`
	Status        PaymentStatus `json:"status" firestore:"status"`
	TransactionID string        `json:"transactionId" firestore:"transaction_id"`
	CreatedAt     time.Time     `json:"createdAt" firestore:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" firestore:"updated_at"`
}

func (p *Payment) RecordID() string { return p.ID }

func (p *Payment) RecordKind() Kind { return KindPayment }

func (p *Payment) Touch(now time.Time) { p.UpdatedAt = now }

func (p *Payment) FieldValue(field string) (any, bool) {
	switch field {
	case FieldID:
		return p.ID, true
	case FieldTripID:
		return p.TripID, true
	case FieldUserID:
		return p.UserID, true
	case FieldStatus:
		return p.Status.String(), true
	case FieldMethod:
		return p.Method.String(), true
	case FieldAmount:
		return p.Amount, true
	default:
		return nil, false
	}
}

type PaymentUpdate struct {
	Amount *float64       `json:"amount,omitempty"`
	Method *PaymentMethod `json:"method,omitempty"`
	Status *PaymentStatus `json:"status,omitempty"`
}

func (u PaymentUpdate) Apply(p *Payment) {
	if u.Amount != nil {
		p.Amount = *u.Amount
	}
	if u.Method != nil {
		p.Method = *u.Method
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
}

package service

import (
	"context"
	"time"
)

// Event types published by the entity services.
const (
	EventTripCreated       = "trip.created"
	EventTripStatusChanged = "trip.status_changed"
	EventPaymentCreated    = "payment.created"
	EventRatingSubmitted   = "rating.submitted"
)

// DomainEvent is a notification that a record changed.
type DomainEvent struct {
	RequestID  string            `json:"request_id,omitempty"` // For distributed tracing
	Type       string            `json:"type"`
	Kind       string            `json:"kind"`
	RecordID   string            `json:"record_id"`
	UserID     string            `json:"user_id,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// Publish sends an event. Callers log failures and carry on.
	Publish(ctx context.Context, event *DomainEvent) error

	// Close releases any resources held by the publisher
	Close() error
}

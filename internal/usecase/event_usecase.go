package usecase

import (
	"context"

	"ridehail/internal/domain/service"
	"ridehail/internal/errors"
)

// EventUsecase reacts to domain events delivered by the message queue.
type EventUsecase interface {
	// Handle applies the event. Replaying an event leaves the same state.
	Handle(ctx context.Context, event *service.DomainEvent) error
}

// RetryableError marks a failure that redelivery may fix, such as an
// unreachable store.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}

func IsRetryable(err error) bool {
	var re *RetryableError

	return errors.As(err, &re)
}

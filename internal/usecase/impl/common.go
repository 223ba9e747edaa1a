// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "ridehail/internal/delivery/context"
	"ridehail/internal/domain/entity"
	domainerrors "ridehail/internal/domain/errors"
	"ridehail/internal/domain/repository"
	"ridehail/internal/domain/service"
	"ridehail/internal/errors"

	"github.com/google/uuid"
)

// base carries what every service needs: the active store and its
// transaction manager, a clock and a fallback logger.
type base struct {
	store  repository.Store
	tx     repository.TransactionManager
	logger *slog.Logger
	now    func() time.Time
}

func newBase(store repository.Store, logger *slog.Logger) base {
	if logger == nil {
		logger = slog.Default()
	}

	return base{store: store, tx: repository.Transactional(store), logger: logger, now: time.Now}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (b *base) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, b.logger)
}

// stamp returns a fresh id and the creation timestamp.
func (b *base) stamp() (string, time.Time) {
	return uuid.NewString(), b.now().UTC()
}

// storeError translates repository sentinels into application errors.
func storeError(err error, notFound *domainerrors.BaseError, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrDuplicateKey):
		return domainerrors.ErrConflict.WrapMessage(op)
	case errors.Is(err, repository.ErrUnknownField):
		return domainerrors.ErrBadRequest.WithDetails(err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return errors.Wrap(err, op)
	default:
		return domainerrors.NewDatabaseExecuteError(err, op)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// publisher wraps an EventPublisher so a failed publish never fails the
// operation that caused it.
type publisher struct {
	events service.EventPublisher
}

func (p publisher) publish(ctx context.Context, logger *slog.Logger, event *service.DomainEvent) {
	if p.events == nil {
		return
	}
	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	if err := p.events.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event",
			slog.String("type", event.Type),
			slog.String("record_id", event.RecordID),
			slog.Any("error", err),
		)
	}
}

func tripEvent(eventType string, trip *entity.Trip) *service.DomainEvent {
	return &service.DomainEvent{
		Type:     eventType,
		Kind:     entity.KindTrip.String(),
		RecordID: trip.ID,
		UserID:   trip.UserID,
		Attributes: map[string]string{
			"status":    trip.Status.String(),
			"driver_id": trip.DriverID,
		},
		OccurredAt: trip.UpdatedAt,
	}
}

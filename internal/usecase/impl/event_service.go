package impl

import (
	"context"
	"log/slog"

	"ridehail/internal/domain/entity"
	"ridehail/internal/domain/repository"
	"ridehail/internal/domain/service"
	"ridehail/internal/errors"
	"ridehail/internal/usecase"

	"go.uber.org/fx"
)

// eventService rebuilds driver aggregates from the records after trip and
// rating events, so a missed or duplicated in-request update heals itself.
type eventService struct {
	base
}

// EventServiceParams holds dependencies for EventService, injected by Fx.
type EventServiceParams struct {
	fx.In

	Store  repository.Store
	Logger *slog.Logger
}

// NewEventService is the constructor for eventService.
func NewEventService(params EventServiceParams) usecase.EventUsecase {
	return &eventService{base: newBase(params.Store, params.Logger)}
}

func (srv *eventService) Handle(ctx context.Context, event *service.DomainEvent) error {
	if event == nil {
		return errors.New("nil event")
	}

	driverID := event.Attributes["driver_id"]

	switch event.Type {
	case service.EventTripStatusChanged:
		if event.Attributes["status"] != entity.TripStatusCompleted.String() {
			return nil
		}
	case service.EventRatingSubmitted:
	default:
		srv.log(ctx).Debug("Ignoring event", slog.String("type", event.Type), slog.String("record_id", event.RecordID))

		return nil
	}

	if driverID == "" {
		return nil
	}

	return srv.reconcileDriver(ctx, driverID)
}

// reconcileDriver recomputes the driver's rating and completed trip count
// from scratch.
func (srv *eventService) reconcileDriver(ctx context.Context, driverID string) error {
	if _, err := srv.store.Drivers().FindByID(ctx, driverID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			srv.log(ctx).Warn("Driver vanished before reconcile", slog.String("driver_id", driverID))

			return nil
		}

		return usecase.NewRetryableError(errors.Wrap(err, "failed to find driver"))
	}

	ratings, err := srv.store.Ratings().Find(ctx, repository.Where(entity.FieldDriverID, driverID))
	if err != nil {
		return usecase.NewRetryableError(errors.Wrap(err, "failed to list driver ratings"))
	}

	completed, err := srv.store.Trips().Count(ctx, repository.
		Where(entity.FieldDriverID, driverID).
		And(entity.FieldStatus, entity.TripStatusCompleted))
	if err != nil {
		return usecase.NewRetryableError(errors.Wrap(err, "failed to count completed trips"))
	}

	rating := entity.AverageScore(ratings)
	totalTrips := int(completed)
	if _, err := srv.store.Drivers().Update(ctx, driverID, entity.DriverUpdate{
		Rating:     &rating,
		TotalTrips: &totalTrips,
	}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}

		return usecase.NewRetryableError(errors.Wrap(err, "failed to update driver"))
	}

	srv.log(ctx).Info("Driver reconciled",
		slog.String("driver_id", driverID),
		slog.Float64("rating", rating),
		slog.Int("total_trips", totalTrips),
	)

	return nil
}

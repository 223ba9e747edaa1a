package impl

import (
	"context"
	"log/slog"

	"ridehail/internal/domain/entity"
	domainerrors "ridehail/internal/domain/errors"
	"ridehail/internal/domain/repository"
	"ridehail/internal/domain/service"
	"ridehail/internal/usecase"

	"go.uber.org/fx"
)

// tripService implements the TripUsecase interface.
type tripService struct {
	base
	publisher
	estimator service.FareEstimator
}

// TripServiceParams holds dependencies for TripService, injected by Fx.
type TripServiceParams struct {
	fx.In

	Store     repository.Store
	Estimator service.FareEstimator
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewTripService is the constructor for tripService.
func NewTripService(params TripServiceParams) usecase.TripUsecase {
	return &tripService{
		base:      newBase(params.Store, params.Logger),
		publisher: publisher{events: params.Publisher},
		estimator: params.Estimator,
	}
}

// List applies the filter; a non-admin caller is pinned to their own trips.
func (srv *tripService) List(ctx context.Context, actor *usecase.Actor, filter usecase.TripFilter) ([]*entity.Trip, error) {
	if actor != nil && !actor.IsAdmin() {
		filter.UserID = actor.UserID
	}

	var f repository.Filter
	if filter.Status != "" {
		f = f.And(entity.FieldStatus, filter.Status)
	}
	if filter.UserID != "" {
		f = f.And(entity.FieldUserID, filter.UserID)
	}
	if filter.DriverID != "" {
		f = f.And(entity.FieldDriverID, filter.DriverID)
	}
	if filter.City != "" {
		f = f.And(entity.FieldCity, filter.City)
	}

	trips, err := srv.store.Trips().Find(ctx, f)

	return trips, storeError(err, domainerrors.ErrTripNotFound, "failed to list trips")
}

func (srv *tripService) Get(ctx context.Context, id string) (*entity.Trip, error) {
	trip, err := srv.store.Trips().FindByID(ctx, id)

	return trip, storeError(err, domainerrors.ErrTripNotFound, "failed to find trip")
}

// Create books a trip for the caller. Missing distance or price is
// estimated from the coordinates.
func (srv *tripService) Create(ctx context.Context, actor *usecase.Actor, input *usecase.CreateTripInput) (*entity.Trip, error) {
	if actor == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	status := input.Status
	if status == "" {
		status = entity.TripStatusActive
	}
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown trip status")
	}
	vehicleType := input.VehicleType
	if vehicleType == "" {
		vehicleType = entity.VehicleTypeStandard
	}

	if input.DriverID != "" {
		if _, err := srv.store.Drivers().FindByID(ctx, input.DriverID); err != nil {
			return nil, storeError(err, domainerrors.ErrDriverNotFound, "failed to find trip driver")
		}
	}

	id, now := srv.stamp()
	trip := &entity.Trip{
		ID:            id,
		UserID:        actor.UserID,
		DriverID:      input.DriverID,
		From:          input.From,
		To:            input.To,
		FromLocation:  input.FromLocation,
		ToLocation:    input.ToLocation,
		Status:        status,
		City:          input.City,
		VehicleType:   vehicleType,
		PaymentMethod: input.PaymentMethod,
		ScheduledAt:   input.ScheduledAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if status == entity.TripStatusCompleted {
		trip.CompletedAt = &now
	}

	if input.FromLocation != nil && input.ToLocation != nil && srv.estimator != nil {
		quote := srv.estimator.Estimate(*input.FromLocation, *input.ToLocation, vehicleType)
		trip.DistanceKm = quote.DistanceKm
		trip.DurationMin = quote.DurationMin
		trip.Price = quote.Price
	}
	if input.DistanceKm != nil {
		trip.DistanceKm = *input.DistanceKm
	}
	if input.Price != nil {
		trip.Price = *input.Price
	}

	if err := srv.store.Trips().Create(ctx, trip); err != nil {
		return nil, storeError(err, domainerrors.ErrTripNotFound, "failed to create trip")
	}

	srv.log(ctx).Info("Trip created", slog.String("tripID", trip.ID), slog.String("userID", trip.UserID))
	srv.publish(ctx, srv.log(ctx), tripEvent(service.EventTripCreated, trip))

	if status == entity.TripStatusCompleted {
		srv.creditDriver(ctx, trip.DriverID)
	}

	return trip, nil
}

// Update lets the owner or an admin patch a trip. Moving to completed
// stamps completedAt and credits the driver with the trip.
func (srv *tripService) Update(ctx context.Context, actor *usecase.Actor, id string, update *entity.TripUpdate) (*entity.Trip, error) {
	current, err := srv.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	patch := *update
	if patch.Status != nil && !patch.Status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown trip status")
	}
	if patch.VehicleType != nil && !patch.VehicleType.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown vehicle type")
	}

	completing := patch.Status != nil && *patch.Status == entity.TripStatusCompleted && current.Status != entity.TripStatusCompleted
	if completing && patch.CompletedAt == nil {
		at := srv.now().UTC()
		patch.CompletedAt = &at
	}

	trip, err := srv.store.Trips().Update(ctx, id, patch)
	if err != nil {
		return nil, storeError(err, domainerrors.ErrTripNotFound, "failed to update trip")
	}

	if patch.Status != nil && *patch.Status != current.Status {
		srv.log(ctx).Info("Trip status changed",
			slog.String("tripID", id),
			slog.String("from", current.Status.String()),
			slog.String("to", trip.Status.String()),
		)
		event := tripEvent(service.EventTripStatusChanged, trip)
		event.Attributes["previous_status"] = current.Status.String()
		srv.publish(ctx, srv.log(ctx), event)
	}
	if completing {
		srv.creditDriver(ctx, trip.DriverID)
	}

	return trip, nil
}

// Delete hard-removes a trip owned by the caller, or any trip for an admin.
func (srv *tripService) Delete(ctx context.Context, actor *usecase.Actor, id string) error {
	if _, err := srv.owned(ctx, actor, id); err != nil {
		return err
	}

	if err := srv.store.Trips().Delete(ctx, id); err != nil {
		return storeError(err, domainerrors.ErrTripNotFound, "failed to delete trip")
	}

	srv.log(ctx).Info("Trip deleted", slog.String("tripID", id), slog.String("by", actor.UserID))

	return nil
}

func (srv *tripService) Estimate(_ context.Context, input *usecase.EstimateInput) (*service.FareEstimate, error) {
	vehicleType := input.VehicleType
	if vehicleType != "" && !vehicleType.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown vehicle type")
	}

	quote := srv.estimator.Estimate(input.From, input.To, vehicleType)

	return &quote, nil
}

func (srv *tripService) owned(ctx context.Context, actor *usecase.Actor, id string) (*entity.Trip, error) {
	if actor == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	trip, err := srv.store.Trips().FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, domainerrors.ErrTripNotFound, "failed to find trip")
	}
	if !actor.CanAccess(trip.UserID) {
		return nil, domainerrors.ErrForbidden
	}

	return trip, nil
}

// creditDriver bumps the driver's completed trip count. Failures are logged
// and do not undo the trip change.
func (srv *tripService) creditDriver(ctx context.Context, driverID string) {
	if driverID == "" {
		return
	}

	_, err := srv.store.Drivers().Update(ctx, driverID, incrementTotalTrips{})
	if err != nil {
		srv.log(ctx).Warn("Failed to credit driver with completed trip",
			slog.String("driverID", driverID),
			slog.Any("error", err),
		)
	}
}

// incrementTotalTrips is applied under the store's write serialization, so
// concurrent completions all count.
type incrementTotalTrips struct{}

func (incrementTotalTrips) Apply(d *entity.Driver) {
	d.TotalTrips++
}

package impl

import (
	"context"
	"log/slog"
	"strconv"

	"ridehail/internal/domain/entity"
	domainerrors "ridehail/internal/domain/errors"
	"ridehail/internal/domain/repository"
	"ridehail/internal/domain/service"
	"ridehail/internal/usecase"

	"go.uber.org/fx"
)

// ratingService implements the RatingUsecase interface.
type ratingService struct {
	base
	publisher
}

// RatingServiceParams holds dependencies for RatingService, injected by Fx.
type RatingServiceParams struct {
	fx.In

	Store     repository.Store
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewRatingService is the constructor for ratingService.
func NewRatingService(params RatingServiceParams) usecase.RatingUsecase {
	return &ratingService{
		base:      newBase(params.Store, params.Logger),
		publisher: publisher{events: params.Publisher},
	}
}

// Create stores the rating and then sets the driver's rating to the mean of
// all their ratings. A trip may be rated more than once.
func (srv *ratingService) Create(ctx context.Context, actor *usecase.Actor, input *usecase.CreateRatingInput) (*usecase.RatingOutput, error) {
	if actor == nil {
		return nil, domainerrors.ErrUnauthenticated
	}
	if input.Score < entity.MinScore || input.Score > entity.MaxScore {
		return nil, domainerrors.ErrValidationFailed.WithDetails("score must be between 0 and 5")
	}

	driverID := input.DriverID
	if input.TripID != "" {
		trip, err := srv.store.Trips().FindByID(ctx, input.TripID)
		if err != nil {
			return nil, storeError(err, domainerrors.ErrTripNotFound, "failed to find rated trip")
		}
		if driverID == "" {
			driverID = trip.DriverID
		}
	}
	if driverID == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("driverId is required")
	}
	if _, err := srv.store.Drivers().FindByID(ctx, driverID); err != nil {
		return nil, storeError(err, domainerrors.ErrDriverNotFound, "failed to find rated driver")
	}

	id, now := srv.stamp()
	rating := &entity.Rating{
		ID:        id,
		TripID:    input.TripID,
		UserID:    actor.UserID,
		DriverID:  driverID,
		Score:     input.Score,
		Comment:   input.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	var average float64
	err := srv.tx.Execute(ctx, func(txStore repository.Store) error {
		if err := txStore.Ratings().Create(ctx, rating); err != nil {
			return storeError(err, domainerrors.ErrRatingNotFound, "failed to create rating")
		}

		var err error
		average, err = recompute(ctx, txStore, driverID)

		return err
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Rating submitted",
		slog.String("ratingID", rating.ID),
		slog.String("driverID", driverID),
		slog.Float64("driverRating", average),
	)
	srv.publish(ctx, srv.log(ctx), &service.DomainEvent{
		Type:     service.EventRatingSubmitted,
		Kind:     entity.KindRating.String(),
		RecordID: rating.ID,
		UserID:   rating.UserID,
		Attributes: map[string]string{
			"driver_id": driverID,
			"score":     strconv.FormatFloat(rating.Score, 'f', -1, 64),
		},
		OccurredAt: now,
	})

	return &usecase.RatingOutput{Rating: rating, DriverRating: average}, nil
}

func (srv *ratingService) List(ctx context.Context) ([]*entity.Rating, error) {
	ratings, err := srv.store.Ratings().Find(ctx, nil)

	return ratings, storeError(err, domainerrors.ErrRatingNotFound, "failed to list ratings")
}

func (srv *ratingService) ListByDriver(ctx context.Context, driverID string) (*usecase.DriverRatings, error) {
	if _, err := srv.store.Drivers().FindByID(ctx, driverID); err != nil {
		return nil, storeError(err, domainerrors.ErrDriverNotFound, "failed to find driver")
	}

	ratings, err := srv.store.Ratings().Find(ctx, repository.Where(entity.FieldDriverID, driverID))
	if err != nil {
		return nil, storeError(err, domainerrors.ErrRatingNotFound, "failed to list driver ratings")
	}

	return &usecase.DriverRatings{
		DriverID: driverID,
		Average:  entity.AverageScore(ratings),
		Ratings:  ratings,
	}, nil
}

// recompute sets the driver's rating to the mean of all their ratings.
func recompute(ctx context.Context, store repository.Store, driverID string) (float64, error) {
	ratings, err := store.Ratings().Find(ctx, repository.Where(entity.FieldDriverID, driverID))
	if err != nil {
		return 0, storeError(err, domainerrors.ErrRatingNotFound, "failed to load driver ratings")
	}

	average := entity.AverageScore(ratings)
	if _, err := store.Drivers().Update(ctx, driverID, entity.DriverUpdate{Rating: &average}); err != nil {
		return 0, storeError(err, domainerrors.ErrDriverNotFound, "failed to update driver rating")
	}

	return average, nil
}

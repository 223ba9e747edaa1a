package impl

import (
	"context"
	"log/slog"
	"math"

	"ridehail/internal/domain/entity"
	domainerrors "ridehail/internal/domain/errors"
	"ridehail/internal/domain/repository"
	"ridehail/internal/usecase"

	"go.uber.org/fx"
)

// analyticsService implements the AnalyticsUsecase interface on top of the
// store's Count and Sum aggregates.
type analyticsService struct {
	base
}

// AnalyticsServiceParams holds dependencies for AnalyticsService, injected by Fx.
type AnalyticsServiceParams struct {
	fx.In

	Store  repository.Store
	Logger *slog.Logger
}

// NewAnalyticsService is the constructor for analyticsService.
func NewAnalyticsService(params AnalyticsServiceParams) usecase.AnalyticsUsecase {
	return &analyticsService{base: newBase(params.Store, params.Logger)}
}

func (srv *analyticsService) Overview(ctx context.Context) (*usecase.Overview, error) {
	trips := srv.store.Trips()
	out := &usecase.Overview{}

	var err error
	if out.TotalTrips, err = trips.Count(ctx, nil); err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to count trips")
	}
	if out.ActiveTrips, err = trips.Count(ctx, repository.Where(entity.FieldStatus, entity.TripStatusActive)); err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to count active trips")
	}
	if out.CompletedTrips, err = trips.Count(ctx, repository.Where(entity.FieldStatus, entity.TripStatusCompleted)); err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to count completed trips")
	}
	if out.ScheduledTrips, err = trips.Count(ctx, repository.Where(entity.FieldStatus, entity.TripStatusScheduled)); err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to count scheduled trips")
	}
	if out.TotalUsers, err = srv.store.Users().Count(ctx, nil); err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to count users")
	}
	if out.TotalDrivers, err = srv.store.Drivers().Count(ctx, nil); err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to count drivers")
	}
	if out.AvailableDrivers, err = srv.store.Drivers().Count(ctx, repository.Where(entity.FieldIsAvailable, true)); err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to count available drivers")
	}

	completed := repository.Where(entity.FieldStatus, entity.PaymentStatusCompleted)
	if out.TotalRevenue, err = srv.store.Payments().Sum(ctx, entity.FieldAmount, completed); err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to sum revenue")
	}
	out.TotalRevenue = round2(out.TotalRevenue)

	ratingCount, err := srv.store.Ratings().Count(ctx, nil)
	if err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to count ratings")
	}
	ratingSum, err := srv.store.Ratings().Sum(ctx, entity.FieldScore, nil)
	if err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to sum ratings")
	}
	out.AverageRating = round2(ratio(ratingSum, ratingCount))

	return out, nil
}

func (srv *analyticsService) Revenue(ctx context.Context) (*usecase.Revenue, error) {
	payments := srv.store.Payments()
	completed := repository.Where(entity.FieldStatus, entity.PaymentStatusCompleted)
	pending := repository.Where(entity.FieldStatus, entity.PaymentStatusPending)
	out := &usecase.Revenue{ByMethod: make(map[string]float64)}

	var err error
	if out.TotalRevenue, err = payments.Sum(ctx, entity.FieldAmount, completed); err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to sum revenue")
	}
	if out.CompletedPayments, err = payments.Count(ctx, completed); err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to count completed payments")
	}
	if out.PendingPayments, err = payments.Count(ctx, pending); err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to count pending payments")
	}
	if out.PendingAmount, err = payments.Sum(ctx, entity.FieldAmount, pending); err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to sum pending payments")
	}

	for _, method := range []entity.PaymentMethod{entity.PaymentMethodCard, entity.PaymentMethodCash, entity.PaymentMethodWallet} {
		amount, err := payments.Sum(ctx, entity.FieldAmount, completed.And(entity.FieldMethod, method))
		if err != nil {
			return nil, storeError(err, domainerrors.ErrNotFound, "failed to sum revenue by method")
		}
		out.ByMethod[method.String()] = round2(amount)
	}

	tripCount, err := srv.store.Trips().Count(ctx, nil)
	if err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to count trips")
	}
	tripSum, err := srv.store.Trips().Sum(ctx, entity.FieldPrice, nil)
	if err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to sum trip prices")
	}

	out.TotalRevenue = round2(out.TotalRevenue)
	out.PendingAmount = round2(out.PendingAmount)
	out.AverageTripPrice = round2(ratio(tripSum, tripCount))

	return out, nil
}

// Trips groups by city in process since cities are open-ended.
func (srv *analyticsService) Trips(ctx context.Context) (*usecase.TripStats, error) {
	trips, err := srv.store.Trips().Find(ctx, nil)
	if err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to list trips")
	}

	out := &usecase.TripStats{
		Total:    int64(len(trips)),
		ByStatus: make(map[string]int64),
		ByCity:   make(map[string]int64),
	}
	for _, status := range []entity.TripStatus{
		entity.TripStatusActive, entity.TripStatusCompleted, entity.TripStatusScheduled, entity.TripStatusCancelled,
	} {
		out.ByStatus[status.String()] = 0
	}

	var distance, price float64
	for _, trip := range trips {
		out.ByStatus[trip.Status.String()]++
		if trip.City != "" {
			out.ByCity[trip.City]++
		}
		distance += trip.DistanceKm
		price += trip.Price
	}
	out.AverageDistance = round2(ratio(distance, out.Total))
	out.AveragePrice = round2(ratio(price, out.Total))

	return out, nil
}

func ratio(sum float64, count int64) float64 {
	if count == 0 {
		return 0
	}

	return sum / float64(count)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

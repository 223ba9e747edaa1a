package impl

import (
	"context"
	"sync"
	"testing"

	"ridehail/internal/domain/entity"
	domainerrors "ridehail/internal/domain/errors"
	"ridehail/internal/domain/service"
	"ridehail/internal/infra/geo"
	mockSvc "ridehail/internal/mocks/service"
	"ridehail/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	taipeiStation = entity.GeoPoint{Lat: 25.0478, Lng: 121.5170}
	taipei101     = entity.GeoPoint{Lat: 25.0340, Lng: 121.5645}
)

func TestTripService_Create_EstimatesAndPublishes(t *testing.T) {
	fx := createTestServices(t)
	rider := fx.register(t, "rider@example.com", entity.RoleUser)

	trip, err := fx.trips.Create(context.Background(), rider, &usecase.CreateTripInput{
		From:         "Taipei Main Station",
		To:           "Taipei 101",
		FromLocation: &taipeiStation,
		ToLocation:   &taipei101,
		City:         "Taipei",
	})

	require.NoError(t, err)
	assert.Equal(t, rider.UserID, trip.UserID)
	assert.Equal(t, entity.TripStatusActive, trip.Status)
	assert.Equal(t, entity.VehicleTypeStandard, trip.VehicleType)
	assert.Greater(t, trip.DistanceKm, 0.0)
	assert.Greater(t, trip.Price, 0.0)
	assert.Nil(t, trip.CompletedAt)
	assert.Equal(t, []string{service.EventTripCreated}, fx.publishedTypes())
}

func TestTripService_Create_ExplicitPriceWins(t *testing.T) {
	fx := createTestServices(t)
	rider := fx.register(t, "rider@example.com", entity.RoleUser)

	trip, err := fx.trips.Create(context.Background(), rider, &usecase.CreateTripInput{
		From:         "A",
		To:           "B",
		FromLocation: &taipeiStation,
		ToLocation:   &taipei101,
		Price:        ptr(999.0),
	})

	require.NoError(t, err)
	assert.InDelta(t, 999.0, trip.Price, 1e-9)
}

func TestTripService_Create_Validation(t *testing.T) {
	fx := createTestServices(t)
	rider := fx.register(t, "rider@example.com", entity.RoleUser)
	ctx := context.Background()

	_, err := fx.trips.Create(ctx, nil, &usecase.CreateTripInput{From: "A", To: "B"})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)

	_, err = fx.trips.Create(ctx, rider, &usecase.CreateTripInput{From: "A", To: "B", Status: "teleported"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = fx.trips.Create(ctx, rider, &usecase.CreateTripInput{From: "A", To: "B", DriverID: "missing"})
	assert.ErrorIs(t, err, domainerrors.ErrDriverNotFound)
}

func TestTripService_Create_PublishFailureIsNotFatal(t *testing.T) {
	fx := createTestServices(t)
	rider := fx.register(t, "rider@example.com", entity.RoleUser)

	publisher := mockSvc.NewMockEventPublisher(t)
	publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
	svc := NewTripService(TripServiceParams{
		Store:     fx.store,
		Estimator: geo.NewFareEstimator(nil),
		Publisher: publisher,
		Logger:    testLogger(),
	})

	trip, err := svc.Create(context.Background(), rider, &usecase.CreateTripInput{From: "A", To: "B"})

	require.NoError(t, err)
	stored, err := fx.store.Trips().FindByID(context.Background(), trip.ID)
	require.NoError(t, err)
	assert.Equal(t, trip.ID, stored.ID)
}

func TestTripService_List_PinsNonAdminToOwnTrips(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()
	alice := fx.register(t, "alice@example.com", entity.RoleUser)
	bob := fx.register(t, "bob@example.com", entity.RoleUser)

	for _, actor := range []*usecase.Actor{alice, alice, bob} {
		_, err := fx.trips.Create(ctx, actor, &usecase.CreateTripInput{From: "A", To: "B", City: "Taipei"})
		require.NoError(t, err)
	}

	own, err := fx.trips.List(ctx, bob, usecase.TripFilter{UserID: alice.UserID})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, bob.UserID, own[0].UserID)

	all, err := fx.trips.List(ctx, adminActor(), usecase.TripFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := fx.trips.List(ctx, adminActor(), usecase.TripFilter{UserID: alice.UserID, City: "Taipei"})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	public, err := fx.trips.List(ctx, nil, usecase.TripFilter{})
	require.NoError(t, err)
	assert.Len(t, public, 3)
}

func TestTripService_Update_CompletionCreditsDriver(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()
	rider := fx.register(t, "rider@example.com", entity.RoleUser)
	driver := fx.driverOf(t, fx.register(t, "driver@example.com", entity.RoleDriver))

	trip, err := fx.trips.Create(ctx, rider, &usecase.CreateTripInput{From: "A", To: "B", DriverID: driver.ID})
	require.NoError(t, err)

	updated, err := fx.trips.Update(ctx, rider, trip.ID, &entity.TripUpdate{Status: ptr(entity.TripStatusCompleted)})

	require.NoError(t, err)
	assert.Equal(t, entity.TripStatusCompleted, updated.Status)
	assert.NotNil(t, updated.CompletedAt)
	assert.Equal(t, "A", updated.From)

	credited, err := fx.store.Drivers().FindByID(ctx, driver.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, credited.TotalTrips)
	assert.Equal(t, []string{service.EventTripCreated, service.EventTripStatusChanged}, fx.publishedTypes())

	// Re-sending the same status is not a second completion.
	_, err = fx.trips.Update(ctx, rider, trip.ID, &entity.TripUpdate{Status: ptr(entity.TripStatusCompleted)})
	require.NoError(t, err)
	credited, err = fx.store.Drivers().FindByID(ctx, driver.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, credited.TotalTrips)
}

func TestTripService_Update_ConcurrentCompletionsAllCount(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()
	rider := fx.register(t, "rider@example.com", entity.RoleUser)
	driver := fx.driverOf(t, fx.register(t, "driver@example.com", entity.RoleDriver))

	const n = 20
	ids := make([]string, n)
	for i := range ids {
		trip, err := fx.trips.Create(ctx, rider, &usecase.CreateTripInput{From: "A", To: "B", DriverID: driver.ID})
		require.NoError(t, err)
		ids[i] = trip.ID
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := fx.trips.Update(ctx, rider, id, &entity.TripUpdate{Status: ptr(entity.TripStatusCompleted)})
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	credited, err := fx.store.Drivers().FindByID(ctx, driver.ID)
	require.NoError(t, err)
	assert.Equal(t, n, credited.TotalTrips)
}

func TestTripService_Update_Authorization(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()
	owner := fx.register(t, "owner@example.com", entity.RoleUser)
	other := fx.register(t, "other@example.com", entity.RoleUser)

	trip, err := fx.trips.Create(ctx, owner, &usecase.CreateTripInput{From: "A", To: "B"})
	require.NoError(t, err)

	_, err = fx.trips.Update(ctx, other, trip.ID, &entity.TripUpdate{To: ptr("C")})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = fx.trips.Update(ctx, nil, trip.ID, &entity.TripUpdate{To: ptr("C")})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)

	updated, err := fx.trips.Update(ctx, adminActor(), trip.ID, &entity.TripUpdate{To: ptr("C")})
	require.NoError(t, err)
	assert.Equal(t, "C", updated.To)
}

func TestTripService_Update_MissingTrip(t *testing.T) {
	fx := createTestServices(t)

	_, err := fx.trips.Update(context.Background(), adminActor(), "nope", &entity.TripUpdate{To: ptr("C")})

	assert.ErrorIs(t, err, domainerrors.ErrTripNotFound)
	count, countErr := fx.store.Trips().Count(context.Background(), nil)
	require.NoError(t, countErr)
	assert.Zero(t, count)
}

func TestTripService_Delete(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()
	owner := fx.register(t, "owner@example.com", entity.RoleUser)
	other := fx.register(t, "other@example.com", entity.RoleUser)

	trip, err := fx.trips.Create(ctx, owner, &usecase.CreateTripInput{From: "A", To: "B"})
	require.NoError(t, err)

	assert.ErrorIs(t, fx.trips.Delete(ctx, other, trip.ID), domainerrors.ErrForbidden)
	require.NoError(t, fx.trips.Delete(ctx, owner, trip.ID))

	_, err = fx.trips.Get(ctx, trip.ID)
	assert.ErrorIs(t, err, domainerrors.ErrTripNotFound)
	assert.ErrorIs(t, fx.trips.Delete(ctx, owner, trip.ID), domainerrors.ErrTripNotFound)
}

func TestTripService_Estimate(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	standard, err := fx.trips.Estimate(ctx, &usecase.EstimateInput{From: taipeiStation, To: taipei101})
	require.NoError(t, err)
	premium, err := fx.trips.Estimate(ctx, &usecase.EstimateInput{From: taipeiStation, To: taipei101, VehicleType: entity.VehicleTypePremium})
	require.NoError(t, err)

	assert.Equal(t, standard.DistanceKm, premium.DistanceKm)
	assert.Greater(t, premium.Price, standard.Price)

	_, err = fx.trips.Estimate(ctx, &usecase.EstimateInput{From: taipeiStation, To: taipei101, VehicleType: "hovercraft"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

package impl

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ridehail/internal/domain/entity"
	"ridehail/internal/domain/service"
	"ridehail/internal/infra/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedDriftedDriver stores a driver whose aggregates disagree with its
// trips and ratings.
func seedDriftedDriver(t *testing.T, store *memory.Store) {
	t.Helper()

	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.Drivers().Create(ctx, &entity.Driver{ID: "d1", Name: "Drift", Rating: 1, TotalTrips: 99, CreatedAt: now, UpdatedAt: now}))
	for i, status := range []entity.TripStatus{entity.TripStatusCompleted, entity.TripStatusCompleted, entity.TripStatusActive} {
		require.NoError(t, store.Trips().Create(ctx, &entity.Trip{
			ID: fmt.Sprintf("t%d", i+1), UserID: "u1", DriverID: "d1", Status: status, CreatedAt: now, UpdatedAt: now,
		}))
	}
	for i, score := range []float64{3, 4} {
		require.NoError(t, store.Ratings().Create(ctx, &entity.Rating{
			ID: fmt.Sprintf("r%d", i+1), TripID: "t1", UserID: "u1", DriverID: "d1", Score: score, CreatedAt: now, UpdatedAt: now,
		}))
	}
}

func TestEventService_ReconcilesDriverOnRating(t *testing.T) {
	store := memory.NewStore(nil)
	seedDriftedDriver(t, store)
	srv := NewEventService(EventServiceParams{Store: store, Logger: testLogger()})
	ctx := context.Background()

	event := &service.DomainEvent{
		Type:       service.EventRatingSubmitted,
		RecordID:   "r2",
		Attributes: map[string]string{"driver_id": "d1", "score": "4"},
	}

	// Replays converge on the same state.
	for range 2 {
		require.NoError(t, srv.Handle(ctx, event))

		driver, err := store.Drivers().FindByID(ctx, "d1")
		require.NoError(t, err)
		assert.InDelta(t, 3.5, driver.Rating, 1e-9)
		assert.Equal(t, 2, driver.TotalTrips)
	}
}

func TestEventService_TripStatusChanged(t *testing.T) {
	tests := []struct {
		name      string
		status    entity.TripStatus
		wantTrips int
	}{
		{name: "completed reconciles", status: entity.TripStatusCompleted, wantTrips: 2},
		{name: "other status is ignored", status: entity.TripStatusCancelled, wantTrips: 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore(nil)
			seedDriftedDriver(t, store)
			srv := NewEventService(EventServiceParams{Store: store, Logger: testLogger()})
			ctx := context.Background()

			err := srv.Handle(ctx, &service.DomainEvent{
				Type:       service.EventTripStatusChanged,
				RecordID:   "t1",
				Attributes: map[string]string{"driver_id": "d1", "status": tt.status.String()},
			})
			require.NoError(t, err)

			driver, err := store.Drivers().FindByID(ctx, "d1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantTrips, driver.TotalTrips)
		})
	}
}

func TestEventService_IgnoresUnrelatedEvents(t *testing.T) {
	store := memory.NewStore(nil)
	srv := NewEventService(EventServiceParams{Store: store, Logger: testLogger()})
	ctx := context.Background()

	assert.NoError(t, srv.Handle(ctx, &service.DomainEvent{Type: service.EventPaymentCreated, RecordID: "p1"}))
	assert.NoError(t, srv.Handle(ctx, &service.DomainEvent{Type: service.EventRatingSubmitted, RecordID: "r1"}))
	assert.NoError(t, srv.Handle(ctx, &service.DomainEvent{
		Type:       service.EventRatingSubmitted,
		RecordID:   "r1",
		Attributes: map[string]string{"driver_id": "gone"},
	}))
	assert.Error(t, srv.Handle(ctx, nil))
}

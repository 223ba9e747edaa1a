package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"ridehail/internal/domain/entity"
	"ridehail/internal/domain/repository"
	"ridehail/internal/infra/persistence/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestStore() *Store {
	return NewStore(func() time.Time { return fixedNow })
}

func ptr[T any](v T) *T { return &v }

func TestCollection_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	trip := &entity.Trip{ID: "t1", UserID: "u1", From: "A", To: "B", Status: entity.TripStatusActive, Price: 500}
	require.NoError(t, store.Trips().Create(ctx, trip))

	got, err := store.Trips().FindByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, trip, got)

	// callers cannot reach the stored copy
	got.Price = 1
	again, err := store.Trips().FindByID(ctx, "t1")
	require.NoError(t, err)
	assert.InDelta(t, 500.0, again.Price, 0)
}

func TestCollection_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: "u1", Email: "a@b.c"}))
	err := store.Users().Create(ctx, &entity.User{ID: "u1", Email: "x@y.z"})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)
}

func TestCollection_FindByIDMissing(t *testing.T) {
	_, err := newTestStore().Drivers().FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCollection_FindFiltersInInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	for _, tr := range []*entity.Trip{
		{ID: "t1", UserID: "u1", Status: entity.TripStatusCompleted},
		{ID: "t2", UserID: "u2", Status: entity.TripStatusCompleted},
		{ID: "t3", UserID: "u1", Status: entity.TripStatusActive},
		{ID: "t4", UserID: "u1", Status: entity.TripStatusCompleted},
	} {
		require.NoError(t, store.Trips().Create(ctx, tr))
	}

	filter := repository.Where(entity.FieldUserID, "u1").And(entity.FieldStatus, entity.TripStatusCompleted)
	first, err := store.Trips().Find(ctx, filter)
	require.NoError(t, err)
	second, err := store.Trips().Find(ctx, filter)
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Equal(t, "t1", first[0].ID)
	assert.Equal(t, "t4", first[1].ID)
	assert.Equal(t, first, second)

	all, err := store.Trips().Find(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestCollection_FindUnknownField(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	require.NoError(t, store.Vehicles().Create(ctx, &entity.Vehicle{ID: "v1"}))

	_, err := store.Vehicles().Find(ctx, repository.Where("colour", "red"))
	assert.ErrorIs(t, err, repository.ErrUnknownField)
}

func TestCollection_UpdateMergesAndTouches(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	created := fixedNow.Add(-time.Hour)

	require.NoError(t, store.Drivers().Create(ctx, &entity.Driver{
		ID: "d1", Name: "Ann", City: "Oakland", IsAvailable: true, CreatedAt: created, UpdatedAt: created,
	}))

	updated, err := store.Drivers().Update(ctx, "d1", entity.DriverUpdate{IsAvailable: ptr(false)})
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)
	assert.Equal(t, "Ann", updated.Name)
	assert.Equal(t, "Oakland", updated.City)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, fixedNow, updated.UpdatedAt)

	stored, err := store.Drivers().FindByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
}

func TestCollection_UpdateMissingCreatesNothing(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	_, err := store.Payments().Update(ctx, "ghost", entity.PaymentUpdate{Amount: ptr(10.0)})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	n, err := store.Payments().Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCollection_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	require.NoError(t, store.Ratings().Create(ctx, &entity.Rating{ID: "r1", Score: 4}))
	require.NoError(t, store.Ratings().Create(ctx, &entity.Rating{ID: "r2", Score: 5}))

	require.NoError(t, store.Ratings().Delete(ctx, "r1"))
	assert.ErrorIs(t, store.Ratings().Delete(ctx, "r1"), repository.ErrNotFound)

	_, err := store.Ratings().FindByID(ctx, "r1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	rest, err := store.Ratings().Find(ctx, nil)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "r2", rest[0].ID)
}

func TestCollection_CountAndSum(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	for _, p := range []*entity.Payment{
		{ID: "p1", Amount: 100, Status: entity.PaymentStatusCompleted},
		{ID: "p2", Amount: 250.5, Status: entity.PaymentStatusCompleted},
		{ID: "p3", Amount: 75, Status: entity.PaymentStatusPending},
	} {
		require.NoError(t, store.Payments().Create(ctx, p))
	}

	completed := repository.Where(entity.FieldStatus, entity.PaymentStatusCompleted)
	n, err := store.Payments().Count(ctx, completed)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	total, err := store.Payments().Sum(ctx, entity.FieldAmount, completed)
	require.NoError(t, err)
	assert.InDelta(t, 350.5, total, 1e-9)

	_, err = store.Payments().Sum(ctx, "tip", nil)
	assert.ErrorIs(t, err, repository.ErrUnknownField)
}

func TestCollection_ConcurrentUpdatesAreSerialized(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	require.NoError(t, store.Drivers().Create(ctx, &entity.Driver{ID: "d1"}))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Drivers().Update(ctx, "d1", incrementTrips{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.Drivers().FindByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, 50, got.TotalTrips)
}

type incrementTrips struct{}

func (incrementTrips) Apply(d *entity.Driver) { d.TotalTrips++ }

func TestCollection_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newTestStore().Users().Create(ctx, &entity.User{ID: "u1"})
	assert.ErrorIs(t, err, context.Canceled)
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return password, nil }

func (plainHasher) Check(password, hash string) bool { return password == hash }

func TestStore_SeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	ds, err := seed.Generate(seed.Options{
		AdminEmail: "admin@example.com", AdminPassword: "pw", Trips: 10, RandomSeed: 3, Now: fixedNow,
	}, plainHasher{})
	require.NoError(t, err)

	loaded, err := store.Seed(ctx, ds)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.True(t, store.Seeded())

	before := store.Stats()
	assert.Equal(t, 10, before[entity.KindTrip])
	assert.Equal(t, len(ds.Users), before[entity.KindUser])

	loaded, err = store.Seed(ctx, ds)
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.Equal(t, before, store.Stats())
}

func TestStore_Backend(t *testing.T) {
	store := newTestStore()
	assert.Equal(t, "memory", store.Backend())
	assert.NoError(t, store.Ping(context.Background()))
	assert.NoError(t, store.Close())
}

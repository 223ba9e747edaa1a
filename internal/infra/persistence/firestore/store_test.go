package firestore

import (
	"context"
	"os"
	"testing"
	"time"

	"ridehail/config"
	"ridehail/internal/domain/entity"
	"ridehail/internal/domain/repository"

	gfs "cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newEmulatorStore connects to a local emulator in its own collection.
func newEmulatorStore(t *testing.T) *Store {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := gfs.NewClient(ctx, "ridehail-test")
	require.NoError(t, err)

	store := NewStore(client, &config.FirestoreConfig{
		ProjectID:  "ridehail-test",
		Collection: "records_" + uuid.NewString(),
		Database:   "test",
	}, nil)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Init(ctx))

	return store
}

func TestStore_PingAfterInit(t *testing.T) {
	store := newEmulatorStore(t)
	assert.NoError(t, store.Ping(context.Background()))
	assert.Equal(t, "firestore", store.Backend())
}

func TestStore_CRUD(t *testing.T) {
	store := newEmulatorStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	trip := &entity.Trip{ID: "t1", UserID: "u1", From: "A", To: "B", Status: entity.TripStatusActive, Price: 320, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Trips().Create(ctx, trip))
	assert.ErrorIs(t, store.Trips().Create(ctx, trip), repository.ErrDuplicateKey)

	got, err := store.Trips().FindByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.InDelta(t, 320.0, got.Price, 0)

	// same id under another kind is a different document
	_, err = store.Users().FindByID(ctx, "t1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	status := entity.TripStatusCompleted
	updated, err := store.Trips().Update(ctx, "t1", entity.TripUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entity.TripStatusCompleted, updated.Status)
	assert.Equal(t, "A", updated.From)

	_, err = store.Trips().Update(ctx, "missing", entity.TripUpdate{Status: &status})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, store.Trips().Delete(ctx, "t1"))
	assert.ErrorIs(t, store.Trips().Delete(ctx, "t1"), repository.ErrNotFound)
}

func TestStore_FindCountSum(t *testing.T) {
	store := newEmulatorStore(t)
	ctx := context.Background()

	for _, p := range []*entity.Payment{
		{ID: "p1", UserID: "u1", Amount: 100, Status: entity.PaymentStatusCompleted},
		{ID: "p2", UserID: "u1", Amount: 50.5, Status: entity.PaymentStatusCompleted},
		{ID: "p3", UserID: "u2", Amount: 10, Status: entity.PaymentStatusPending},
	} {
		require.NoError(t, store.Payments().Create(ctx, p))
	}

	completed := repository.Where(entity.FieldStatus, entity.PaymentStatusCompleted)
	found, err := store.Payments().Find(ctx, completed)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "p1", found[0].ID)

	n, err := store.Payments().Count(ctx, completed)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	total, err := store.Payments().Sum(ctx, entity.FieldAmount, completed)
	require.NoError(t, err)
	assert.InDelta(t, 150.5, total, 1e-9)

	_, err = store.Payments().Find(ctx, repository.Where("tip", 1))
	assert.ErrorIs(t, err, repository.ErrUnknownField)
}

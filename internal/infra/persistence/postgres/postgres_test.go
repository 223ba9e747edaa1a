package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"ridehail/config"
	"ridehail/internal/domain/entity"
	"ridehail/internal/domain/repository"
	"ridehail/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil, "noop"))
	assert.ErrorIs(t, mapError(gorm.ErrRecordNotFound, "find"), repository.ErrNotFound)
	assert.ErrorIs(t, mapError(gorm.ErrDuplicatedKey, "create"), repository.ErrDuplicateKey)

	raw := errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`)
	assert.ErrorIs(t, mapError(raw, "create"), repository.ErrDuplicateKey)

	other := errors.New("connection refused")
	mapped := mapError(other, "create %s", "user")
	assert.ErrorIs(t, mapped, other)
	assert.Contains(t, mapped.Error(), "create user")
}

func TestTripMapping_KeepsCoordinates(t *testing.T) {
	done := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	trip := &entity.Trip{
		ID:           "t1",
		UserID:       "u1",
		From:         "Union Square",
		To:           "Ferry Building",
		FromLocation: &entity.GeoPoint{Lat: 37.788, Lng: -122.4075},
		Status:       entity.TripStatusCompleted,
		Price:        420,
		VehicleType:  entity.VehicleTypePremium,
		CompletedAt:  &done,
	}

	m := fromTripDomain(trip)
	require.NotNil(t, m.FromLat)
	assert.Nil(t, m.ToLat)
	assert.Equal(t, "completed", m.Status)

	back := toTripDomain(m)
	assert.Equal(t, trip, back)
}

func TestGormSlogLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := &config.Config{}
	l := newGormSlogLogger(base, cfg)

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 1 }, nil)
	assert.Empty(t, buf.String(), "fast successful queries are not logged at warn level")

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "INSERT", 0 }, errors.New("boom"))
	assert.Contains(t, buf.String(), "Postgres query failed")
	assert.Contains(t, buf.String(), `"component":"gorm"`)

	buf.Reset()
	l.LogMode(logger.Info).Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 2", 1 }, nil)
	assert.Contains(t, buf.String(), "SELECT 2")
}

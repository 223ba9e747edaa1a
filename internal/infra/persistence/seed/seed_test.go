package seed

import (
	"testing"
	"time"

	"ridehail/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Check(password, hash string) bool { return hash == "hashed:"+password }

func testOptions() Options {
	return Options{
		AdminEmail:    "admin@example.com",
		AdminPassword: "admin-secret",
		DemoPassword:  "demo-secret",
		Trips:         30,
		RandomSeed:    7,
		Now:           time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGenerate_IsDeterministic(t *testing.T) {
	first, err := Generate(testOptions(), plainHasher{})
	require.NoError(t, err)
	second, err := Generate(testOptions(), plainHasher{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_ReferencesAreConsistent(t *testing.T) {
	ds, err := Generate(testOptions(), plainHasher{})
	require.NoError(t, err)

	assert.Len(t, ds.Trips, 30)
	require.NotEmpty(t, ds.Users)
	assert.Equal(t, entity.RoleAdmin, ds.Users[0].Role)
	assert.Equal(t, "admin@example.com", ds.Users[0].Email)
	assert.Equal(t, "hashed:admin-secret", ds.Users[0].Password)

	users := make(map[string]bool)
	for _, u := range ds.Users {
		users[u.ID] = true
	}
	drivers := make(map[string]*entity.Driver)
	for _, d := range ds.Drivers {
		assert.True(t, users[d.UserID], "driver %s must link to a user", d.ID)
		drivers[d.ID] = d
	}
	for _, v := range ds.Vehicles {
		assert.Contains(t, drivers, v.DriverID)
	}

	completed := make(map[string]bool)
	for _, trip := range ds.Trips {
		assert.True(t, users[trip.UserID])
		assert.Contains(t, drivers, trip.DriverID)
		assert.True(t, trip.Status.IsValid())
		if trip.Status == entity.TripStatusCompleted {
			completed[trip.ID] = true
			assert.NotNil(t, trip.CompletedAt)
		}
	}

	assert.Len(t, ds.Ratings, len(completed))
	assert.Len(t, ds.Payments, len(completed))
	for _, r := range ds.Ratings {
		assert.True(t, completed[r.TripID])
		assert.GreaterOrEqual(t, r.Score, entity.MinScore)
		assert.LessOrEqual(t, r.Score, entity.MaxScore)
	}

	totals := 0
	for _, d := range ds.Drivers {
		totals += d.TotalTrips
	}
	assert.Equal(t, len(completed), totals)
}

func TestGenerate_RequiresAdminCredentials(t *testing.T) {
	opts := testOptions()
	opts.AdminPassword = ""

	_, err := Generate(opts, plainHasher{})
	assert.Error(t, err)
}

func TestID_IsStable(t *testing.T) {
	assert.Equal(t, ID(entity.KindTrip, "trip-1"), ID(entity.KindTrip, "trip-1"))
	assert.NotEqual(t, ID(entity.KindTrip, "trip-1"), ID(entity.KindRating, "trip-1"))
}

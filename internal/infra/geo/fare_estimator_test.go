package geo

import (
	"testing"

	"ridehail/config"
	"ridehail/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

var (
	unionSquare = entity.GeoPoint{Lat: 37.7880, Lng: -122.4075}
	sfo         = entity.GeoPoint{Lat: 37.6163, Lng: -122.3863}
)

func TestEstimate_StandardVsPremium(t *testing.T) {
	est := NewFareEstimator(&config.Config{Fare: &config.FareConfig{
		BaseFare: 100, PerKm: 50, MinimumFare: 200, PremiumMultiplier: 2,
	}})

	standard := est.Estimate(unionSquare, sfo, "")
	premium := est.Estimate(unionSquare, sfo, entity.VehicleTypePremium)

	// ~19 km great circle, stretched by the detour factor
	assert.InDelta(t, 24.9, standard.DistanceKm, 0.5)
	assert.Equal(t, entity.VehicleTypeStandard, standard.VehicleType)
	assert.InDelta(t, 100+standard.DistanceKm*50, standard.Price, 1)
	assert.InDelta(t, standard.Price*2, premium.Price, 1)
	assert.Positive(t, standard.DurationMin)
}

func TestEstimate_MinimumFare(t *testing.T) {
	est := NewFareEstimator(nil)

	quote := est.Estimate(unionSquare, unionSquare, entity.VehicleTypeStandard)
	assert.Zero(t, quote.DistanceKm)
	assert.InDelta(t, float64(defaultMinimumFare), quote.Price, 0)
	assert.Zero(t, quote.DurationMin)
}

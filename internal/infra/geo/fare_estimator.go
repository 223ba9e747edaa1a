// Package geo prices trips from great-circle distance.
package geo

import (
	"math"

	"ridehail/config"
	"ridehail/internal/domain/entity"
	"ridehail/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const (
	defaultBaseFare          = 150
	defaultPerKm             = 45
	defaultMinimumFare       = 250
	defaultPremiumMultiplier = 1.6

	// Road distance is longer than the great circle; 1.3 is a common urban detour factor.
	detourFactor     = 1.3
	averageSpeedKmph = 28.0
)

type fareEstimator struct {
	cfg config.FareConfig
}

// NewFareEstimator builds an estimator from the fare config section,
// filling unset values with defaults.
func NewFareEstimator(cfg *config.Config) service.FareEstimator {
	fare := config.FareConfig{}
	if cfg != nil && cfg.Fare != nil {
		fare = *cfg.Fare
	}
	if fare.BaseFare <= 0 {
		fare.BaseFare = defaultBaseFare
	}
	if fare.PerKm <= 0 {
		fare.PerKm = defaultPerKm
	}
	if fare.MinimumFare <= 0 {
		fare.MinimumFare = defaultMinimumFare
	}
	if fare.PremiumMultiplier <= 0 {
		fare.PremiumMultiplier = defaultPremiumMultiplier
	}

	return &fareEstimator{cfg: fare}
}

func (e *fareEstimator) Estimate(from, to entity.GeoPoint, vehicleType entity.VehicleType) service.FareEstimate {
	if vehicleType == "" {
		vehicleType = entity.VehicleTypeStandard
	}

	meters := geo.DistanceHaversine(orb.Point{from.Lng, from.Lat}, orb.Point{to.Lng, to.Lat})
	km := round1(meters / 1000 * detourFactor)

	price := e.cfg.BaseFare + km*e.cfg.PerKm
	if vehicleType == entity.VehicleTypePremium {
		price *= e.cfg.PremiumMultiplier
	}
	price = math.Max(math.Round(price), e.cfg.MinimumFare)

	return service.FareEstimate{
		DistanceKm:  km,
		DurationMin: int(math.Ceil(km / averageSpeedKmph * 60)),
		Price:       price,
		VehicleType: vehicleType,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

package service

import "ridehail/internal/domain/entity"

// FareEstimate is a distance-based price quote.
type FareEstimate struct {
	DistanceKm  float64            `json:"distanceKm"`
	DurationMin int                `json:"durationMin"`
	Price       float64            `json:"price"`
	VehicleType entity.VehicleType `json:"vehicleType"`
}

// FareEstimator quotes a trip between two coordinates.
type FareEstimator interface {
	Estimate(from, to entity.GeoPoint, vehicleType entity.VehicleType) FareEstimate
}

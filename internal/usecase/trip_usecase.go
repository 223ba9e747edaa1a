package usecase

import (
	"context"
	"time"

	"ridehail/internal/domain/entity"
	"ridehail/internal/domain/service"
)

// TripFilter narrows a trip listing. Empty fields do not filter.
type TripFilter struct {
	Status   entity.TripStatus
	UserID   string
	DriverID string
	City     string
}

// CreateTripInput describes a new trip. Distance and price are estimated
// from the coordinates when omitted.
type CreateTripInput struct {
	DriverID      string
	From          string
	To            string
	FromLocation  *entity.GeoPoint
	ToLocation    *entity.GeoPoint
	DistanceKm    *float64
	Price         *float64
	Status        entity.TripStatus
	City          string
	VehicleType   entity.VehicleType
	PaymentMethod entity.PaymentMethod
	ScheduledAt   *time.Time
}

// EstimateInput asks for a fare quote between two points.
type EstimateInput struct {
	From        entity.GeoPoint
	To          entity.GeoPoint
	VehicleType entity.VehicleType
}

// TripUsecase manages trips.
type TripUsecase interface {
	// List is public; authenticated non-admin callers only see their own trips.
	List(ctx context.Context, actor *Actor, filter TripFilter) ([]*entity.Trip, error)
	Get(ctx context.Context, id string) (*entity.Trip, error)
	Create(ctx context.Context, actor *Actor, input *CreateTripInput) (*entity.Trip, error)
	Update(ctx context.Context, actor *Actor, id string, update *entity.TripUpdate) (*entity.Trip, error)
	Delete(ctx context.Context, actor *Actor, id string) error
	Estimate(ctx context.Context, input *EstimateInput) (*service.FareEstimate, error)
}

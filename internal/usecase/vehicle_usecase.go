package usecase

import (
	"context"

	"ridehail/internal/domain/entity"
)

// VehicleFilter narrows a vehicle listing.
type VehicleFilter struct {
	DriverID string
	Type     entity.VehicleType
}

// CreateVehicleInput describes a new vehicle. A driver may omit DriverID to
// register a vehicle for their own profile.
type CreateVehicleInput struct {
	DriverID string
	Brand    string
	Model    string
	Year     int
	Color    string
	Plate    string
	Type     entity.VehicleType
}

// VehicleUsecase manages vehicles.
type VehicleUsecase interface {
	List(ctx context.Context, filter VehicleFilter) ([]*entity.Vehicle, error)
	Get(ctx context.Context, id string) (*entity.Vehicle, error)
	Create(ctx context.Context, actor *Actor, input *CreateVehicleInput) (*entity.Vehicle, error)
	Update(ctx context.Context, actor *Actor, id string, update *entity.VehicleUpdate) (*entity.Vehicle, error)
}

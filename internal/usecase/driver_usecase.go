package usecase

import (
	"context"

	"ridehail/internal/domain/entity"
)

// DriverFilter narrows a driver listing.
type DriverFilter struct {
	Available *bool
	City      string
}

// CreateDriverInput describes a driver profile created by an admin.
type CreateDriverInput struct {
	UserID      string
	Name        string
	Phone       string
	VehicleID   string
	IsAvailable bool
	City        string
}

// DriverUsecase manages driver profiles.
type DriverUsecase interface {
	List(ctx context.Context, filter DriverFilter) ([]*entity.Driver, error)
	Get(ctx context.Context, id string) (*entity.Driver, error)
	Create(ctx context.Context, actor *Actor, input *CreateDriverInput) (*entity.Driver, error)
	Update(ctx context.Context, actor *Actor, id string, update *entity.DriverUpdate) (*entity.Driver, error)
}

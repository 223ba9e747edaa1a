package impl

import (
	"context"
	"log/slog"

	"ridehail/internal/domain/entity"
	domainerrors "ridehail/internal/domain/errors"
	"ridehail/internal/domain/repository"
	"ridehail/internal/errors"
	"ridehail/internal/usecase"

	"go.uber.org/fx"
)

// vehicleService implements the VehicleUsecase interface.
type vehicleService struct {
	base
}

// VehicleServiceParams holds dependencies for VehicleService, injected by Fx.
type VehicleServiceParams struct {
	fx.In

	Store  repository.Store
	Logger *slog.Logger
}

// NewVehicleService is the constructor for vehicleService.
func NewVehicleService(params VehicleServiceParams) usecase.VehicleUsecase {
	return &vehicleService{base: newBase(params.Store, params.Logger)}
}

func (srv *vehicleService) List(ctx context.Context, filter usecase.VehicleFilter) ([]*entity.Vehicle, error) {
	var f repository.Filter
	if filter.DriverID != "" {
		f = f.And(entity.FieldDriverID, filter.DriverID)
	}
	if filter.Type != "" {
		f = f.And(entity.FieldType, filter.Type)
	}

	vehicles, err := srv.store.Vehicles().Find(ctx, f)

	return vehicles, storeError(err, domainerrors.ErrVehicleNotFound, "failed to list vehicles")
}

func (srv *vehicleService) Get(ctx context.Context, id string) (*entity.Vehicle, error) {
	vehicle, err := srv.store.Vehicles().FindByID(ctx, id)

	return vehicle, storeError(err, domainerrors.ErrVehicleNotFound, "failed to find vehicle")
}

// Create registers a vehicle and links it to the driver profile. A driver
// can only register vehicles for their own profile.
func (srv *vehicleService) Create(ctx context.Context, actor *usecase.Actor, input *usecase.CreateVehicleInput) (*entity.Vehicle, error) {
	driver, err := srv.targetDriver(ctx, actor, input.DriverID)
	if err != nil {
		return nil, err
	}

	vehicleType := input.Type
	if vehicleType == "" {
		vehicleType = entity.VehicleTypeStandard
	}
	if !vehicleType.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown vehicle type")
	}

	id, now := srv.stamp()
	vehicle := &entity.Vehicle{
		ID:        id,
		DriverID:  driver.ID,
		Brand:     input.Brand,
		Model:     input.Model,
		Year:      input.Year,
		Color:     input.Color,
		Plate:     input.Plate,
		Type:      vehicleType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := srv.store.Vehicles().Create(ctx, vehicle); err != nil {
		return nil, storeError(err, domainerrors.ErrVehicleNotFound, "failed to create vehicle")
	}

	if _, err := srv.store.Drivers().Update(ctx, driver.ID, entity.DriverUpdate{VehicleID: &vehicle.ID}); err != nil {
		srv.log(ctx).Warn("Failed to link vehicle to driver",
			slog.String("vehicleID", vehicle.ID),
			slog.String("driverID", driver.ID),
			slog.Any("error", err),
		)
	}

	srv.log(ctx).Info("Vehicle created", slog.String("vehicleID", vehicle.ID), slog.String("driverID", driver.ID))

	return vehicle, nil
}

func (srv *vehicleService) Update(ctx context.Context, actor *usecase.Actor, id string, update *entity.VehicleUpdate) (*entity.Vehicle, error) {
	current, err := srv.store.Vehicles().FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, domainerrors.ErrVehicleNotFound, "failed to find vehicle")
	}
	if _, err := srv.targetDriver(ctx, actor, current.DriverID); err != nil {
		return nil, err
	}

	patch := *update
	if patch.Type != nil && !patch.Type.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown vehicle type")
	}
	if patch.DriverID != nil && !actor.IsAdmin() {
		return nil, domainerrors.ErrForbidden.WithDetails("only admins can reassign vehicles")
	}

	vehicle, err := srv.store.Vehicles().Update(ctx, id, patch)

	return vehicle, storeError(err, domainerrors.ErrVehicleNotFound, "failed to update vehicle")
}

// targetDriver resolves the driver a vehicle operation applies to and
// checks the actor may act for them. Admins may act for any driver; a
// driver only for their own profile, which is used when driverID is empty.
func (srv *vehicleService) targetDriver(ctx context.Context, actor *usecase.Actor, driverID string) (*entity.Driver, error) {
	if actor == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	if actor.IsAdmin() {
		if driverID == "" {
			return nil, domainerrors.ErrValidationFailed.WithDetails("driverId is required")
		}
		driver, err := srv.store.Drivers().FindByID(ctx, driverID)

		return driver, storeError(err, domainerrors.ErrDriverNotFound, "failed to find driver")
	}

	if actor.Role != entity.RoleDriver {
		return nil, domainerrors.ErrForbidden
	}

	own, err := repository.FindOne(ctx, srv.store.Drivers(), repository.Where(entity.FieldUserID, actor.UserID))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domainerrors.ErrDriverNotFound.WithDetails("no driver profile for this account")
	}
	if err != nil {
		return nil, storeError(err, domainerrors.ErrDriverNotFound, "failed to find driver profile")
	}
	if driverID != "" && driverID != own.ID {
		return nil, domainerrors.ErrForbidden
	}

	return own, nil
}

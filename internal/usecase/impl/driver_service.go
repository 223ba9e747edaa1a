package impl

import (
	"context"
	"log/slog"

	"ridehail/internal/domain/entity"
	domainerrors "ridehail/internal/domain/errors"
	"ridehail/internal/domain/repository"
	"ridehail/internal/usecase"

	"go.uber.org/fx"
)

// driverService implements the DriverUsecase interface.
type driverService struct {
	base
}

// DriverServiceParams holds dependencies for DriverService, injected by Fx.
type DriverServiceParams struct {
	fx.In

	Store  repository.Store
	Logger *slog.Logger
}

// NewDriverService is the constructor for driverService.
func NewDriverService(params DriverServiceParams) usecase.DriverUsecase {
	return &driverService{base: newBase(params.Store, params.Logger)}
}

func (srv *driverService) List(ctx context.Context, filter usecase.DriverFilter) ([]*entity.Driver, error) {
	var f repository.Filter
	if filter.Available != nil {
		f = f.And(entity.FieldIsAvailable, *filter.Available)
	}
	if filter.City != "" {
		f = f.And(entity.FieldCity, filter.City)
	}

	drivers, err := srv.store.Drivers().Find(ctx, f)

	return drivers, storeError(err, domainerrors.ErrDriverNotFound, "failed to list drivers")
}

func (srv *driverService) Get(ctx context.Context, id string) (*entity.Driver, error) {
	driver, err := srv.store.Drivers().FindByID(ctx, id)

	return driver, storeError(err, domainerrors.ErrDriverNotFound, "failed to find driver")
}

// Create adds a driver profile. Only admins create profiles directly; drivers
// get theirs at registration.
func (srv *driverService) Create(ctx context.Context, actor *usecase.Actor, input *usecase.CreateDriverInput) (*entity.Driver, error) {
	if !actor.IsAdmin() {
		return nil, domainerrors.ErrForbidden
	}

	if input.UserID != "" {
		if _, err := srv.store.Users().FindByID(ctx, input.UserID); err != nil {
			return nil, storeError(err, domainerrors.ErrUserNotFound, "failed to find driver user")
		}
	}

	id, now := srv.stamp()
	driver := &entity.Driver{
		ID:          id,
		UserID:      input.UserID,
		Name:        input.Name,
		Phone:       input.Phone,
		VehicleID:   input.VehicleID,
		IsAvailable: input.IsAvailable,
		City:        input.City,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := srv.store.Drivers().Create(ctx, driver); err != nil {
		return nil, storeError(err, domainerrors.ErrDriverNotFound, "failed to create driver")
	}

	srv.log(ctx).Info("Driver created", slog.String("driverID", driver.ID), slog.String("by", actor.UserID))

	return driver, nil
}

// Update lets an admin or the driver themself change the profile. Rating
// and trip count are derived and only admins may set them.
func (srv *driverService) Update(ctx context.Context, actor *usecase.Actor, id string, update *entity.DriverUpdate) (*entity.Driver, error) {
	if actor == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	current, err := srv.store.Drivers().FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, domainerrors.ErrDriverNotFound, "failed to find driver")
	}
	if !actor.CanAccess(current.UserID) {
		return nil, domainerrors.ErrForbidden
	}

	patch := *update
	if !actor.IsAdmin() && (patch.Rating != nil || patch.TotalTrips != nil) {
		return nil, domainerrors.ErrForbidden.WithDetails("rating and totalTrips are maintained by the system")
	}
	if patch.Rating != nil && (*patch.Rating < entity.MinScore || *patch.Rating > entity.MaxScore) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("rating must be between 0 and 5")
	}

	driver, err := srv.store.Drivers().Update(ctx, id, patch)
	if err != nil {
		return nil, storeError(err, domainerrors.ErrDriverNotFound, "failed to update driver")
	}

	return driver, nil
}

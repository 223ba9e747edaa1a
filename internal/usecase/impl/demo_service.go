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

type demoService struct {
	base
}

// DemoServiceParams holds dependencies for DemoService, injected by Fx.
type DemoServiceParams struct {
	fx.In

	Store  repository.Store
	Logger *slog.Logger
}

// NewDemoService is the constructor for demoService.
func NewDemoService(params DemoServiceParams) usecase.DemoUsecase {
	return &demoService{base: newBase(params.Store, params.Logger)}
}

func (srv *demoService) Snapshot(ctx context.Context) (*usecase.DemoData, error) {
	out := &usecase.DemoData{
		Backend: srv.store.Backend(),
		Counts:  make(map[entity.Kind]int64, len(entity.Kinds())),
	}

	var err error
	if out.Users, err = srv.store.Users().Find(ctx, nil); err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to list users")
	}
	if out.Drivers, err = srv.store.Drivers().Find(ctx, nil); err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to list drivers")
	}
	if out.Vehicles, err = srv.store.Vehicles().Find(ctx, nil); err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to list vehicles")
	}
	if out.Trips, err = srv.store.Trips().Find(ctx, nil); err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to list trips")
	}

	out.Counts[entity.KindUser] = int64(len(out.Users))
	out.Counts[entity.KindDriver] = int64(len(out.Drivers))
	out.Counts[entity.KindVehicle] = int64(len(out.Vehicles))
	out.Counts[entity.KindTrip] = int64(len(out.Trips))
	if out.Counts[entity.KindRating], err = srv.store.Ratings().Count(ctx, nil); err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to count ratings")
	}
	if out.Counts[entity.KindPayment], err = srv.store.Payments().Count(ctx, nil); err != nil {
		return nil, storeError(err, domainerrors.ErrNotFound, "failed to count payments")
	}

	return out, nil
}

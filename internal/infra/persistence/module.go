package persistence

import (
	"context"
	"log/slog"

	"ridehail/config"
	"ridehail/internal/domain/lifecycle"
	"ridehail/internal/domain/repository"
	"ridehail/internal/domain/service"
	"ridehail/internal/errors"
	"ridehail/internal/infra/persistence/firestore"
	"ridehail/internal/infra/persistence/memory"
	"ridehail/internal/infra/persistence/postgres"
	"ridehail/internal/infra/persistence/seed"

	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
	Hasher service.PasswordHasher
}

// Result exposes the active store and the selection that produced it.
type Result struct {
	fx.Out

	Store    repository.Store
	Selector *Selector
}

// New selects the backend, seeds the in-process store when it is the one
// serving, and closes the active store on shutdown.
func New(params Params) (Result, error) {
	cfg := params.Config
	local := memory.NewStore(nil)

	selector := NewSelector(cfg.Storage.Backend, local, Openers(cfg, params.Logger), params.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Storage.HealthCheckTimeout)
	defer cancel()
	store := selector.Select(ctx)

	if store == repository.Store(local) && cfg.Seed != nil && cfg.Seed.Enabled {
		ds, err := seed.Generate(seed.OptionsFromConfig(cfg.Seed), params.Hasher)
		if err != nil {
			return Result{}, errors.Wrap(err, "failed to generate seed data")
		}
		seedCtx, cancelSeed := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer cancelSeed()
		if _, err := local.Seed(seedCtx, ds); err != nil {
			return Result{}, errors.Wrap(err, "failed to seed memory store")
		}
		params.Logger.Info("Memory store seeded", slog.Any("records", local.Stats()))
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return store.Close()
		},
	})

	return Result{Store: store, Selector: selector}, nil
}

// Openers maps each remote backend name to its connector.
func Openers(cfg *config.Config, logger *slog.Logger) map[string]Opener {
	return map[string]Opener{
		config.BackendFirestore: func(ctx context.Context) (RemoteStore, error) {
			return firestore.Open(ctx, cfg.Storage.Firestore)
		},
		config.BackendPostgres: func(_ context.Context) (RemoteStore, error) {
			return postgres.Open(cfg, logger)
		},
	}
}

// Package postgres is the relational record store, built on GORM and PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"ridehail/config"
	"ridehail/internal/domain/entity"
	"ridehail/internal/domain/repository"
	"ridehail/internal/errors"
	"ridehail/internal/infra/persistence/model"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"gorm.io/gorm"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
)

// Store is the Postgres implementation of repository.Store.
type Store struct {
	db            *gorm.DB
	now           func() time.Time
	sqlDB         *sql.DB
	cancelMonitor context.CancelFunc

	users    *table[entity.User, *entity.User, model.UserModel]
	trips    *table[entity.Trip, *entity.Trip, model.TripModel]
	drivers  *table[entity.Driver, *entity.Driver, model.DriverModel]
	ratings  *table[entity.Rating, *entity.Rating, model.RatingModel]
	payments *table[entity.Payment, *entity.Payment, model.PaymentModel]
	vehicles *table[entity.Vehicle, *entity.Vehicle, model.VehicleModel]
}

// Open connects to the master (and any replicas) described by
// storage.postgres and starts the pool monitor.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if cfg.Storage.Postgres == nil {
		return nil, errors.New("storage.postgres must be configured")
	}

	db, err := pgLib.New(cfg.Storage.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	db.Config.TranslateError = true
	db = db.Session(&gorm.Session{
		// Writes that need atomicity open their own transaction.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(logger, cfg),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	store := NewStore(db, time.Now)
	store.sqlDB = sqlDB

	monitorCtx, cancel := context.WithCancel(context.Background())
	store.cancelMonitor = cancel
	go monitorDBPool(monitorCtx, logger, sqlDB, dbPoolMonitorInterval)

	return store, nil
}

// NewStore wraps an existing GORM handle.
func NewStore(db *gorm.DB, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}

	return &Store{
		db:       db,
		now:      now,
		users:    newTable[entity.User, *entity.User](db, entity.KindUser, now, fromUserDomain, toUserDomain),
		trips:    newTable[entity.Trip, *entity.Trip](db, entity.KindTrip, now, fromTripDomain, toTripDomain),
		drivers:  newTable[entity.Driver, *entity.Driver](db, entity.KindDriver, now, fromDriverDomain, toDriverDomain),
		ratings:  newTable[entity.Rating, *entity.Rating](db, entity.KindRating, now, fromRatingDomain, toRatingDomain),
		payments: newTable[entity.Payment, *entity.Payment](db, entity.KindPayment, now, fromPaymentDomain, toPaymentDomain),
		vehicles: newTable[entity.Vehicle, *entity.Vehicle](db, entity.KindVehicle, now, fromVehicleDomain, toVehicleDomain),
	}
}

func (s *Store) Users() repository.UserRepository       { return s.users }
func (s *Store) Trips() repository.TripRepository       { return s.trips }
func (s *Store) Drivers() repository.DriverRepository   { return s.drivers }
func (s *Store) Ratings() repository.RatingRepository   { return s.ratings }
func (s *Store) Payments() repository.PaymentRepository { return s.payments }
func (s *Store) Vehicles() repository.VehicleRepository { return s.vehicles }

func (s *Store) Backend() string { return config.BackendPostgres }

// Init creates or migrates the record tables.
func (s *Store) Init(ctx context.Context) error {
	return errors.Wrap(s.db.WithContext(ctx).AutoMigrate(model.All()...), "failed to migrate record tables")
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB := s.sqlDB
	if sqlDB == nil {
		var err error
		if sqlDB, err = s.db.DB(); err != nil {
			return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
		}
	}

	return errors.Wrap(sqlDB.PingContext(ctx), "failed to ping PostgreSQL")
}

func (s *Store) Close() error {
	if s.cancelMonitor != nil {
		s.cancelMonitor()
	}
	if s.sqlDB == nil {
		return nil
	}

	return errors.WithStack(s.sqlDB.Close())
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitDelta := cur.WaitCount - prev.WaitCount
			waitDurationDelta := cur.WaitDuration - prev.WaitDuration

			if waitDelta > 0 {
				attrs := []slog.Attr{
					slog.Int64("waitCountDelta", waitDelta),
					slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
					slog.Int("openConns", cur.OpenConnections),
					slog.Int("inUseConns", cur.InUse),
					slog.Int("idleConns", cur.Idle),
				}
				if waitDurationDelta >= dbPoolWarnDurationThreshold {
					logger.LogAttrs(ctx, slog.LevelWarn, "Postgres pool wait detected", attrs...)
				} else {
					logger.LogAttrs(ctx, slog.LevelDebug, "Postgres pool wait observed", attrs...)
				}
			}

			prev = cur
		}
	}
}

package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"ridehail/config"
	"ridehail/internal/domain/entity"
	"ridehail/internal/domain/repository"
	"ridehail/internal/infra/persistence/seed"
	"ridehail/internal/errors"
)

// Store is the in-process implementation of repository.Store.
type Store struct {
	users    *collection[entity.User, *entity.User]
	trips    *collection[entity.Trip, *entity.Trip]
	drivers  *collection[entity.Driver, *entity.Driver]
	ratings  *collection[entity.Rating, *entity.Rating]
	payments *collection[entity.Payment, *entity.Payment]
	vehicles *collection[entity.Vehicle, *entity.Vehicle]

	seedOnce sync.Once
	seeded   atomic.Bool
}

// NewStore creates an empty store. now stamps UpdatedAt on updates; nil means time.Now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}

	return &Store{
		users:    newCollection[entity.User, *entity.User](entity.KindUser, now),
		trips:    newCollection[entity.Trip, *entity.Trip](entity.KindTrip, now),
		drivers:  newCollection[entity.Driver, *entity.Driver](entity.KindDriver, now),
		ratings:  newCollection[entity.Rating, *entity.Rating](entity.KindRating, now),
		payments: newCollection[entity.Payment, *entity.Payment](entity.KindPayment, now),
		vehicles: newCollection[entity.Vehicle, *entity.Vehicle](entity.KindVehicle, now),
	}
}

func (s *Store) Users() repository.UserRepository       { return s.users }
func (s *Store) Trips() repository.TripRepository       { return s.trips }
func (s *Store) Drivers() repository.DriverRepository   { return s.drivers }
func (s *Store) Ratings() repository.RatingRepository   { return s.ratings }
func (s *Store) Payments() repository.PaymentRepository { return s.payments }
func (s *Store) Vehicles() repository.VehicleRepository { return s.vehicles }

func (s *Store) Backend() string { return config.BackendMemory }

func (s *Store) Ping(ctx context.Context) error {
	return errors.WithStack(ctx.Err())
}

func (s *Store) Close() error { return nil }

// Seed loads the dataset the first time it is called. Later calls are no-ops
// and report false.
func (s *Store) Seed(ctx context.Context, ds *seed.Dataset) (bool, error) {
	if ds == nil {
		return false, nil
	}

	var (
		loaded bool
		err    error
	)
	s.seedOnce.Do(func() {
		err = s.load(ctx, ds)
		loaded = err == nil
		s.seeded.Store(loaded)
	})

	return loaded, err
}

// Seeded reports whether a dataset has been loaded.
func (s *Store) Seeded() bool {
	return s.seeded.Load()
}

func (s *Store) load(ctx context.Context, ds *seed.Dataset) error {
	for _, u := range ds.Users {
		if err := s.users.Create(ctx, u); err != nil {
			return errors.Wrap(err, "seed users")
		}
	}
	for _, v := range ds.Vehicles {
		if err := s.vehicles.Create(ctx, v); err != nil {
			return errors.Wrap(err, "seed vehicles")
		}
	}
	for _, d := range ds.Drivers {
		if err := s.drivers.Create(ctx, d); err != nil {
			return errors.Wrap(err, "seed drivers")
		}
	}
	for _, t := range ds.Trips {
		if err := s.trips.Create(ctx, t); err != nil {
			return errors.Wrap(err, "seed trips")
		}
	}
	for _, r := range ds.Ratings {
		if err := s.ratings.Create(ctx, r); err != nil {
			return errors.Wrap(err, "seed ratings")
		}
	}
	for _, p := range ds.Payments {
		if err := s.payments.Create(ctx, p); err != nil {
			return errors.Wrap(err, "seed payments")
		}
	}

	return nil
}

// Stats returns the number of records per kind.
func (s *Store) Stats() map[entity.Kind]int {
	return map[entity.Kind]int{
		entity.KindUser:    s.users.len(),
		entity.KindTrip:    s.trips.len(),
		entity.KindDriver:  s.drivers.len(),
		entity.KindRating:  s.ratings.len(),
		entity.KindPayment: s.payments.len(),
		entity.KindVehicle: s.vehicles.len(),
	}
}

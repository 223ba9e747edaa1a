package repository

import (
	"context"
	"slices"

	"ridehail/internal/domain/entity"
	"ridehail/internal/errors"
)

// TransactionManager lets the use case layer group writes without depending
// on a specific backend.
type TransactionManager interface {
	// Execute runs fn with a store bound to one unit of work. If fn returns an
	// error the writes made through txStore are undone, otherwise they are kept.
	Execute(ctx context.Context, fn func(txStore Store) error) error
}

// Transactional returns the store's own TransactionManager when it has one,
// otherwise a compensating manager over it.
func Transactional(store Store) TransactionManager {
	if tm, ok := store.(TransactionManager); ok {
		return tm
	}

	return NewCompensatingTransactionManager(store)
}

// compensatingManager records an inverse operation for every successful write
// and replays them newest first when the unit of work fails. Concurrent
// writers to the same records are not isolated.
type compensatingManager struct {
	store Store
}

// NewCompensatingTransactionManager is for backends without multi-record transactions.
func NewCompensatingTransactionManager(store Store) TransactionManager {
	return &compensatingManager{store: store}
}

func (m *compensatingManager) Execute(ctx context.Context, fn func(txStore Store) error) error {
	j := &journal{}
	tx := &journaledStore{
		Store:    m.store,
		users:    journaled[entity.User, *entity.User](m.store.Users(), j),
		trips:    journaled[entity.Trip, *entity.Trip](m.store.Trips(), j),
		drivers:  journaled[entity.Driver, *entity.Driver](m.store.Drivers(), j),
		ratings:  journaled[entity.Rating, *entity.Rating](m.store.Ratings(), j),
		payments: journaled[entity.Payment, *entity.Payment](m.store.Payments(), j),
		vehicles: journaled[entity.Vehicle, *entity.Vehicle](m.store.Vehicles(), j),
	}

	err := fn(tx)
	if err == nil {
		return nil
	}

	// Undo even when the request was cancelled.
	if undoErr := j.rollback(context.WithoutCancel(ctx)); undoErr != nil {
		return errors.Join(err, errors.Wrap(undoErr, "failed to undo partial writes"))
	}

	return err
}

type journal struct {
	undo []func(ctx context.Context) error
}

func (j *journal) record(fn func(ctx context.Context) error) {
	j.undo = append(j.undo, fn)
}

func (j *journal) rollback(ctx context.Context) error {
	var errs []error
	for _, undo := range slices.Backward(j.undo) {
		if err := undo(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

type journaledStore struct {
	Store

	users    UserRepository
	trips    TripRepository
	drivers  DriverRepository
	ratings  RatingRepository
	payments PaymentRepository
	vehicles VehicleRepository
}

func (s *journaledStore) Users() UserRepository       { return s.users }
func (s *journaledStore) Trips() TripRepository       { return s.trips }
func (s *journaledStore) Drivers() DriverRepository   { return s.drivers }
func (s *journaledStore) Ratings() RatingRepository   { return s.ratings }
func (s *journaledStore) Payments() PaymentRepository { return s.payments }
func (s *journaledStore) Vehicles() VehicleRepository { return s.vehicles }

type journaledRepo[T any, P entity.Record[T]] struct {
	Repository[T]

	journal *journal
}

func journaled[T any, P entity.Record[T]](repo Repository[T], j *journal) Repository[T] {
	return &journaledRepo[T, P]{Repository: repo, journal: j}
}

func (r *journaledRepo[T, P]) Create(ctx context.Context, record *T) error {
	if err := r.Repository.Create(ctx, record); err != nil {
		return err
	}

	id := P(record).RecordID()
	r.journal.record(func(ctx context.Context) error {
		return r.Repository.Delete(ctx, id)
	})

	return nil
}

func (r *journaledRepo[T, P]) Update(ctx context.Context, id string, patch entity.Patch[T]) (*T, error) {
	before, err := r.Repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := r.Repository.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	r.journal.record(func(ctx context.Context) error {
		_, err := r.Repository.Update(ctx, id, restore[T]{before: before})

		return err
	})

	return updated, nil
}

func (r *journaledRepo[T, P]) Delete(ctx context.Context, id string) error {
	before, err := r.Repository.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := r.Repository.Delete(ctx, id); err != nil {
		return err
	}

	r.journal.record(func(ctx context.Context) error {
		return r.Repository.Create(ctx, before)
	})

	return nil
}

// restore overwrites the stored record with an earlier copy.
type restore[T any] struct {
	before *T
}

func (p restore[T]) Apply(target *T) {
	*target = *p.before
}

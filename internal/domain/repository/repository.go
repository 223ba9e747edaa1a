// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"fmt"

	"ridehail/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no record matches the requested id.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when a record with the same (kind, id) already exists.
	ErrDuplicateKey = errors.New("duplicate record key")

	// ErrUnknownField is returned when a filter or aggregate names a field the kind does not index.
	ErrUnknownField = errors.New("unknown record field")
)

// Condition is a single equality predicate on a filterable field.
type Condition struct {
	Field string
	Value any
}

// Filter is a conjunction of equality conditions. The zero value matches everything.
type Filter []Condition

// Where starts a filter with one condition.
func Where(field string, value any) Filter {
	return Filter{}.And(field, value)
}

// And appends a condition. Named string types are stored as plain strings so
// every backend compares like with like.
func (f Filter) And(field string, value any) Filter {
	if s, ok := value.(fmt.Stringer); ok {
		value = s.String()
	}

	return append(f, Condition{Field: field, Value: value})
}

// Repository is the record store contract for a single entity kind.
type Repository[T any] interface {
	// Create stores a new record. The caller assigns id and timestamps.
	Create(ctx context.Context, record *T) error

	// FindByID returns ErrNotFound when the id is absent.
	FindByID(ctx context.Context, id string) (*T, error)

	// Find returns every record matching filter in insertion order.
	Find(ctx context.Context, filter Filter) ([]*T, error)

	// Update merges patch into the stored record and refreshes UpdatedAt.
	// Returns ErrNotFound without side effects when the id is absent.
	Update(ctx context.Context, id string, patch entity.Patch[T]) (*T, error)

	// Delete hard-removes the record. Returns ErrNotFound when absent.
	Delete(ctx context.Context, id string) error

	// Count returns the number of records matching filter.
	Count(ctx context.Context, filter Filter) (int64, error)

	// Sum adds up a numeric field over the records matching filter.
	Sum(ctx context.Context, field string, filter Filter) (float64, error)
}

type (
	UserRepository    = Repository[entity.User]
	TripRepository    = Repository[entity.Trip]
	DriverRepository  = Repository[entity.Driver]
	RatingRepository  = Repository[entity.Rating]
	PaymentRepository = Repository[entity.Payment]
	VehicleRepository = Repository[entity.Vehicle]
)

// Store groups the per-kind repositories of one backend.
type Store interface {
	Users() UserRepository
	Trips() TripRepository
	Drivers() DriverRepository
	Ratings() RatingRepository
	Payments() PaymentRepository
	Vehicles() VehicleRepository

	// Backend names the implementation, e.g. "memory" or "firestore".
	Backend() string

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases connections held by the backend.
	Close() error
}

// FindOne returns the first record matching filter, or ErrNotFound.
func FindOne[T any](ctx context.Context, repo Repository[T], filter Filter) (*T, error) {
	records, err := repo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}

	return records[0], nil
}

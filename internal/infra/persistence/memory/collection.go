// Package memory is the in-process record store. Records live in per-kind
// collections indexed by id, iterated in insertion order.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"ridehail/internal/domain/entity"
	"ridehail/internal/domain/repository"
	"ridehail/internal/errors"
)

// collection holds every record of one kind. All reads return copies, and
// writes are serialized by mu so a merge never interleaves with another.
type collection[T any, P entity.Record[T]] struct {
	mu    sync.RWMutex
	kind  entity.Kind
	order []string
	byID  map[string]*T
	now   func() time.Time
}

func newCollection[T any, P entity.Record[T]](kind entity.Kind, now func() time.Time) *collection[T, P] {
	return &collection[T, P]{
		kind: kind,
		byID: make(map[string]*T),
		now:  now,
	}
}

func (c *collection[T, P]) Create(ctx context.Context, record *T) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}
	if record == nil {
		return errors.Errorf("nil %s record", c.kind)
	}

	id := P(record).RecordID()
	if id == "" {
		return errors.Errorf("%s record has no id", c.kind)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byID[id]; exists {
		return errors.Wrapf(repository.ErrDuplicateKey, "%s %s", c.kind, id)
	}

	c.byID[id] = clone(record)
	c.order = append(c.order, id)

	return nil
}

func (c *collection[T, P]) FindByID(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	stored, ok := c.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	return clone(stored), nil
}

func (c *collection[T, P]) Find(ctx context.Context, filter repository.Filter) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*T, 0)
	for _, id := range c.order {
		stored := c.byID[id]
		ok, err := matches[T, P](stored, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, clone(stored))
		}
	}

	return result, nil
}

func (c *collection[T, P]) Update(ctx context.Context, id string, patch entity.Patch[T]) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	stored, ok := c.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	// Merge into a copy and swap it in; readers holding older copies are unaffected.
	merged := clone(stored)
	if patch != nil {
		patch.Apply(merged)
	}
	P(merged).Touch(c.now())
	c.byID[id] = merged

	return clone(merged), nil
}

func (c *collection[T, P]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byID[id]; !ok {
		return repository.ErrNotFound
	}

	delete(c.byID, id)
	c.order = slices.DeleteFunc(c.order, func(existing string) bool { return existing == id })

	return nil
}

func (c *collection[T, P]) Count(ctx context.Context, filter repository.Filter) (int64, error) {
	records, err := c.Find(ctx, filter)
	if err != nil {
		return 0, err
	}

	return int64(len(records)), nil
}

func (c *collection[T, P]) Sum(ctx context.Context, field string, filter repository.Filter) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.WithStack(err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var total float64
	for _, id := range c.order {
		stored := c.byID[id]
		ok, err := matches[T, P](stored, filter)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}

		value, known := P(stored).FieldValue(field)
		if !known {
			return 0, errors.Wrapf(repository.ErrUnknownField, "%s.%s", c.kind, field)
		}
		n, numeric := toFloat(value)
		if !numeric {
			return 0, errors.Errorf("%s.%s is not numeric", c.kind, field)
		}
		total += n
	}

	return total, nil
}

// len reports the number of stored records.
func (c *collection[T, P]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.order)
}

func matches[T any, P entity.Record[T]](record *T, filter repository.Filter) (bool, error) {
	for _, cond := range filter {
		value, ok := P(record).FieldValue(cond.Field)
		if !ok {
			return false, errors.Wrapf(repository.ErrUnknownField, "%s.%s", P(record).RecordKind(), cond.Field)
		}
		if value != cond.Value {
			return false, nil
		}
	}

	return true, nil
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// clone returns a shallow copy. Pointer fields are replaced wholesale by
// patches, never mutated in place, so sharing them is safe.
func clone[T any](record *T) *T {
	c := *record

	return &c
}

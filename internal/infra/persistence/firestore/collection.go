package firestore

import (
	"context"
	"slices"
	"time"

	"ridehail/internal/domain/entity"
	"ridehail/internal/domain/repository"
	"ridehail/internal/errors"

	gfs "cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	fieldType = "type"
	fieldData = "data"

	aggregateAlias = "result"
)

// document wraps a record with its kind discriminator. Every kind shares
// one collection; the document id is "<kind>_<id>".
type document[T any] struct {
	Type      string    `firestore:"type"`
	ID        string    `firestore:"id"`
	Data      T         `firestore:"data"`
	CreatedAt time.Time `firestore:"created_at,serverTimestamp"`
}

type collection[T any, P entity.Record[T]] struct {
	client *gfs.Client
	coll   *gfs.CollectionRef
	kind   entity.Kind
	now    func() time.Time
}

func newCollection[T any, P entity.Record[T]](client *gfs.Client, name string, kind entity.Kind, now func() time.Time) *collection[T, P] {
	return &collection[T, P]{
		client: client,
		coll:   client.Collection(name),
		kind:   kind,
		now:    now,
	}
}

func (c *collection[T, P]) docID(id string) string {
	return c.kind.String() + "_" + id
}

func (c *collection[T, P]) Create(ctx context.Context, record *T) error {
	if record == nil {
		return errors.Errorf("nil %s record", c.kind)
	}

	id := P(record).RecordID()
	if id == "" {
		return errors.Errorf("%s record has no id", c.kind)
	}

	doc := document[T]{Type: c.kind.String(), ID: id, Data: *record}
	if _, err := c.coll.Doc(c.docID(id)).Create(ctx, doc); err != nil {
		return c.mapError(err, id)
	}

	return nil
}

func (c *collection[T, P]) FindByID(ctx context.Context, id string) (*T, error) {
	snap, err := c.coll.Doc(c.docID(id)).Get(ctx)
	if err != nil {
		return nil, c.mapError(err, id)
	}

	return decode[T](snap)
}

func (c *collection[T, P]) Find(ctx context.Context, filter repository.Filter) ([]*T, error) {
	query, err := c.query(filter)
	if err != nil {
		return nil, err
	}

	type entry struct {
		record  *T
		created time.Time
	}
	var entries []entry

	iter := query.Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "query %s records", c.kind)
		}

		var doc document[T]
		if err := snap.DataTo(&doc); err != nil {
			return nil, errors.Wrapf(err, "decode %s", snap.Ref.ID)
		}
		entries = append(entries, entry{record: &doc.Data, created: doc.CreatedAt})
	}

	// Ordering by created_at in the query would need a composite index per
	// filter combination, so insertion order is restored here.
	slices.SortStableFunc(entries, func(a, b entry) int {
		return a.created.Compare(b.created)
	})

	result := make([]*T, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.record)
	}

	return result, nil
}

func (c *collection[T, P]) Update(ctx context.Context, id string, patch entity.Patch[T]) (*T, error) {
	ref := c.coll.Doc(c.docID(id))

	var updated *T
	err := c.client.RunTransaction(ctx, func(ctx context.Context, tx *gfs.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return c.mapError(err, id)
		}

		var doc document[T]
		if err := snap.DataTo(&doc); err != nil {
			return errors.Wrapf(err, "decode %s", ref.ID)
		}

		if patch != nil {
			patch.Apply(&doc.Data)
		}
		P(&doc.Data).Touch(c.now())
		updated = &doc.Data

		return tx.Set(ref, doc)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}

		return nil, errors.Wrapf(err, "update %s %s", c.kind, id)
	}

	return updated, nil
}

func (c *collection[T, P]) Delete(ctx context.Context, id string) error {
	if _, err := c.coll.Doc(c.docID(id)).Delete(ctx, gfs.Exists); err != nil {
		return c.mapError(err, id)
	}

	return nil
}

func (c *collection[T, P]) Count(ctx context.Context, filter repository.Filter) (int64, error) {
	query, err := c.query(filter)
	if err != nil {
		return 0, err
	}

	res, err := query.NewAggregationQuery().WithCount(aggregateAlias).Get(ctx)
	if err != nil {
		return 0, errors.Wrapf(err, "count %s records", c.kind)
	}

	value, ok := res[aggregateAlias].(*firestorepb.Value)
	if !ok {
		return 0, errors.Errorf("count %s: unexpected aggregate result", c.kind)
	}

	return value.GetIntegerValue(), nil
}

func (c *collection[T, P]) Sum(ctx context.Context, field string, filter repository.Filter) (float64, error) {
	if err := c.checkField(field); err != nil {
		return 0, err
	}
	query, err := c.query(filter)
	if err != nil {
		return 0, err
	}

	res, err := query.NewAggregationQuery().WithSum(fieldData+"."+field, aggregateAlias).Get(ctx)
	if err != nil {
		return 0, errors.Wrapf(err, "sum %s.%s", c.kind, field)
	}

	value, ok := res[aggregateAlias].(*firestorepb.Value)
	if !ok {
		return 0, errors.Errorf("sum %s.%s: unexpected aggregate result", c.kind, field)
	}

	// Firestore returns an integer sum when every summed value is an integer.
	if _, isInt := value.GetValueType().(*firestorepb.Value_IntegerValue); isInt {
		return float64(value.GetIntegerValue()), nil
	}

	return value.GetDoubleValue(), nil
}

func (c *collection[T, P]) query(filter repository.Filter) (gfs.Query, error) {
	query := c.coll.Where(fieldType, "==", c.kind.String())
	for _, cond := range filter {
		if err := c.checkField(cond.Field); err != nil {
			return gfs.Query{}, err
		}
		query = query.Where(fieldData+"."+cond.Field, "==", cond.Value)
	}

	return query, nil
}

func (c *collection[T, P]) checkField(field string) error {
	var zero T
	if _, ok := P(&zero).FieldValue(field); !ok {
		return errors.Wrapf(repository.ErrUnknownField, "%s.%s", c.kind, field)
	}

	return nil
}

func (c *collection[T, P]) mapError(err error, id string) error {
	switch status.Code(err) {
	case codes.NotFound:
		return repository.ErrNotFound
	case codes.AlreadyExists:
		return errors.Wrapf(repository.ErrDuplicateKey, "%s %s", c.kind, id)
	default:
		return errors.Wrapf(err, "%s %s", c.kind, id)
	}
}

func decode[T any](snap *gfs.DocumentSnapshot) (*T, error) {
	var doc document[T]
	if err := snap.DataTo(&doc); err != nil {
		return nil, errors.Wrapf(err, "decode %s", snap.Ref.ID)
	}

	return &doc.Data, nil
}

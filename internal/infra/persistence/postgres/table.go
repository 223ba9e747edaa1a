package postgres

import (
	"context"
	"time"

	"ridehail/internal/domain/entity"
	"ridehail/internal/domain/repository"
	"ridehail/internal/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// table implements repository.Repository[T] over the GORM model M.
type table[T any, P entity.Record[T], M any] struct {
	db       *gorm.DB
	kind     entity.Kind
	now      func() time.Time
	toModel  func(*T) *M
	toDomain func(*M) *T
}

func newTable[T any, P entity.Record[T], M any](db *gorm.DB, kind entity.Kind, now func() time.Time, toModel func(*T) *M, toDomain func(*M) *T) *table[T, P, M] {
	return &table[T, P, M]{db: db, kind: kind, now: now, toModel: toModel, toDomain: toDomain}
}

func (r *table[T, P, M]) Create(ctx context.Context, record *T) error {
	if record == nil {
		return errors.Errorf("nil %s record", r.kind)
	}
	id := P(record).RecordID()
	if id == "" {
		return errors.Errorf("%s record has no id", r.kind)
	}

	err := r.db.WithContext(ctx).Create(r.toModel(record)).Error

	return mapError(err, "create %s %s", r.kind, id)
}

func (r *table[T, P, M]) FindByID(ctx context.Context, id string) (*T, error) {
	var m M
	if err := r.db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: entity.FieldID}, Value: id}).Take(&m).Error; err != nil {
		return nil, mapError(err, "find %s %s", r.kind, id)
	}

	return r.toDomain(&m), nil
}

func (r *table[T, P, M]) Find(ctx context.Context, filter repository.Filter) ([]*T, error) {
	query, err := r.where(r.db.WithContext(ctx), filter)
	if err != nil {
		return nil, err
	}

	var rows []*M
	if err := query.Order("seq").Find(&rows).Error; err != nil {
		return nil, mapError(err, "find %s records", r.kind)
	}

	result := make([]*T, 0, len(rows))
	for _, m := range rows {
		result = append(result, r.toDomain(m))
	}

	return result, nil
}

// Update locks the row for the read-merge-write so concurrent patches to
// the same record apply one after another.
func (r *table[T, P, M]) Update(ctx context.Context, id string, patch entity.Patch[T]) (*T, error) {
	var updated *T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m M
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(clause.Eq{Column: clause.Column{Name: entity.FieldID}, Value: id}).
			Take(&m).Error
		if err != nil {
			return err
		}

		record := r.toDomain(&m)
		if patch != nil {
			patch.Apply(record)
		}
		P(record).Touch(r.now())
		updated = record

		return tx.Save(r.toModel(record)).Error
	})
	if err != nil {
		return nil, mapError(err, "update %s %s", r.kind, id)
	}

	return updated, nil
}

func (r *table[T, P, M]) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: entity.FieldID}, Value: id}).
		Delete(new(M))
	if res.Error != nil {
		return mapError(res.Error, "delete %s %s", r.kind, id)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *table[T, P, M]) Count(ctx context.Context, filter repository.Filter) (int64, error) {
	query, err := r.where(r.db.WithContext(ctx).Model(new(M)), filter)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := query.Count(&n).Error; err != nil {
		return 0, mapError(err, "count %s records", r.kind)
	}

	return n, nil
}

func (r *table[T, P, M]) Sum(ctx context.Context, field string, filter repository.Filter) (float64, error) {
	if err := r.checkField(field); err != nil {
		return 0, err
	}
	query, err := r.where(r.db.WithContext(ctx).Model(new(M)), filter)
	if err != nil {
		return 0, err
	}

	var total float64
	err = query.Select("COALESCE(SUM(?), 0)", clause.Column{Name: field}).Scan(&total).Error
	if err != nil {
		return 0, mapError(err, "sum %s.%s", r.kind, field)
	}

	return total, nil
}

func (r *table[T, P, M]) where(db *gorm.DB, filter repository.Filter) (*gorm.DB, error) {
	for _, cond := range filter {
		if err := r.checkField(cond.Field); err != nil {
			return nil, err
		}
		db = db.Where(clause.Eq{Column: clause.Column{Name: cond.Field}, Value: cond.Value})
	}

	return db, nil
}

// checkField restricts column names to the kind's filterable fields, which
// also keeps caller input out of raw SQL.
func (r *table[T, P, M]) checkField(field string) error {
	var zero T
	if _, ok := P(&zero).FieldValue(field); !ok {
		return errors.Wrapf(repository.ErrUnknownField, "%s.%s", r.kind, field)
	}

	return nil
}

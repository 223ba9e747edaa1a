package postgres

import (
	"context"

	"ridehail/internal/domain/repository"
	"ridehail/internal/errors"
)

var _ repository.TransactionManager = (*Store)(nil)

// Execute runs fn against a Store bound to a single database transaction.
func (s *Store) Execute(ctx context.Context, fn func(txStore repository.Store) error) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to begin transaction")
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(NewStore(tx, s.now)); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return errors.Join(err, errors.Wrap(rbErr, "transaction rollback failed"))
		}

		return err
	}

	return errors.Wrap(tx.Commit().Error, "failed to commit transaction")
}

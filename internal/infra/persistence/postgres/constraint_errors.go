package postgres

import (
	"strings"

	"ridehail/internal/domain/repository"
	"ridehail/internal/errors"

	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes checked when GORM does not translate the error.
const (
	sqlStateUniqueViolation = "23505"
	sqlStateCheckViolation  = "23514"
)

func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, sqlStateUniqueViolation)
}

func isCheckConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), sqlStateCheckViolation)
}

// mapError converts GORM errors into the repository sentinels.
func mapError(err error, format string, args ...any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case isUniqueConstraintViolation(err):
		return errors.Wrapf(repository.ErrDuplicateKey, format, args...)
	case isCheckConstraintViolation(err):
		return errors.Wrapf(err, "check constraint violated: "+format, args...)
	default:
		return errors.Wrapf(err, format, args...)
	}
}

// internal/repository/postgres/errors.go
package postgres

import (
	"errors"

	"github.com/lib/pq"

	"moneytrack/internal/util"
)

// Postgres SQLSTATE codes the repositories translate into domain errors.
const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// translateError maps driver errors to the application's sentinel errors.
// onUnique is returned for unique-constraint violations so callers can pick
// the right duplicate error for their table.
func translateError(err error, onUnique error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case codeUniqueViolation:
		return onUnique
	case codeSerializationFailure, codeDeadlockDetected:
		return util.ErrConcurrentConflict
	}
	return err
}

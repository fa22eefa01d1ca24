// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound              = errors.New("resource not found")
	ErrInvalidInput          = errors.New("invalid input provided")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrCrossUserReference    = errors.New("referenced entity belongs to another user")
	ErrDuplicateBudgetPeriod = errors.New("budget already exists for this category and period")
	ErrConcurrentConflict    = errors.New("concurrent update conflict")
	ErrDuplicateEntry        = errors.New("duplicate entry")
	ErrAccountInUse          = errors.New("account still has transactions")
	ErrCategoryInUse         = errors.New("category still has transactions")
	ErrCategoryKindMismatch  = errors.New("category kind does not match transaction kind")
	ErrSameAccountTransfer   = errors.New("cannot transfer to the same account")
	ErrUnauthorized          = errors.New("unauthorized")
)

// IsError reports whether err wraps target. Handlers use it to map
// service errors to HTTP statuses without string matching.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}

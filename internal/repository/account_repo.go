// internal/repository/account_repo.go
package repository

import (
	"context"

	"moneytrack/internal/domain"
)

// AccountRepository defines the interface for account data operations.
type AccountRepository interface {
	// CreateAccount adds a new account using the provided DBExecutor.
	CreateAccount(ctx context.Context, q DBExecutor, account *domain.Account) error
	// GetAccountByID retrieves an account by its ID.
	GetAccountByID(ctx context.Context, q DBExecutor, id int64) (*domain.Account, error)
	// ListAccountsByUser retrieves all accounts owned by a user.
	ListAccountsByUser(ctx context.Context, q DBExecutor, userID int64) ([]domain.Account, error)
	// LockAccounts loads and row-locks the given accounts in ascending id
	// order. Must be called inside an open transaction before balances are
	// mutated; the consistent lock order prevents deadlocks between
	// concurrent balance updates.
	LockAccounts(ctx context.Context, q DBExecutor, ids []int64) (map[int64]*domain.Account, error)
	// ApplyBalanceEffect adjusts one account's cached balance by a signed
	// delta in cents.
	ApplyBalanceEffect(ctx context.Context, q DBExecutor, accountID int64, deltaCents int64) error
	// UpdateAccount persists metadata changes (name, type, bank fields).
	// It never touches the balance.
	UpdateAccount(ctx context.Context, q DBExecutor, account *domain.Account) error
	// DeleteAccount removes an account row.
	DeleteAccount(ctx context.Context, q DBExecutor, id int64) error
}

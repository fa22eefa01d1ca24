// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"moneytrack/internal/domain"
)

// TransactionRepository defines the interface for ledger entry data operations.
type TransactionRepository interface {
	// CreateTransaction adds a new transaction record.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetTransactionByID retrieves a transaction by its ID.
	GetTransactionByID(ctx context.Context, q DBExecutor, id int64) (*domain.Transaction, error)
	// UpdateTransaction persists all mutable fields of a transaction.
	UpdateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// DeleteTransaction removes a transaction row.
	DeleteTransaction(ctx context.Context, q DBExecutor, id int64) error
	// ListTransactionsByUser retrieves a paginated history for a user, newest
	// first, optionally filtered to one account.
	ListTransactionsByUser(ctx context.Context, q DBExecutor, userID int64, accountID *int64, limit, offset int) ([]domain.Transaction, int64, error)
	// CountByAccount returns how many transactions reference an account,
	// either as source or as transfer destination.
	CountByAccount(ctx context.Context, q DBExecutor, accountID int64) (int64, error)
	// CountByCategory returns how many transactions reference a category.
	CountByCategory(ctx context.Context, q DBExecutor, categoryID int64) (int64, error)
}

// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"moneytrack/internal/domain"
	"moneytrack/internal/repository"
	"moneytrack/internal/util"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

const transactionColumns = `id, user_id, account_id, transfer_to_account_id, category_id, amount_cents, kind, occurred_on, memo, created_at, updated_at`

// CreateTransaction inserts a new ledger entry using the provided DBExecutor.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (user_id, account_id, transfer_to_account_id, category_id, amount_cents, kind, occurred_on, memo, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		transaction.UserID,
		transaction.AccountID,
		transaction.TransferToAccountID,
		transaction.CategoryID,
		transaction.AmountCents,
		transaction.Kind,
		transaction.OccurredOn,
		transaction.Memo,
		transaction.CreatedAt,
		transaction.UpdatedAt,
	).Scan(&transaction.ID)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetTransactionByID retrieves a transaction by its ID.
func (r *TransactionRepository) GetTransactionByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Transaction, error) {
	var transaction domain.Transaction
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	err := q.GetContext(ctx, &transaction, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by ID %d: %w", id, err)
	}
	return &transaction, nil
}

// UpdateTransaction persists all mutable fields of a transaction.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `UPDATE transactions
              SET account_id = $1, transfer_to_account_id = $2, category_id = $3, amount_cents = $4, kind = $5, occurred_on = $6, memo = $7, updated_at = $8
              WHERE id = $9`
	result, err := q.ExecContext(ctx, query,
		transaction.AccountID,
		transaction.TransferToAccountID,
		transaction.CategoryID,
		transaction.AmountCents,
		transaction.Kind,
		transaction.OccurredOn,
		transaction.Memo,
		time.Now().UTC(),
		transaction.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", transaction.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for transaction %d: %w", transaction.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction row.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for transaction %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// ListTransactionsByUser retrieves a paginated history, newest first.
// It performs two queries: one for the data and one for the total count.
func (r *TransactionRepository) ListTransactionsByUser(ctx context.Context, q repository.DBExecutor, userID int64, accountID *int64, limit, offset int) ([]domain.Transaction, int64, error) {
	transactions := []domain.Transaction{}

	query := `SELECT ` + transactionColumns + `
              FROM transactions
              WHERE user_id = $1 AND ($2::bigint IS NULL OR account_id = $2 OR transfer_to_account_id = $2)
              ORDER BY occurred_on DESC, id DESC
              LIMIT $3 OFFSET $4`
	if err := q.SelectContext(ctx, &transactions, query, userID, accountID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions for user %d: %w", userID, err)
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*)
                   FROM transactions
                   WHERE user_id = $1 AND ($2::bigint IS NULL OR account_id = $2 OR transfer_to_account_id = $2)`
	if err := q.GetContext(ctx, &totalCount, countQuery, userID, accountID); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions for user %d: %w", userID, err)
	}

	return transactions, totalCount, nil
}

// CountByAccount returns how many transactions reference an account.
func (r *TransactionRepository) CountByAccount(ctx context.Context, q repository.DBExecutor, accountID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM transactions WHERE account_id = $1 OR transfer_to_account_id = $1`
	if err := q.GetContext(ctx, &count, query, accountID); err != nil {
		return 0, fmt.Errorf("failed to count transactions for account %d: %w", accountID, err)
	}
	return count, nil
}

// CountByCategory returns how many transactions reference a category.
func (r *TransactionRepository) CountByCategory(ctx context.Context, q repository.DBExecutor, categoryID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM transactions WHERE category_id = $1`
	if err := q.GetContext(ctx, &count, query, categoryID); err != nil {
		return 0, fmt.Errorf("failed to count transactions for category %d: %w", categoryID, err)
	}
	return count, nil
}

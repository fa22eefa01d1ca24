// internal/repository/postgres/account_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"

	"moneytrack/internal/domain"
	"moneytrack/internal/repository"
	"moneytrack/internal/util"
)

// AccountRepository implements repository.AccountRepository for PostgreSQL.
type AccountRepository struct{}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &AccountRepository{}
}

const accountColumns = `id, user_id, name, type, balance_cents, bank_name, routing_number, account_number_last4, created_at, updated_at`

// CreateAccount inserts a new account using the provided DBExecutor.
func (r *AccountRepository) CreateAccount(ctx context.Context, q repository.DBExecutor, account *domain.Account) error {
	query := `INSERT INTO accounts (user_id, name, type, balance_cents, bank_name, routing_number, account_number_last4, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		account.UserID,
		account.Name,
		account.Type,
		account.BalanceCents,
		account.BankName,
		account.RoutingNumber,
		account.AccountNumberLast4,
		account.CreatedAt,
		account.UpdatedAt,
	).Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetAccountByID retrieves an account by its ID.
func (r *AccountRepository) GetAccountByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Account, error) {
	var account domain.Account
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	err := q.GetContext(ctx, &account, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by ID %d: %w", id, err)
	}
	return &account, nil
}

// ListAccountsByUser retrieves all accounts owned by a user.
func (r *AccountRepository) ListAccountsByUser(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Account, error) {
	accounts := []domain.Account{}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY name`
	if err := q.SelectContext(ctx, &accounts, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list accounts for user %d: %w", userID, err)
	}
	return accounts, nil
}

// LockAccounts loads and row-locks accounts in ascending id order.
func (r *AccountRepository) LockAccounts(ctx context.Context, q repository.DBExecutor, ids []int64) (map[int64]*domain.Account, error) {
	if len(ids) == 0 {
		return map[int64]*domain.Account{}, nil
	}
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	locked := make(map[int64]*domain.Account, len(sorted))
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE`
	for _, id := range sorted {
		if _, ok := locked[id]; ok {
			continue
		}
		var account domain.Account
		if err := q.GetContext(ctx, &account, query, id); err != nil {
			if err == sql.ErrNoRows {
				return nil, util.ErrNotFound
			}
			return nil, translateError(fmt.Errorf("failed to lock account %d: %w", id, err), util.ErrDuplicateEntry)
		}
		locked[id] = &account
	}
	return locked, nil
}

// ApplyBalanceEffect adjusts one account's cached balance by a signed delta.
func (r *AccountRepository) ApplyBalanceEffect(ctx context.Context, q repository.DBExecutor, accountID int64, deltaCents int64) error {
	query := `UPDATE accounts SET balance_cents = balance_cents + $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, deltaCents, time.Now().UTC(), accountID)
	if err != nil {
		return translateError(fmt.Errorf("failed to update balance for account %d: %w", accountID, err), util.ErrDuplicateEntry)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for account %d: %w", accountID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// UpdateAccount persists metadata changes, never the balance.
func (r *AccountRepository) UpdateAccount(ctx context.Context, q repository.DBExecutor, account *domain.Account) error {
	query := `UPDATE accounts
              SET name = $1, type = $2, bank_name = $3, routing_number = $4, account_number_last4 = $5, updated_at = $6
              WHERE id = $7`
	result, err := q.ExecContext(ctx, query,
		account.Name,
		account.Type,
		account.BankName,
		account.RoutingNumber,
		account.AccountNumberLast4,
		time.Now().UTC(),
		account.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %d: %w", account.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for account %d: %w", account.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account row.
func (r *AccountRepository) DeleteAccount(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for account %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

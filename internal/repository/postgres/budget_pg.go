// internal/repository/postgres/budget_pg.go
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

// BudgetRepository implements repository.BudgetRepository for PostgreSQL.
type BudgetRepository struct{}

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository(db *sqlx.DB) repository.BudgetRepository {
	return &BudgetRepository{}
}

const budgetColumns = `id, user_id, category_id, year, month, amount_cents, created_at, updated_at`

// CreateBudget inserts a budget row. The unique constraint on
// (user, category, year, month) is the backstop against duplicate periods.
func (r *BudgetRepository) CreateBudget(ctx context.Context, q repository.DBExecutor, budget *domain.MonthlyBudget) error {
	query := `INSERT INTO monthly_budgets (user_id, category_id, year, month, amount_cents, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		budget.UserID,
		budget.CategoryID,
		budget.Year,
		budget.Month,
		budget.AmountCents,
		budget.CreatedAt,
		budget.UpdatedAt,
	).Scan(&budget.ID)
	if err != nil {
		if mapped := translateError(err, util.ErrDuplicateBudgetPeriod); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create budget: %w", err)
	}
	return nil
}

// GetBudget retrieves the budget for one category and period, if any.
func (r *BudgetRepository) GetBudget(ctx context.Context, q repository.DBExecutor, userID, categoryID int64, year, month int) (*domain.MonthlyBudget, error) {
	var budget domain.MonthlyBudget
	query := `SELECT ` + budgetColumns + ` FROM monthly_budgets
              WHERE user_id = $1 AND category_id = $2 AND year = $3 AND month = $4`
	err := q.GetContext(ctx, &budget, query, userID, categoryID, year, month)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get budget for category %d in %d-%02d: %w", categoryID, year, month, err)
	}
	return &budget, nil
}

// UpdateBudgetAmount replaces the budgeted amount of an existing row.
func (r *BudgetRepository) UpdateBudgetAmount(ctx context.Context, q repository.DBExecutor, id int64, amountCents int64) error {
	query := `UPDATE monthly_budgets SET amount_cents = $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, amountCents, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update budget %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for budget %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// ListBudgetsByPeriod retrieves all of a user's budgets for a period.
func (r *BudgetRepository) ListBudgetsByPeriod(ctx context.Context, q repository.DBExecutor, userID int64, year, month int) ([]domain.MonthlyBudget, error) {
	budgets := []domain.MonthlyBudget{}
	query := `SELECT ` + budgetColumns + ` FROM monthly_budgets
              WHERE user_id = $1 AND year = $2 AND month = $3 ORDER BY category_id`
	if err := q.SelectContext(ctx, &budgets, query, userID, year, month); err != nil {
		return nil, fmt.Errorf("failed to list budgets for user %d in %d-%02d: %w", userID, year, month, err)
	}
	return budgets, nil
}

// DeleteBudget removes a budget row.
func (r *BudgetRepository) DeleteBudget(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM monthly_budgets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete budget %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for budget %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

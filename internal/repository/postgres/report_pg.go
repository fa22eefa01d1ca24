// internal/repository/postgres/report_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"moneytrack/internal/domain"
	"moneytrack/internal/repository"
)

// ReportRepository implements repository.ReportRepository for PostgreSQL.
type ReportRepository struct{}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(db *sqlx.DB) repository.ReportRepository {
	return &ReportRepository{}
}

// TotalBalance sums all account balances for a user.
func (r *ReportRepository) TotalBalance(ctx context.Context, q repository.DBExecutor, userID int64) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(balance_cents), 0) FROM accounts WHERE user_id = $1`
	if err := q.GetContext(ctx, &total, query, userID); err != nil {
		return 0, fmt.Errorf("failed to sum balances for user %d: %w", userID, err)
	}
	return total, nil
}

// CountAccounts returns the number of accounts a user owns.
func (r *ReportRepository) CountAccounts(ctx context.Context, q repository.DBExecutor, userID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM accounts WHERE user_id = $1`
	if err := q.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count accounts for user %d: %w", userID, err)
	}
	return count, nil
}

// RecentTransactions returns the newest transactions for a user.
func (r *ReportRepository) RecentTransactions(ctx context.Context, q repository.DBExecutor, userID int64, limit int) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	query := `SELECT ` + transactionColumns + ` FROM transactions
              WHERE user_id = $1
              ORDER BY occurred_on DESC, id DESC
              LIMIT $2`
	if err := q.SelectContext(ctx, &transactions, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch recent transactions for user %d: %w", userID, err)
	}
	return transactions, nil
}

// ExpenseTotalsForMonth groups a month's expense transactions by category.
func (r *ReportRepository) ExpenseTotalsForMonth(ctx context.Context, q repository.DBExecutor, userID int64, year, month int) ([]domain.CategoryTotal, error) {
	totals := []domain.CategoryTotal{}
	query := `SELECT c.id AS category_id, c.name AS category_name, COALESCE(SUM(t.amount_cents), 0) AS total_cents
              FROM transactions t
              JOIN categories c ON c.id = t.category_id
              WHERE t.user_id = $1
                AND t.kind = 'expense'
                AND EXTRACT(YEAR FROM t.occurred_on) = $2
                AND EXTRACT(MONTH FROM t.occurred_on) = $3
              GROUP BY c.id, c.name
              ORDER BY c.name`
	if err := q.SelectContext(ctx, &totals, query, userID, year, month); err != nil {
		return nil, fmt.Errorf("failed to fetch expense totals for user %d in %d-%02d: %w", userID, year, month, err)
	}
	return totals, nil
}

// BudgetActivity joins each category's budget for the period against the
// signed sum of its transactions. Only categories with a budget row or with
// activity appear; transfers never carry a category so they are excluded by
// the join.
func (r *ReportRepository) BudgetActivity(ctx context.Context, q repository.DBExecutor, userID int64, year, month int) ([]repository.BudgetActivityRow, error) {
	rows := []repository.BudgetActivityRow{}
	query := `SELECT c.id   AS category_id,
                     c.name AS category_name,
                     c.kind AS category_kind,
                     COALESCE(b.amount_cents, 0) AS budgeted_cents,
                     COALESCE(t.total, 0)        AS actual_sum_cents,
                     (b.id IS NOT NULL)          AS has_budget
              FROM categories c
              LEFT JOIN monthly_budgets b
                     ON b.category_id = c.id AND b.user_id = $1 AND b.year = $2 AND b.month = $3
              LEFT JOIN (
                     SELECT category_id, SUM(amount_cents) AS total
                     FROM transactions
                     WHERE user_id = $1
                       AND category_id IS NOT NULL
                       AND EXTRACT(YEAR FROM occurred_on) = $2
                       AND EXTRACT(MONTH FROM occurred_on) = $3
                     GROUP BY category_id
              ) t ON t.category_id = c.id
              WHERE c.user_id = $1 AND (b.id IS NOT NULL OR t.total IS NOT NULL)
              ORDER BY c.name`
	if err := q.SelectContext(ctx, &rows, query, userID, year, month); err != nil {
		return nil, fmt.Errorf("failed to fetch budget activity for user %d in %d-%02d: %w", userID, year, month, err)
	}
	return rows, nil
}

// MonthlyActivity returns per-month income and expense totals for a year.
func (r *ReportRepository) MonthlyActivity(ctx context.Context, q repository.DBExecutor, userID int64, year int) ([]domain.MonthlyActivity, error) {
	activity := []domain.MonthlyActivity{}
	query := `SELECT EXTRACT(MONTH FROM occurred_on)::int AS month,
                     COALESCE(SUM(amount_cents) FILTER (WHERE kind = 'income'), 0)  AS income_cents,
                     COALESCE(SUM(amount_cents) FILTER (WHERE kind = 'expense'), 0) AS expense_cents
              FROM transactions
              WHERE user_id = $1 AND EXTRACT(YEAR FROM occurred_on) = $2
              GROUP BY EXTRACT(MONTH FROM occurred_on)
              ORDER BY month`
	if err := q.SelectContext(ctx, &activity, query, userID, year); err != nil {
		return nil, fmt.Errorf("failed to fetch monthly activity for user %d in %d: %w", userID, year, err)
	}
	return activity, nil
}

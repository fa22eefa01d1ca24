// internal/repository/report_repo.go
package repository

import (
	"context"

	"moneytrack/internal/domain"
)

// BudgetActivityRow is the raw join of budgets against period activity; the
// report service derives variance from it.
type BudgetActivityRow struct {
	CategoryID     int64               `db:"category_id"`
	CategoryName   string              `db:"category_name"`
	CategoryKind   domain.CategoryKind `db:"category_kind"`
	BudgetedCents  int64               `db:"budgeted_cents"`
	ActualSumCents int64               `db:"actual_sum_cents"`
	HasBudget      bool                `db:"has_budget"`
}

// ReportRepository defines the read-only aggregate queries behind reports.
// All queries are pure aggregation over the owner's rows.
type ReportRepository interface {
	// TotalBalance sums all account balances for a user.
	TotalBalance(ctx context.Context, q DBExecutor, userID int64) (int64, error)
	// CountAccounts returns the number of accounts a user owns.
	CountAccounts(ctx context.Context, q DBExecutor, userID int64) (int, error)
	// RecentTransactions returns the newest transactions for a user.
	RecentTransactions(ctx context.Context, q DBExecutor, userID int64, limit int) ([]domain.Transaction, error)
	// ExpenseTotalsForMonth groups a month's expense transactions by category.
	ExpenseTotalsForMonth(ctx context.Context, q DBExecutor, userID int64, year, month int) ([]domain.CategoryTotal, error)
	// BudgetActivity returns one row per category that has a budget or
	// activity in the period (union, no duplicates), ordered by name.
	BudgetActivity(ctx context.Context, q DBExecutor, userID int64, year, month int) ([]BudgetActivityRow, error)
	// MonthlyActivity returns per-month income and expense totals for a year.
	MonthlyActivity(ctx context.Context, q DBExecutor, userID int64, year int) ([]domain.MonthlyActivity, error)
}

// internal/repository/budget_repo.go
package repository

import (
	"context"

	"moneytrack/internal/domain"
)

// BudgetRepository defines the interface for monthly budget data operations.
type BudgetRepository interface {
	// CreateBudget inserts a budget row. Inserting a second row for the same
	// (user, category, period) fails with util.ErrDuplicateBudgetPeriod.
	CreateBudget(ctx context.Context, q DBExecutor, budget *domain.MonthlyBudget) error
	// GetBudget retrieves the budget for one category and period, if any.
	GetBudget(ctx context.Context, q DBExecutor, userID, categoryID int64, year, month int) (*domain.MonthlyBudget, error)
	// UpdateBudgetAmount replaces the budgeted amount of an existing row.
	UpdateBudgetAmount(ctx context.Context, q DBExecutor, id int64, amountCents int64) error
	// ListBudgetsByPeriod retrieves all of a user's budgets for a period.
	ListBudgetsByPeriod(ctx context.Context, q DBExecutor, userID int64, year, month int) ([]domain.MonthlyBudget, error)
	// DeleteBudget removes a budget row.
	DeleteBudget(ctx context.Context, q DBExecutor, id int64) error
}

// internal/repository/investment_repo.go
package repository

import (
	"context"

	"moneytrack/internal/domain"
)

// InvestmentRepository defines the interface for investment data operations.
type InvestmentRepository interface {
	// CreateInvestment adds a new holding.
	CreateInvestment(ctx context.Context, q DBExecutor, investment *domain.Investment) error
	// GetInvestmentByID retrieves a holding by its ID.
	GetInvestmentByID(ctx context.Context, q DBExecutor, id int64) (*domain.Investment, error)
	// ListInvestmentsByUser retrieves a user's holdings ordered by symbol.
	ListInvestmentsByUser(ctx context.Context, q DBExecutor, userID int64) ([]domain.Investment, error)
	// UpdateCurrentPrice records an externally supplied market price.
	UpdateCurrentPrice(ctx context.Context, q DBExecutor, id int64, priceCents int64) error
	// DeleteInvestment removes a holding row.
	DeleteInvestment(ctx context.Context, q DBExecutor, id int64) error
}

// internal/repository/postgres/investment_pg.go
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

// InvestmentRepository implements repository.InvestmentRepository for PostgreSQL.
type InvestmentRepository struct{}

// NewInvestmentRepository creates a new InvestmentRepository.
func NewInvestmentRepository(db *sqlx.DB) repository.InvestmentRepository {
	return &InvestmentRepository{}
}

const investmentColumns = `id, user_id, symbol, name, quantity, purchase_price_cents, current_price_cents, purchase_date, created_at, updated_at`

// CreateInvestment inserts a new holding using the provided DBExecutor.
func (r *InvestmentRepository) CreateInvestment(ctx context.Context, q repository.DBExecutor, investment *domain.Investment) error {
	query := `INSERT INTO investments (user_id, symbol, name, quantity, purchase_price_cents, current_price_cents, purchase_date, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		investment.UserID,
		investment.Symbol,
		investment.Name,
		investment.Quantity,
		investment.PurchasePriceCents,
		investment.CurrentPriceCents,
		investment.PurchaseDate,
		investment.CreatedAt,
		investment.UpdatedAt,
	).Scan(&investment.ID)
	if err != nil {
		return fmt.Errorf("failed to create investment: %w", err)
	}
	return nil
}

// GetInvestmentByID retrieves a holding by its ID.
func (r *InvestmentRepository) GetInvestmentByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Investment, error) {
	var investment domain.Investment
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE id = $1`
	err := q.GetContext(ctx, &investment, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get investment by ID %d: %w", id, err)
	}
	return &investment, nil
}

// ListInvestmentsByUser retrieves a user's holdings ordered by symbol.
func (r *InvestmentRepository) ListInvestmentsByUser(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Investment, error) {
	investments := []domain.Investment{}
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE user_id = $1 ORDER BY symbol`
	if err := q.SelectContext(ctx, &investments, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list investments for user %d: %w", userID, err)
	}
	return investments, nil
}

// UpdateCurrentPrice records an externally supplied market price.
func (r *InvestmentRepository) UpdateCurrentPrice(ctx context.Context, q repository.DBExecutor, id int64, priceCents int64) error {
	query := `UPDATE investments SET current_price_cents = $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, priceCents, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update price for investment %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for investment %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// DeleteInvestment removes a holding row.
func (r *InvestmentRepository) DeleteInvestment(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM investments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete investment %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for investment %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

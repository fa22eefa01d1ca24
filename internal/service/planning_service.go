// internal/service/planning_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"moneytrack/internal/domain"
	"moneytrack/internal/repository"
	"moneytrack/internal/util"
)

// InvestmentInput carries the caller-supplied fields of a holding.
type InvestmentInput struct {
	Symbol             string
	Name               string
	Quantity           decimal.Decimal
	PurchasePriceCents int64
	CurrentPriceCents  *int64
	PurchaseDate       time.Time
}

// PlanningService manages categories, monthly budgets and investment
// holdings. None of these touch account balances, so operations here run as
// single statements rather than explicit database transactions.
type PlanningService interface {
	CreateCategory(ctx context.Context, ownerID int64, name string, kind domain.CategoryKind) (*domain.Category, error)
	ListCategories(ctx context.Context, ownerID int64) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, ownerID, categoryID int64) error

	SetBudget(ctx context.Context, ownerID, categoryID int64, year, month int, amountCents int64) (*domain.MonthlyBudget, error)
	ListBudgets(ctx context.Context, ownerID int64, year, month int) ([]domain.MonthlyBudget, error)
	DeleteBudget(ctx context.Context, ownerID, categoryID int64, year, month int) error

	AddInvestment(ctx context.Context, ownerID int64, input InvestmentInput) (*domain.Investment, error)
	ListInvestments(ctx context.Context, ownerID int64) ([]domain.Investment, error)
	UpdateInvestmentPrice(ctx context.Context, ownerID, investmentID int64, priceCents int64) (*domain.Investment, error)
	DeleteInvestment(ctx context.Context, ownerID, investmentID int64) error
}

// planningService implements the PlanningService interface.
type planningService struct {
	dbExecutor      repository.DBExecutor
	categoryRepo    repository.CategoryRepository
	budgetRepo      repository.BudgetRepository
	investmentRepo  repository.InvestmentRepository
	transactionRepo repository.TransactionRepository
}

// NewPlanningService creates a new instance of PlanningService.
func NewPlanningService(
	dbExecutor repository.DBExecutor,
	categoryRepo repository.CategoryRepository,
	budgetRepo repository.BudgetRepository,
	investmentRepo repository.InvestmentRepository,
	transactionRepo repository.TransactionRepository,
) PlanningService {
	return &planningService{
		dbExecutor:      dbExecutor,
		categoryRepo:    categoryRepo,
		budgetRepo:      budgetRepo,
		investmentRepo:  investmentRepo,
		transactionRepo: transactionRepo,
	}
}

// CreateCategory adds a category. A category's kind is fixed at creation;
// there is deliberately no update operation that could change it under
// existing transactions.
func (s *planningService) CreateCategory(ctx context.Context, ownerID int64, name string, kind domain.CategoryKind) (*domain.Category, error) {
	if name == "" || !domain.ValidCategoryKind(kind) {
		return nil, util.ErrInvalidInput
	}

	category := domain.NewCategory(ownerID, name, kind)
	if err := s.categoryRepo.CreateCategory(ctx, s.dbExecutor, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// ListCategories retrieves all of the owner's categories.
func (s *planningService) ListCategories(ctx context.Context, ownerID int64) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategoriesByUser(ctx, s.dbExecutor, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// DeleteCategory removes a category. Deletion is disallowed while any
// transaction still references it.
func (s *planningService) DeleteCategory(ctx context.Context, ownerID, categoryID int64) error {
	if _, err := s.getOwnedCategory(ctx, ownerID, categoryID); err != nil {
		return err
	}

	count, err := s.transactionRepo.CountByCategory(ctx, s.dbExecutor, categoryID)
	if err != nil {
		return fmt.Errorf("delete category %d: %w", categoryID, err)
	}
	if count > 0 {
		return util.ErrCategoryInUse
	}

	if err := s.categoryRepo.DeleteCategory(ctx, s.dbExecutor, categoryID); err != nil {
		return fmt.Errorf("delete category %d: %w", categoryID, err)
	}
	return nil
}

// SetBudget creates or replaces the budgeted amount for one category and
// period. The unique constraint on (user, category, year, month) guarantees
// at most one row survives a concurrent create.
func (s *planningService) SetBudget(ctx context.Context, ownerID, categoryID int64, year, month int, amountCents int64) (*domain.MonthlyBudget, error) {
	if !domain.ValidPeriod(year, month) {
		return nil, util.ErrInvalidInput
	}
	if amountCents < 0 {
		return nil, util.ErrInvalidAmount
	}
	if _, err := s.getOwnedCategory(ctx, ownerID, categoryID); err != nil {
		return nil, err
	}

	existing, err := s.budgetRepo.GetBudget(ctx, s.dbExecutor, ownerID, categoryID, year, month)
	switch {
	case err == nil:
		if err := s.budgetRepo.UpdateBudgetAmount(ctx, s.dbExecutor, existing.ID, amountCents); err != nil {
			return nil, fmt.Errorf("set budget: %w", err)
		}
		existing.AmountCents = amountCents
		return existing, nil
	case util.IsError(err, util.ErrNotFound):
		budget := domain.NewMonthlyBudget(ownerID, categoryID, year, month, amountCents)
		if err := s.budgetRepo.CreateBudget(ctx, s.dbExecutor, budget); err != nil {
			return nil, fmt.Errorf("set budget: %w", err)
		}
		return budget, nil
	default:
		return nil, fmt.Errorf("set budget: %w", err)
	}
}

// ListBudgets retrieves the owner's budgets for one period.
func (s *planningService) ListBudgets(ctx context.Context, ownerID int64, year, month int) ([]domain.MonthlyBudget, error) {
	if !domain.ValidPeriod(year, month) {
		return nil, util.ErrInvalidInput
	}
	budgets, err := s.budgetRepo.ListBudgetsByPeriod(ctx, s.dbExecutor, ownerID, year, month)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}

// DeleteBudget removes the budget for one category and period.
func (s *planningService) DeleteBudget(ctx context.Context, ownerID, categoryID int64, year, month int) error {
	if !domain.ValidPeriod(year, month) {
		return util.ErrInvalidInput
	}
	budget, err := s.budgetRepo.GetBudget(ctx, s.dbExecutor, ownerID, categoryID, year, month)
	if err != nil {
		return err
	}
	if err := s.budgetRepo.DeleteBudget(ctx, s.dbExecutor, budget.ID); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}

// AddInvestment records a new holding. Prices must be positive and the
// quantity strictly greater than zero.
func (s *planningService) AddInvestment(ctx context.Context, ownerID int64, input InvestmentInput) (*domain.Investment, error) {
	if input.Symbol == "" || input.Name == "" {
		return nil, util.ErrInvalidInput
	}
	if !input.Quantity.IsPositive() {
		return nil, util.ErrInvalidAmount
	}
	if input.PurchasePriceCents <= 0 {
		return nil, util.ErrInvalidAmount
	}
	if input.CurrentPriceCents != nil && *input.CurrentPriceCents <= 0 {
		return nil, util.ErrInvalidAmount
	}

	investment := domain.NewInvestment(ownerID, input.Symbol, input.Name, input.Quantity, input.PurchasePriceCents, input.CurrentPriceCents, input.PurchaseDate)
	if err := s.investmentRepo.CreateInvestment(ctx, s.dbExecutor, investment); err != nil {
		return nil, fmt.Errorf("add investment: %w", err)
	}
	return investment, nil
}

// ListInvestments retrieves all of the owner's holdings.
func (s *planningService) ListInvestments(ctx context.Context, ownerID int64) ([]domain.Investment, error) {
	investments, err := s.investmentRepo.ListInvestmentsByUser(ctx, s.dbExecutor, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	return investments, nil
}

// UpdateInvestmentPrice records a new market price for a holding.
func (s *planningService) UpdateInvestmentPrice(ctx context.Context, ownerID, investmentID int64, priceCents int64) (*domain.Investment, error) {
	if priceCents <= 0 {
		return nil, util.ErrInvalidAmount
	}
	investment, err := s.getOwnedInvestment(ctx, ownerID, investmentID)
	if err != nil {
		return nil, err
	}
	if err := s.investmentRepo.UpdateCurrentPrice(ctx, s.dbExecutor, investmentID, priceCents); err != nil {
		return nil, fmt.Errorf("update investment price: %w", err)
	}
	investment.CurrentPriceCents = &priceCents
	return investment, nil
}

// DeleteInvestment removes one of the owner's holdings.
func (s *planningService) DeleteInvestment(ctx context.Context, ownerID, investmentID int64) error {
	if _, err := s.getOwnedInvestment(ctx, ownerID, investmentID); err != nil {
		return err
	}
	if err := s.investmentRepo.DeleteInvestment(ctx, s.dbExecutor, investmentID); err != nil {
		return fmt.Errorf("delete investment %d: %w", investmentID, err)
	}
	return nil
}

func (s *planningService) getOwnedCategory(ctx context.Context, ownerID, categoryID int64) (*domain.Category, error) {
	category, err := s.categoryRepo.GetCategoryByID(ctx, s.dbExecutor, categoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID != ownerID {
		return nil, util.ErrNotFound
	}
	return category, nil
}

func (s *planningService) getOwnedInvestment(ctx context.Context, ownerID, investmentID int64) (*domain.Investment, error) {
	investment, err := s.investmentRepo.GetInvestmentByID(ctx, s.dbExecutor, investmentID)
	if err != nil {
		return nil, err
	}
	if investment.UserID != ownerID {
		return nil, util.ErrNotFound
	}
	return investment, nil
}

// internal/service/report_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"moneytrack/internal/domain"
	"moneytrack/internal/repository"
	"moneytrack/internal/util"
)

const recentTransactionLimit = 5

// ReportService derives read-only aggregates. Nothing here writes; every
// number is computed from the owner's rows at call time.
type ReportService interface {
	DashboardSummary(ctx context.Context, ownerID int64, now time.Time) (*domain.DashboardSummary, error)
	BudgetVariance(ctx context.Context, ownerID int64, year, month int) ([]domain.BudgetVarianceRow, error)
	PortfolioSummary(ctx context.Context, ownerID int64) (*domain.PortfolioSummary, error)
	NetWorth(ctx context.Context, ownerID int64) (*domain.NetWorth, error)
	MonthlyActivity(ctx context.Context, ownerID int64, year int) ([]domain.MonthlyActivity, error)
}

// reportService implements the ReportService interface.
type reportService struct {
	dbExecutor     repository.DBExecutor
	reportRepo     repository.ReportRepository
	accountRepo    repository.AccountRepository
	investmentRepo repository.InvestmentRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(
	dbExecutor repository.DBExecutor,
	reportRepo repository.ReportRepository,
	accountRepo repository.AccountRepository,
	investmentRepo repository.InvestmentRepository,
) ReportService {
	return &reportService{
		dbExecutor:     dbExecutor,
		reportRepo:     reportRepo,
		accountRepo:    accountRepo,
		investmentRepo: investmentRepo,
	}
}

// DashboardSummary assembles the landing-page aggregate for the month that
// contains now: total balance across accounts, the newest transactions and
// the month's expense breakdown by category.
func (s *reportService) DashboardSummary(ctx context.Context, ownerID int64, now time.Time) (*domain.DashboardSummary, error) {
	year, month := now.UTC().Year(), int(now.UTC().Month())

	totalBalance, err := s.reportRepo.TotalBalance(ctx, s.dbExecutor, ownerID)
	if err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}
	accountCount, err := s.reportRepo.CountAccounts(ctx, s.dbExecutor, ownerID)
	if err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}
	recent, err := s.reportRepo.RecentTransactions(ctx, s.dbExecutor, ownerID, recentTransactionLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}
	expenseTotals, err := s.reportRepo.ExpenseTotalsForMonth(ctx, s.dbExecutor, ownerID, year, month)
	if err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}

	return &domain.DashboardSummary{
		TotalBalanceCents:  totalBalance,
		AccountCount:       accountCount,
		RecentTransactions: recent,
		MonthExpenseTotals: expenseTotals,
		Year:               year,
		Month:              month,
	}, nil
}

// BudgetVariance compares each category's budget for the period against its
// activity. The actual spend is the magnitude of the period's signed sum, so
// a category of expenses (negative amounts) and one of income (positive
// amounts) both report a positive actual. Variance is budgeted minus actual:
// positive means under budget. Categories with activity but no budget row
// are included and flagged rather than dropped.
func (s *reportService) BudgetVariance(ctx context.Context, ownerID int64, year, month int) ([]domain.BudgetVarianceRow, error) {
	if !domain.ValidPeriod(year, month) {
		return nil, util.ErrInvalidInput
	}

	activity, err := s.reportRepo.BudgetActivity(ctx, s.dbExecutor, ownerID, year, month)
	if err != nil {
		return nil, fmt.Errorf("budget variance: %w", err)
	}

	rows := make([]domain.BudgetVarianceRow, 0, len(activity))
	for _, a := range activity {
		actual := a.ActualSumCents
		if actual < 0 {
			actual = -actual
		}
		rows = append(rows, domain.BudgetVarianceRow{
			CategoryID:    a.CategoryID,
			CategoryName:  a.CategoryName,
			CategoryKind:  a.CategoryKind,
			BudgetedCents: a.BudgetedCents,
			ActualCents:   actual,
			VarianceCents: a.BudgetedCents - actual,
			Unbudgeted:    !a.HasBudget,
		})
	}
	return rows, nil
}

// PortfolioSummary values every holding at its effective price and totals
// market value, cost basis and gain/loss.
func (s *reportService) PortfolioSummary(ctx context.Context, ownerID int64) (*domain.PortfolioSummary, error) {
	investments, err := s.investmentRepo.ListInvestmentsByUser(ctx, s.dbExecutor, ownerID)
	if err != nil {
		return nil, fmt.Errorf("portfolio summary: %w", err)
	}

	summary := &domain.PortfolioSummary{Positions: make([]domain.PortfolioPosition, 0, len(investments))}
	for _, inv := range investments {
		position := domain.PortfolioPosition{
			Investment:       inv,
			MarketValueCents: inv.MarketValueCents(),
			CostBasisCents:   inv.CostBasisCents(),
			GainLossCents:    inv.GainLossCents(),
		}
		summary.Positions = append(summary.Positions, position)
		summary.TotalMarketValueCents += position.MarketValueCents
		summary.TotalCostBasisCents += position.CostBasisCents
		summary.TotalGainLossCents += position.GainLossCents
	}
	return summary, nil
}

// NetWorth splits account balances into cash assets (positive balances) and
// liabilities (negative balances, reported as a positive magnitude), adds the
// portfolio's market value, and nets the three.
func (s *reportService) NetWorth(ctx context.Context, ownerID int64) (*domain.NetWorth, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, s.dbExecutor, ownerID)
	if err != nil {
		return nil, fmt.Errorf("net worth: %w", err)
	}
	investments, err := s.investmentRepo.ListInvestmentsByUser(ctx, s.dbExecutor, ownerID)
	if err != nil {
		return nil, fmt.Errorf("net worth: %w", err)
	}

	nw := &domain.NetWorth{AccountCount: len(accounts)}
	for _, account := range accounts {
		if account.BalanceCents >= 0 {
			nw.CashAssetsCents += account.BalanceCents
		} else {
			nw.LiabilitiesCents += -account.BalanceCents
		}
	}
	for _, inv := range investments {
		nw.InvestmentAssetsCents += inv.MarketValueCents()
	}
	nw.TotalAssetsCents = nw.CashAssetsCents + nw.InvestmentAssetsCents
	nw.NetWorthCents = nw.TotalAssetsCents - nw.LiabilitiesCents
	return nw, nil
}

// MonthlyActivity returns per-month income and expense totals for a year.
// Months without activity are absent from the result.
func (s *reportService) MonthlyActivity(ctx context.Context, ownerID int64, year int) ([]domain.MonthlyActivity, error) {
	if year < 1970 || year > 9999 {
		return nil, util.ErrInvalidInput
	}
	activity, err := s.reportRepo.MonthlyActivity(ctx, s.dbExecutor, ownerID, year)
	if err != nil {
		return nil, fmt.Errorf("monthly activity: %w", err)
	}
	return activity, nil
}

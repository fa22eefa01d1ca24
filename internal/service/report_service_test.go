// internal/service/report_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"moneytrack/internal/domain"
	"moneytrack/internal/repository"
	"moneytrack/internal/util"
)

// reportMocks bundles the mocks behind one ReportService under test.
type reportMocks struct {
	dbExecutor     *MockDBExecutor
	reportRepo     *MockReportRepository
	accountRepo    *MockAccountRepository
	investmentRepo *MockInvestmentRepository
}

func newReportServiceWithMocks() (ReportService, *reportMocks) {
	m := &reportMocks{
		dbExecutor:     new(MockDBExecutor),
		reportRepo:     new(MockReportRepository),
		accountRepo:    new(MockAccountRepository),
		investmentRepo: new(MockInvestmentRepository),
	}
	service := NewReportService(m.dbExecutor, m.reportRepo, m.accountRepo, m.investmentRepo)
	return service, m
}

// TestDashboardSummary tests the DashboardSummary method of ReportService.
func TestDashboardSummary(t *testing.T) {
	ownerID := int64(1)
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

	t.Run("AssemblesCurrentMonth", func(t *testing.T) {
		ctx := context.Background()
		service, m := newReportServiceWithMocks()

		recent := []domain.Transaction{{ID: 5, UserID: ownerID, AmountCents: -1200}}
		expenseTotals := []domain.CategoryTotal{{CategoryID: 2, CategoryName: "Groceries", TotalCents: -45000}}

		m.reportRepo.On("TotalBalance", ctx, mock.Anything, ownerID).Return(int64(125000), nil).Once()
		m.reportRepo.On("CountAccounts", ctx, mock.Anything, ownerID).Return(2, nil).Once()
		m.reportRepo.On("RecentTransactions", ctx, mock.Anything, ownerID, recentTransactionLimit).Return(recent, nil).Once()
		m.reportRepo.On("ExpenseTotalsForMonth", ctx, mock.Anything, ownerID, 2025, 3).Return(expenseTotals, nil).Once()

		summary, err := service.DashboardSummary(ctx, ownerID, now)

		assert.NoError(t, err)
		assert.Equal(t, int64(125000), summary.TotalBalanceCents)
		assert.Equal(t, 2, summary.AccountCount)
		assert.Equal(t, 2025, summary.Year)
		assert.Equal(t, 3, summary.Month)
		assert.Len(t, summary.RecentTransactions, 1)
		assert.Len(t, summary.MonthExpenseTotals, 1)
		mock.AssertExpectationsForObjects(t, m.reportRepo)
	})
}

// TestBudgetVariance tests the BudgetVariance method of ReportService.
func TestBudgetVariance(t *testing.T) {
	ownerID := int64(1)

	t.Run("VarianceFromSignedActivity", func(t *testing.T) {
		ctx := context.Background()
		service, m := newReportServiceWithMocks()

		// Budget of 500.00, two expenses of 120.00 and 80.00 recorded as
		// negative amounts. Actual spend is their magnitude, 200.00, leaving
		// 300.00 of headroom.
		activity := []repository.BudgetActivityRow{
			{CategoryID: 2, CategoryName: "Groceries", CategoryKind: domain.CategoryKindExpense, BudgetedCents: 50000, ActualSumCents: -20000, HasBudget: true},
		}
		m.reportRepo.On("BudgetActivity", ctx, mock.Anything, ownerID, 2025, 3).Return(activity, nil).Once()

		rows, err := service.BudgetVariance(ctx, ownerID, 2025, 3)

		assert.NoError(t, err)
		if assert.Len(t, rows, 1) {
			assert.Equal(t, int64(20000), rows[0].ActualCents)
			assert.Equal(t, int64(30000), rows[0].VarianceCents)
			assert.False(t, rows[0].Unbudgeted)
		}
		mock.AssertExpectationsForObjects(t, m.reportRepo)
	})

	t.Run("OverspendAndUnbudgeted", func(t *testing.T) {
		ctx := context.Background()
		service, m := newReportServiceWithMocks()

		activity := []repository.BudgetActivityRow{
			{CategoryID: 2, CategoryName: "Groceries", CategoryKind: domain.CategoryKindExpense, BudgetedCents: 10000, ActualSumCents: -17500, HasBudget: true},
			{CategoryID: 3, CategoryName: "Entertainment", CategoryKind: domain.CategoryKindExpense, BudgetedCents: 0, ActualSumCents: -4200, HasBudget: false},
		}
		m.reportRepo.On("BudgetActivity", ctx, mock.Anything, ownerID, 2025, 3).Return(activity, nil).Once()

		rows, err := service.BudgetVariance(ctx, ownerID, 2025, 3)

		assert.NoError(t, err)
		if assert.Len(t, rows, 2) {
			assert.Equal(t, int64(-7500), rows[0].VarianceCents)
			assert.True(t, rows[1].Unbudgeted)
			assert.Equal(t, int64(4200), rows[1].ActualCents)
			assert.Equal(t, int64(-4200), rows[1].VarianceCents)
		}
		mock.AssertExpectationsForObjects(t, m.reportRepo)
	})

	t.Run("InvalidPeriod", func(t *testing.T) {
		ctx := context.Background()
		service, _ := newReportServiceWithMocks()

		_, err := service.BudgetVariance(ctx, ownerID, 2025, 13)

		assert.ErrorIs(t, err, util.ErrInvalidInput)
	})
}

// TestPortfolioSummary tests the PortfolioSummary method of ReportService.
func TestPortfolioSummary(t *testing.T) {
	ownerID := int64(1)

	t.Run("ValuesAndTotals", func(t *testing.T) {
		ctx := context.Background()
		service, m := newReportServiceWithMocks()

		currentPrice := int64(3000)
		investments := []domain.Investment{
			{ID: 1, UserID: ownerID, Symbol: "VTI", Quantity: decimal.NewFromInt(10), PurchasePriceCents: 2500, CurrentPriceCents: &currentPrice},
			// No market price yet, so the purchase price carries the valuation.
			{ID: 2, UserID: ownerID, Symbol: "BND", Quantity: decimal.NewFromInt(4), PurchasePriceCents: 8000},
		}
		m.investmentRepo.On("ListInvestmentsByUser", ctx, mock.Anything, ownerID).Return(investments, nil).Once()

		summary, err := service.PortfolioSummary(ctx, ownerID)

		assert.NoError(t, err)
		if assert.Len(t, summary.Positions, 2) {
			assert.Equal(t, int64(30000), summary.Positions[0].MarketValueCents)
			assert.Equal(t, int64(25000), summary.Positions[0].CostBasisCents)
			assert.Equal(t, int64(5000), summary.Positions[0].GainLossCents)
			assert.Equal(t, int64(32000), summary.Positions[1].MarketValueCents)
			assert.Equal(t, int64(0), summary.Positions[1].GainLossCents)
		}
		assert.Equal(t, int64(62000), summary.TotalMarketValueCents)
		assert.Equal(t, int64(57000), summary.TotalCostBasisCents)
		assert.Equal(t, int64(5000), summary.TotalGainLossCents)
		mock.AssertExpectationsForObjects(t, m.investmentRepo)
	})
}

// TestNetWorth tests the NetWorth method of ReportService.
func TestNetWorth(t *testing.T) {
	ownerID := int64(1)

	t.Run("SplitsAssetsAndLiabilities", func(t *testing.T) {
		ctx := context.Background()
		service, m := newReportServiceWithMocks()

		accounts := []domain.Account{
			{ID: 1, UserID: ownerID, Type: domain.AccountTypeChecking, BalanceCents: 100000},
			{ID: 2, UserID: ownerID, Type: domain.AccountTypeCredit, BalanceCents: -5000},
		}
		currentPrice := int64(2500)
		investments := []domain.Investment{
			{ID: 1, UserID: ownerID, Quantity: decimal.NewFromInt(10), PurchasePriceCents: 2000, CurrentPriceCents: &currentPrice},
		}

		m.accountRepo.On("ListAccountsByUser", ctx, mock.Anything, ownerID).Return(accounts, nil).Once()
		m.investmentRepo.On("ListInvestmentsByUser", ctx, mock.Anything, ownerID).Return(investments, nil).Once()

		nw, err := service.NetWorth(ctx, ownerID)

		assert.NoError(t, err)
		assert.Equal(t, int64(100000), nw.CashAssetsCents)
		assert.Equal(t, int64(5000), nw.LiabilitiesCents)
		assert.Equal(t, int64(25000), nw.InvestmentAssetsCents)
		assert.Equal(t, int64(125000), nw.TotalAssetsCents)
		assert.Equal(t, int64(120000), nw.NetWorthCents)
		assert.Equal(t, 2, nw.AccountCount)
		mock.AssertExpectationsForObjects(t, m.accountRepo, m.investmentRepo)
	})

	t.Run("EmptyUser", func(t *testing.T) {
		ctx := context.Background()
		service, m := newReportServiceWithMocks()

		m.accountRepo.On("ListAccountsByUser", ctx, mock.Anything, ownerID).Return([]domain.Account{}, nil).Once()
		m.investmentRepo.On("ListInvestmentsByUser", ctx, mock.Anything, ownerID).Return([]domain.Investment{}, nil).Once()

		nw, err := service.NetWorth(ctx, ownerID)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), nw.NetWorthCents)
		assert.Equal(t, 0, nw.AccountCount)
	})
}

// TestMonthlyActivity tests the MonthlyActivity method of ReportService.
func TestMonthlyActivity(t *testing.T) {
	ownerID := int64(1)

	t.Run("PassesThroughRepoRows", func(t *testing.T) {
		ctx := context.Background()
		service, m := newReportServiceWithMocks()

		rows := []domain.MonthlyActivity{
			{Month: 1, IncomeCents: 250000, ExpenseCents: -180000},
			{Month: 2, IncomeCents: 250000, ExpenseCents: -140000},
		}
		m.reportRepo.On("MonthlyActivity", ctx, mock.Anything, ownerID, 2025).Return(rows, nil).Once()

		activity, err := service.MonthlyActivity(ctx, ownerID, 2025)

		assert.NoError(t, err)
		assert.Len(t, activity, 2)
		mock.AssertExpectationsForObjects(t, m.reportRepo)
	})

	t.Run("InvalidYear", func(t *testing.T) {
		ctx := context.Background()
		service, _ := newReportServiceWithMocks()

		_, err := service.MonthlyActivity(ctx, ownerID, 12)

		assert.ErrorIs(t, err, util.ErrInvalidInput)
	})
}

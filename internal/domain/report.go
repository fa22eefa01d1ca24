// internal/domain/report.go
package domain

// Aggregate shapes returned by the report queries. All monetary values are
// integer cents; rounding for display happens in the presentation layer.

// CategoryTotal is a per-category sum for one period.
type CategoryTotal struct {
	CategoryID   int64  `db:"category_id" json:"category_id"`
	CategoryName string `db:"category_name" json:"category_name"`
	TotalCents   int64  `db:"total_cents" json:"total_cents"`
}

// DashboardSummary is the landing-page aggregate.
type DashboardSummary struct {
	TotalBalanceCents  int64           `json:"total_balance_cents"`
	AccountCount       int             `json:"account_count"`
	RecentTransactions []Transaction   `json:"recent_transactions"`
	MonthExpenseTotals []CategoryTotal `json:"month_expense_totals"`
	Year               int             `json:"year"`
	Month              int             `json:"month"`
}

// BudgetVarianceRow compares one category's budget against its activity in a
// period. ActualCents is the magnitude of the period's signed transaction
// sum; VarianceCents is budgeted minus actual, so a positive variance means
// under budget. Unbudgeted marks categories with activity but no budget row.
type BudgetVarianceRow struct {
	CategoryID    int64        `json:"category_id"`
	CategoryName  string       `json:"category_name"`
	CategoryKind  CategoryKind `json:"category_kind"`
	BudgetedCents int64        `json:"budgeted_cents"`
	ActualCents   int64        `json:"actual_cents"`
	VarianceCents int64        `json:"variance_cents"`
	Unbudgeted    bool         `json:"unbudgeted"`
}

// PortfolioPosition is the valuation of a single holding.
type PortfolioPosition struct {
	Investment       Investment `json:"investment"`
	MarketValueCents int64      `json:"market_value_cents"`
	CostBasisCents   int64      `json:"cost_basis_cents"`
	GainLossCents    int64      `json:"gain_loss_cents"`
}

// PortfolioSummary is the valuation of all holdings.
type PortfolioSummary struct {
	Positions             []PortfolioPosition `json:"positions"`
	TotalMarketValueCents int64               `json:"total_market_value_cents"`
	TotalCostBasisCents   int64               `json:"total_cost_basis_cents"`
	TotalGainLossCents    int64               `json:"total_gain_loss_cents"`
}

// NetWorth is account balances plus portfolio market value, with the
// asset/liability split the reports page shows.
type NetWorth struct {
	CashAssetsCents       int64 `json:"cash_assets_cents"`
	LiabilitiesCents      int64 `json:"liabilities_cents"`
	InvestmentAssetsCents int64 `json:"investment_assets_cents"`
	TotalAssetsCents      int64 `json:"total_assets_cents"`
	NetWorthCents         int64 `json:"net_worth_cents"`
	AccountCount          int   `json:"account_count"`
}

// MonthlyActivity is one month's income and expense totals.
type MonthlyActivity struct {
	Month        int   `db:"month" json:"month"`
	IncomeCents  int64 `db:"income_cents" json:"income_cents"`
	ExpenseCents int64 `db:"expense_cents" json:"expense_cents"`
}

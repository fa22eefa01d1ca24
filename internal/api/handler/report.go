// internal/api/handler/report.go
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"moneytrack/internal/money"
	"moneytrack/internal/service"
	"moneytrack/internal/util"
)

// ReportHandler handles HTTP requests for the read-only reports.
type ReportHandler struct {
	service service.ReportService
	logger  *slog.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(svc service.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		service: svc,
		logger:  logger,
	}
}

// Dashboard handles the dashboard summary request.
// GET /reports/dashboard
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	summary, err := h.service.DashboardSummary(r.Context(), ownerID, time.Now())
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"summary":               summary,
		"total_balance_display": money.FormatCents(summary.TotalBalanceCents, ""),
	})
}

// BudgetVariance handles the budget variance report request.
// GET /reports/budget-variance?year=&month=
func (h *ReportHandler) BudgetVariance(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	year, month, err := periodParams(r)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	rows, err := h.service.BudgetVariance(r.Context(), ownerID, year, month)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"year":  year,
		"month": month,
		"rows":  rows,
	})
}

// Portfolio handles the portfolio summary request.
// GET /reports/portfolio
func (h *ReportHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	summary, err := h.service.PortfolioSummary(r.Context(), ownerID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"portfolio":            summary,
		"market_value_display": money.FormatCents(summary.TotalMarketValueCents, ""),
	})
}

// NetWorth handles the net worth report request.
// GET /reports/net-worth
func (h *ReportHandler) NetWorth(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	netWorth, err := h.service.NetWorth(r.Context(), ownerID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"net_worth":         netWorth,
		"net_worth_display": money.FormatCents(netWorth.NetWorthCents, ""),
	})
}

// MonthlyActivity handles the yearly activity report request.
// GET /reports/monthly-activity?year=
func (h *ReportHandler) MonthlyActivity(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	activity, err := h.service.MonthlyActivity(r.Context(), ownerID, year)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"year":   year,
		"months": activity,
	})
}

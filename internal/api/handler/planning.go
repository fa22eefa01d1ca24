// internal/api/handler/planning.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"moneytrack/internal/domain"
	"moneytrack/internal/money"
	"moneytrack/internal/service"
	"moneytrack/internal/util"
)

// PlanningHandler handles HTTP requests for categories, budgets and
// investments.
type PlanningHandler struct {
	service service.PlanningService
	logger  *slog.Logger
}

// NewPlanningHandler creates a new PlanningHandler.
func NewPlanningHandler(svc service.PlanningService, logger *slog.Logger) *PlanningHandler {
	return &PlanningHandler{
		service: svc,
		logger:  logger,
	}
}

// CategoryRequest represents the request body for creating a category.
type CategoryRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// CreateCategory handles the create category request.
// POST /categories
func (h *PlanningHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	category, err := h.service.CreateCategory(r.Context(), ownerID, req.Name, domain.CategoryKind(req.Kind))
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, map[string]interface{}{"category": category})
}

// ListCategories handles the list categories request.
// GET /categories
func (h *PlanningHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	categories, err := h.service.ListCategories(r.Context(), ownerID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"categories": categories})
}

// DeleteCategory handles the delete category request.
// DELETE /categories/{categoryID}
func (h *PlanningHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	categoryID, err := pathID(r, "categoryID")
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	if err := h.service.DeleteCategory(r.Context(), ownerID, categoryID); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{"message": "Category deleted"})
}

// BudgetRequest represents the request body for setting a budget.
type BudgetRequest struct {
	CategoryID int64  `json:"category_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Amount     string `json:"amount"`
}

// SetBudget handles the create-or-replace budget request.
// PUT /budgets
func (h *PlanningHandler) SetBudget(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	var req BudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	amountCents, err := money.ParseCents(req.Amount)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	budget, err := h.service.SetBudget(r.Context(), ownerID, req.CategoryID, req.Year, req.Month, amountCents)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"budget":         budget,
		"amount_display": money.FormatCents(budget.AmountCents, ""),
	})
}

// ListBudgets handles the list budgets request.
// GET /budgets?year=&month=
func (h *PlanningHandler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	year, month, err := periodParams(r)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	budgets, err := h.service.ListBudgets(r.Context(), ownerID, year, month)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"budgets": budgets})
}

// DeleteBudget handles the delete budget request.
// DELETE /budgets?category_id=&year=&month=
func (h *PlanningHandler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	categoryID, err := strconv.ParseInt(r.URL.Query().Get("category_id"), 10, 64)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	year, month, err := periodParams(r)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	if err := h.service.DeleteBudget(r.Context(), ownerID, categoryID, year, month); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{"message": "Budget deleted"})
}

// InvestmentRequest represents the request body for adding an investment.
// Prices are decimal strings in major units.
type InvestmentRequest struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Quantity      string `json:"quantity"`
	PurchasePrice string `json:"purchase_price"`
	CurrentPrice  string `json:"current_price"`
	PurchaseDate  string `json:"purchase_date"`
}

// AddInvestment handles the add investment request.
// POST /investments
func (h *PlanningHandler) AddInvestment(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	var req InvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidAmount)
		return
	}
	purchasePriceCents, err := money.ParseCents(req.PurchasePrice)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}
	var currentPriceCents *int64
	if req.CurrentPrice != "" {
		cents, err := money.ParseCents(req.CurrentPrice)
		if err != nil {
			respondWithError(h.logger, w, err)
			return
		}
		currentPriceCents = &cents
	}
	purchaseDate := time.Now().UTC()
	if req.PurchaseDate != "" {
		purchaseDate, err = time.Parse(occurredOnLayout, req.PurchaseDate)
		if err != nil {
			respondWithError(h.logger, w, util.ErrInvalidInput)
			return
		}
	}

	investment, err := h.service.AddInvestment(r.Context(), ownerID, service.InvestmentInput{
		Symbol:             req.Symbol,
		Name:               req.Name,
		Quantity:           quantity,
		PurchasePriceCents: purchasePriceCents,
		CurrentPriceCents:  currentPriceCents,
		PurchaseDate:       purchaseDate,
	})
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, map[string]interface{}{"investment": investment})
}

// ListInvestments handles the list investments request.
// GET /investments
func (h *PlanningHandler) ListInvestments(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	investments, err := h.service.ListInvestments(r.Context(), ownerID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"investments": investments})
}

// PriceUpdateRequest represents the request body for a price update.
type PriceUpdateRequest struct {
	CurrentPrice string `json:"current_price"`
}

// UpdateInvestmentPrice handles the price update request.
// PUT /investments/{investmentID}/price
func (h *PlanningHandler) UpdateInvestmentPrice(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	investmentID, err := pathID(r, "investmentID")
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	var req PriceUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	priceCents, err := money.ParseCents(req.CurrentPrice)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	investment, err := h.service.UpdateInvestmentPrice(r.Context(), ownerID, investmentID, priceCents)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"investment": investment})
}

// DeleteInvestment handles the delete investment request.
// DELETE /investments/{investmentID}
func (h *PlanningHandler) DeleteInvestment(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	investmentID, err := pathID(r, "investmentID")
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	if err := h.service.DeleteInvestment(r.Context(), ownerID, investmentID); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{"message": "Investment deleted"})
}

// periodParams parses the year and month query parameters.
func periodParams(r *http.Request) (int, int, error) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return 0, 0, util.ErrInvalidInput
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		return 0, 0, util.ErrInvalidInput
	}
	return year, month, nil
}

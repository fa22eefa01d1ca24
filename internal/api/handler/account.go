// internal/api/handler/account.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"moneytrack/internal/domain"
	"moneytrack/internal/money"
	"moneytrack/internal/service"
	"moneytrack/internal/util"
)

// AccountHandler handles HTTP requests related to accounts.
type AccountHandler struct {
	service service.LedgerService
	logger  *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc service.LedgerService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		service: svc,
		logger:  logger,
	}
}

// AccountRequest represents the request body for creating or updating an account.
type AccountRequest struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	BankName      string `json:"bank_name"`
	RoutingNumber string `json:"routing_number"`
	AccountNumber string `json:"account_number"`
}

func (req *AccountRequest) toInput() service.AccountInput {
	return service.AccountInput{
		Name:          req.Name,
		Type:          domain.AccountType(req.Type),
		BankName:      req.BankName,
		RoutingNumber: req.RoutingNumber,
		AccountNumber: req.AccountNumber,
	}
}

func accountResponse(account *domain.Account) map[string]interface{} {
	return map[string]interface{}{
		"account":         account,
		"balance_display": money.FormatCents(account.BalanceCents, ""),
	}
}

// CreateAccount handles the create account request.
// POST /accounts
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	var req AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	account, err := h.service.CreateAccount(r.Context(), ownerID, req.toInput())
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, accountResponse(account))
}

// ListAccounts handles the list accounts request.
// GET /accounts
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	accounts, err := h.service.ListAccounts(r.Context(), ownerID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{"accounts": accounts})
}

// GetAccount handles the get account request.
// GET /accounts/{accountID}
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	accountID, err := pathID(r, "accountID")
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	account, err := h.service.GetAccount(r.Context(), ownerID, accountID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, accountResponse(account))
}

// UpdateAccount handles the update account request.
// PUT /accounts/{accountID}
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	accountID, err := pathID(r, "accountID")
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	var req AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	account, err := h.service.UpdateAccount(r.Context(), ownerID, accountID, req.toInput())
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, accountResponse(account))
}

// DeleteAccount handles the delete account request.
// DELETE /accounts/{accountID}
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	accountID, err := pathID(r, "accountID")
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	if err := h.service.DeleteAccount(r.Context(), ownerID, accountID); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{"message": "Account deleted"})
}

// pathID parses a numeric chi URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

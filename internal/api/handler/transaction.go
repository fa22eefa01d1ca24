// internal/api/handler/transaction.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"moneytrack/internal/api/types"
	"moneytrack/internal/domain"
	"moneytrack/internal/money"
	"moneytrack/internal/service"
	"moneytrack/internal/util"
)

const occurredOnLayout = "2006-01-02"

// TransactionHandler handles HTTP requests related to ledger transactions.
type TransactionHandler struct {
	service service.LedgerService
	logger  *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc service.LedgerService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		service: svc,
		logger:  logger,
	}
}

// TransactionRequest represents the request body for recording or amending a
// transaction. Amount is a decimal string in major units ("123.45"); clients
// send the magnitude and the kind decides the stored sign.
type TransactionRequest struct {
	AccountID           int64  `json:"account_id"`
	TransferToAccountID *int64 `json:"transfer_to_account_id,omitempty"`
	CategoryID          *int64 `json:"category_id,omitempty"`
	Amount              string `json:"amount"`
	Kind                string `json:"kind"`
	OccurredOn          string `json:"occurred_on"`
	Memo                string `json:"memo"`
}

func (req *TransactionRequest) toInput() (service.TransactionInput, error) {
	cents, err := money.ParseCents(req.Amount)
	if err != nil {
		return service.TransactionInput{}, err
	}

	kind := domain.TransactionKind(req.Kind)
	// Expenses are stored negative; accept a positive magnitude from clients.
	if kind == domain.TransactionKindExpense && cents > 0 {
		cents = -cents
	}

	occurredOn := time.Now().UTC()
	if req.OccurredOn != "" {
		occurredOn, err = time.Parse(occurredOnLayout, req.OccurredOn)
		if err != nil {
			return service.TransactionInput{}, util.ErrInvalidInput
		}
	}

	return service.TransactionInput{
		AccountID:           req.AccountID,
		TransferToAccountID: req.TransferToAccountID,
		CategoryID:          req.CategoryID,
		AmountCents:         cents,
		Kind:                kind,
		OccurredOn:          occurredOn,
		Memo:                req.Memo,
	}, nil
}

func transactionResponse(message string, transaction *domain.Transaction) map[string]interface{} {
	return map[string]interface{}{
		"message":        message,
		"transaction":    transaction,
		"amount_display": money.FormatCents(transaction.AmountCents, ""),
	}
}

// RecordTransaction handles the record transaction request.
// POST /transactions
func (h *TransactionHandler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	transaction, err := h.service.RecordTransaction(r.Context(), ownerID, input)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, transactionResponse("Transaction recorded", transaction))
}

// AmendTransaction handles the amend transaction request.
// PUT /transactions/{transactionID}
func (h *TransactionHandler) AmendTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	transactionID, err := pathID(r, "transactionID")
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	transaction, err := h.service.AmendTransaction(r.Context(), ownerID, transactionID, input)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, transactionResponse("Transaction amended", transaction))
}

// DeleteTransaction handles the delete transaction request.
// DELETE /transactions/{transactionID}
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	transactionID, err := pathID(r, "transactionID")
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	if err := h.service.DeleteTransaction(r.Context(), ownerID, transactionID); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{"message": "Transaction deleted"})
}

// ListTransactions handles the transaction history request.
// GET /transactions?account_id=&limit=&offset=
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := authenticatedUser(h.logger, w, r)
	if !ok {
		return
	}

	var accountID *int64
	if raw := r.URL.Query().Get("account_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondWithError(h.logger, w, util.ErrInvalidInput)
			return
		}
		accountID = &id
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	transactions, totalCount, err := h.service.ListTransactions(r.Context(), ownerID, accountID, limit, offset)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, types.PaginatedResponse[domain.Transaction]{
		Data:       transactions,
		Limit:      limit,
		Offset:     offset,
		TotalCount: totalCount,
	})
}

// internal/api/handler/bank.go
package handler

import (
	"log/slog"
	"net/http"

	"moneytrack/internal/bank"
	"moneytrack/internal/util"
)

// BankHandler handles routing number lookups.
type BankHandler struct {
	logger *slog.Logger
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(logger *slog.Logger) *BankHandler {
	return &BankHandler{logger: logger}
}

// Lookup handles the routing number lookup request.
// GET /banks/lookup?routing_number=
func (h *BankHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	routingNumber := r.URL.Query().Get("routing_number")
	if routingNumber == "" {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, bank.Lookup(routingNumber))
}

// Suggestions handles the routing number prefix suggestion request.
// GET /banks/suggestions?prefix=
func (h *BankHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	if len(prefix) < 3 {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"suggestions": bank.Suggestions(prefix),
	})
}

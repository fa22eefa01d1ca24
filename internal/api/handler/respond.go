// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"moneytrack/internal/api/middleware"
	"moneytrack/internal/util"
)

// DefaultTimeout bounds request handling at the router level.
const DefaultTimeout = 60 * time.Second

// respondWithJSON sends a JSON response.
func respondWithJSON(logger *slog.Logger, w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps service errors to HTTP statuses.
func respondWithError(logger *slog.Logger, w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidAmount):
		statusCode = http.StatusBadRequest
		message = "Invalid amount"
	case util.IsError(err, util.ErrSameAccountTransfer):
		statusCode = http.StatusBadRequest
		message = "Cannot transfer to the same account"
	case util.IsError(err, util.ErrCategoryKindMismatch):
		statusCode = http.StatusBadRequest
		message = "Category kind does not match transaction kind"
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = "Invalid input"
	case util.IsError(err, util.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		message = "Unauthorized"
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case util.IsError(err, util.ErrCrossUserReference):
		statusCode = http.StatusUnprocessableEntity
		message = "Referenced resource belongs to another user"
	case util.IsError(err, util.ErrDuplicateBudgetPeriod):
		statusCode = http.StatusConflict
		message = "A budget for this category and period already exists"
	case util.IsError(err, util.ErrDuplicateEntry):
		statusCode = http.StatusConflict
		message = "Duplicate entry"
	case util.IsError(err, util.ErrAccountInUse):
		statusCode = http.StatusConflict
		message = "Account still has transactions"
	case util.IsError(err, util.ErrCategoryInUse):
		statusCode = http.StatusConflict
		message = "Category still has transactions"
	case util.IsError(err, util.ErrConcurrentConflict):
		statusCode = http.StatusConflict
		message = "Concurrent update conflict, retry the request"
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	respondWithJSON(logger, w, statusCode, map[string]string{"error": message})
}

// authenticatedUser pulls the user ID the auth middleware stored. A missing
// ID means the route was wired outside the middleware, treated as 401.
func authenticatedUser(logger *slog.Logger, w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(logger, w, util.ErrUnauthorized)
		return 0, false
	}
	return id, true
}

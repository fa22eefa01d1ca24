// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"moneytrack/internal/api/handler"
	"moneytrack/internal/api/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Account     *handler.AccountHandler
	Transaction *handler.TransactionHandler
	Planning    *handler.PlanningHandler
	Report      *handler.ReportHandler
	Bank        *handler.BankHandler
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(h Handlers, jwtSecret string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Public routes
	r.Post("/auth/register", h.Auth.Register)
	r.Post("/auth/login", h.Auth.Login)
	r.Get("/banks/lookup", h.Bank.Lookup)
	r.Get("/banks/suggestions", h.Bank.Suggestions)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", h.Account.CreateAccount)
			r.Get("/", h.Account.ListAccounts)
			r.Get("/{accountID}", h.Account.GetAccount)
			r.Put("/{accountID}", h.Account.UpdateAccount)
			r.Delete("/{accountID}", h.Account.DeleteAccount)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", h.Transaction.RecordTransaction)
			r.Get("/", h.Transaction.ListTransactions)
			r.Put("/{transactionID}", h.Transaction.AmendTransaction)
			r.Delete("/{transactionID}", h.Transaction.DeleteTransaction)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", h.Planning.CreateCategory)
			r.Get("/", h.Planning.ListCategories)
			r.Delete("/{categoryID}", h.Planning.DeleteCategory)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Put("/", h.Planning.SetBudget)
			r.Get("/", h.Planning.ListBudgets)
			r.Delete("/", h.Planning.DeleteBudget)
		})

		r.Route("/investments", func(r chi.Router) {
			r.Post("/", h.Planning.AddInvestment)
			r.Get("/", h.Planning.ListInvestments)
			r.Put("/{investmentID}/price", h.Planning.UpdateInvestmentPrice)
			r.Delete("/{investmentID}", h.Planning.DeleteInvestment)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/dashboard", h.Report.Dashboard)
			r.Get("/budget-variance", h.Report.BudgetVariance)
			r.Get("/portfolio", h.Report.Portfolio)
			r.Get("/net-worth", h.Report.NetWorth)
			r.Get("/monthly-activity", h.Report.MonthlyActivity)
		})
	})

	return r
}

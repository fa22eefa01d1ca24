// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "moneytrack/internal/api"
	"moneytrack/internal/api/handler"
	"moneytrack/internal/config"
	"moneytrack/internal/repository"
	"moneytrack/internal/repository/postgres"
	"moneytrack/internal/service"
	"moneytrack/internal/util"
	"moneytrack/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository        repository.UserRepository
	AccountRepository     repository.AccountRepository
	CategoryRepository    repository.CategoryRepository
	TransactionRepository repository.TransactionRepository
	InvestmentRepository  repository.InvestmentRepository
	BudgetRepository      repository.BudgetRepository
	ReportRepository      repository.ReportRepository

	// Services
	UserService     service.UserService
	LedgerService   service.LedgerService
	PlanningService service.PlanningService
	ReportService   service.ReportService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Run database migrations
	if err := db.RunMigrations(app.Config.DB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Logger.Info("Database schema up to date.")

	// 4. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 5. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.AccountRepository = postgres.NewAccountRepository(app.DB)
	app.CategoryRepository = postgres.NewCategoryRepository(app.DB)
	app.TransactionRepository = postgres.NewTransactionRepository(app.DB)
	app.InvestmentRepository = postgres.NewInvestmentRepository(app.DB)
	app.BudgetRepository = postgres.NewBudgetRepository(app.DB)
	app.ReportRepository = postgres.NewReportRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 6. Initialize Services
	// Pass the concrete db.BeginTx, db.CommitTx, db.RollbackTx functions from pkg/db
	app.UserService = service.NewUserService(
		app.DB,
		app.DB,
		app.UserRepository,
		app.CategoryRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Config.JWTSecret,
		app.Config.JWTTTL,
	)
	app.LedgerService = service.NewLedgerService(
		app.DB,
		app.DB,
		app.AccountRepository,
		app.CategoryRepository,
		app.TransactionRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.PlanningService = service.NewPlanningService(
		app.DB,
		app.CategoryRepository,
		app.BudgetRepository,
		app.InvestmentRepository,
		app.TransactionRepository,
	)
	app.ReportService = service.NewReportService(
		app.DB,
		app.ReportRepository,
		app.AccountRepository,
		app.InvestmentRepository,
	)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(app.UserService, app.Logger),
		Account:     handler.NewAccountHandler(app.LedgerService, app.Logger),
		Transaction: handler.NewTransactionHandler(app.LedgerService, app.Logger),
		Planning:    handler.NewPlanningHandler(app.PlanningService, app.Logger),
		Report:      handler.NewReportHandler(app.ReportService, app.Logger),
		Bank:        handler.NewBankHandler(app.Logger),
	}
	app.HTTPHandler = router.NewRouter(handlers, app.Config.JWTSecret, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}

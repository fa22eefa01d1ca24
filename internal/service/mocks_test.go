// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"moneytrack/internal/domain"
	"moneytrack/internal/repository"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, q repository.DBExecutor, username string) (*domain.User, error) {
	args := m.Called(ctx, q, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, error) {
	args := m.Called(ctx, q, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockAccountRepository is a mock implementation of repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) CreateAccount(ctx context.Context, q repository.DBExecutor, account *domain.Account) error {
	args := m.Called(ctx, q, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetAccountByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Account, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByUser(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Account, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) LockAccounts(ctx context.Context, q repository.DBExecutor, ids []int64) (map[int64]*domain.Account, error) {
	args := m.Called(ctx, q, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceEffect(ctx context.Context, q repository.DBExecutor, accountID int64, deltaCents int64) error {
	args := m.Called(ctx, q, accountID, deltaCents)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, q repository.DBExecutor, account *domain.Account) error {
	args := m.Called(ctx, q, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, q repository.DBExecutor, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of repository.CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) CreateCategory(ctx context.Context, q repository.DBExecutor, category *domain.Category) error {
	args := m.Called(ctx, q, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) CreateCategories(ctx context.Context, q repository.DBExecutor, categories []*domain.Category) error {
	args := m.Called(ctx, q, categories)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetCategoryByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Category, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategoriesByUser(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Category, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, q repository.DBExecutor, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	args := m.Called(ctx, q, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetTransactionByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	args := m.Called(ctx, q, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, q repository.DBExecutor, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListTransactionsByUser(ctx context.Context, q repository.DBExecutor, userID int64, accountID *int64, limit, offset int) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, q, userID, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) CountByAccount(ctx context.Context, q repository.DBExecutor, accountID int64) (int64, error) {
	args := m.Called(ctx, q, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) CountByCategory(ctx context.Context, q repository.DBExecutor, categoryID int64) (int64, error) {
	args := m.Called(ctx, q, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

// MockInvestmentRepository is a mock implementation of repository.InvestmentRepository.
type MockInvestmentRepository struct {
	mock.Mock
}

func (m *MockInvestmentRepository) CreateInvestment(ctx context.Context, q repository.DBExecutor, investment *domain.Investment) error {
	args := m.Called(ctx, q, investment)
	return args.Error(0)
}

func (m *MockInvestmentRepository) GetInvestmentByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Investment, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Investment), args.Error(1)
}

func (m *MockInvestmentRepository) ListInvestmentsByUser(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Investment, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Investment), args.Error(1)
}

func (m *MockInvestmentRepository) UpdateCurrentPrice(ctx context.Context, q repository.DBExecutor, id int64, priceCents int64) error {
	args := m.Called(ctx, q, id, priceCents)
	return args.Error(0)
}

func (m *MockInvestmentRepository) DeleteInvestment(ctx context.Context, q repository.DBExecutor, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

// MockBudgetRepository is a mock implementation of repository.BudgetRepository.
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) CreateBudget(ctx context.Context, q repository.DBExecutor, budget *domain.MonthlyBudget) error {
	args := m.Called(ctx, q, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) GetBudget(ctx context.Context, q repository.DBExecutor, userID, categoryID int64, year, month int) (*domain.MonthlyBudget, error) {
	args := m.Called(ctx, q, userID, categoryID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyBudget), args.Error(1)
}

func (m *MockBudgetRepository) UpdateBudgetAmount(ctx context.Context, q repository.DBExecutor, id int64, amountCents int64) error {
	args := m.Called(ctx, q, id, amountCents)
	return args.Error(0)
}

func (m *MockBudgetRepository) ListBudgetsByPeriod(ctx context.Context, q repository.DBExecutor, userID int64, year, month int) ([]domain.MonthlyBudget, error) {
	args := m.Called(ctx, q, userID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyBudget), args.Error(1)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, q repository.DBExecutor, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

// MockReportRepository is a mock implementation of repository.ReportRepository.
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) TotalBalance(ctx context.Context, q repository.DBExecutor, userID int64) (int64, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportRepository) CountAccounts(ctx context.Context, q repository.DBExecutor, userID int64) (int, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).(int), args.Error(1)
}

func (m *MockReportRepository) RecentTransactions(ctx context.Context, q repository.DBExecutor, userID int64, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, q, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockReportRepository) ExpenseTotalsForMonth(ctx context.Context, q repository.DBExecutor, userID int64, year, month int) ([]domain.CategoryTotal, error) {
	args := m.Called(ctx, q, userID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryTotal), args.Error(1)
}

func (m *MockReportRepository) BudgetActivity(ctx context.Context, q repository.DBExecutor, userID int64, year, month int) ([]repository.BudgetActivityRow, error) {
	args := m.Called(ctx, q, userID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BudgetActivityRow), args.Error(1)
}

func (m *MockReportRepository) MonthlyActivity(ctx context.Context, q repository.DBExecutor, userID int64, year int) ([]domain.MonthlyActivity, error) {
	args := m.Called(ctx, q, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyActivity), args.Error(1)
}

// MockDBBeginner is a mock implementation of db.DBTxBeginner.
type MockDBBeginner struct {
	mock.Mock
}

func (m *MockDBBeginner) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	return &sqlx.Tx{}, args.Error(1)
}

// MockTxController is a mock implementation of db.TxController. Embedding
// MockDBExecutor lets it satisfy repository.DBExecutor too, matching the type
// assertion the services perform on the controller.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// internal/service/ledger_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"moneytrack/internal/bank"
	"moneytrack/internal/domain"
	"moneytrack/internal/repository"
	"moneytrack/internal/util"
	"moneytrack/pkg/db"
)

// TransactionInput carries the caller-supplied fields of a ledger entry.
type TransactionInput struct {
	AccountID           int64
	TransferToAccountID *int64
	CategoryID          *int64
	AmountCents         int64
	Kind                domain.TransactionKind
	OccurredOn          time.Time
	Memo                string
}

// AccountInput carries the caller-supplied fields of an account.
type AccountInput struct {
	Name          string
	Type          domain.AccountType
	BankName      string
	RoutingNumber string
	AccountNumber string
}

// LedgerService is the single place allowed to mutate account balances. Every
// balance-mutating operation runs as one database transaction: the ledger row
// write and the one or two balance updates commit or roll back together.
type LedgerService interface {
	CreateAccount(ctx context.Context, ownerID int64, input AccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, ownerID, accountID int64) (*domain.Account, error)
	ListAccounts(ctx context.Context, ownerID int64) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, ownerID, accountID int64, input AccountInput) (*domain.Account, error)
	DeleteAccount(ctx context.Context, ownerID, accountID int64) error

	RecordTransaction(ctx context.Context, ownerID int64, input TransactionInput) (*domain.Transaction, error)
	AmendTransaction(ctx context.Context, ownerID, transactionID int64, input TransactionInput) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, ownerID, transactionID int64) error
	ListTransactions(ctx context.Context, ownerID int64, accountID *int64, limit, offset int) ([]domain.Transaction, int64, error)
}

// ledgerService implements the LedgerService interface.
type ledgerService struct {
	dbBeginner      db.DBTxBeginner
	dbExecutor      repository.DBExecutor
	accountRepo     repository.AccountRepository
	categoryRepo    repository.CategoryRepository
	transactionRepo repository.TransactionRepository
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewLedgerService creates a new instance of LedgerService.
func NewLedgerService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	accountRepo repository.AccountRepository,
	categoryRepo repository.CategoryRepository,
	transactionRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) LedgerService {
	return &ledgerService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
	}
}

// CreateAccount creates a new account with a zero balance. The balance only
// ever changes through recorded transactions, so the invariant holds from the
// start. Routing numbers, when supplied, must pass the ABA checksum; a
// missing bank name is resolved from the routing table where possible.
func (s *ledgerService) CreateAccount(ctx context.Context, ownerID int64, input AccountInput) (*domain.Account, error) {
	if input.Name == "" || !domain.ValidAccountType(input.Type) {
		return nil, util.ErrInvalidInput
	}

	account := domain.NewAccount(ownerID, input.Name, input.Type)
	if err := applyBankDetails(account, input); err != nil {
		return nil, err
	}

	if err := s.accountRepo.CreateAccount(ctx, s.dbExecutor, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return account, nil
}

// GetAccount retrieves one of the owner's accounts.
func (s *ledgerService) GetAccount(ctx context.Context, ownerID, accountID int64) (*domain.Account, error) {
	return s.getOwnedAccount(ctx, s.dbExecutor, ownerID, accountID)
}

// ListAccounts retrieves all of the owner's accounts.
func (s *ledgerService) ListAccounts(ctx context.Context, ownerID int64) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, s.dbExecutor, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount changes account metadata. The balance is never written here.
func (s *ledgerService) UpdateAccount(ctx context.Context, ownerID, accountID int64, input AccountInput) (*domain.Account, error) {
	if input.Name == "" || !domain.ValidAccountType(input.Type) {
		return nil, util.ErrInvalidInput
	}

	account, err := s.getOwnedAccount(ctx, s.dbExecutor, ownerID, accountID)
	if err != nil {
		return nil, err
	}

	account.Name = input.Name
	account.Type = input.Type
	account.BankName = nil
	account.RoutingNumber = nil
	if err := applyBankDetails(account, input); err != nil {
		return nil, err
	}

	if err := s.accountRepo.UpdateAccount(ctx, s.dbExecutor, account); err != nil {
		return nil, fmt.Errorf("update account %d: %w", accountID, err)
	}
	return account, nil
}

// DeleteAccount removes an account. Deletion is disallowed while any
// transaction still references the account, so history never points at a
// missing account and no balance reversal is needed.
func (s *ledgerService) DeleteAccount(ctx context.Context, ownerID, accountID int64) error {
	if _, err := s.getOwnedAccount(ctx, s.dbExecutor, ownerID, accountID); err != nil {
		return err
	}

	count, err := s.transactionRepo.CountByAccount(ctx, s.dbExecutor, accountID)
	if err != nil {
		return fmt.Errorf("delete account %d: %w", accountID, err)
	}
	if count > 0 {
		return util.ErrAccountInUse
	}

	if err := s.accountRepo.DeleteAccount(ctx, s.dbExecutor, accountID); err != nil {
		return fmt.Errorf("delete account %d: %w", accountID, err)
	}
	return nil
}

// RecordTransaction validates and persists a new ledger entry, applying its
// balance effect(s) atomically.
func (s *ledgerService) RecordTransaction(ctx context.Context, ownerID int64, input TransactionInput) (*domain.Transaction, error) {
	transaction := domain.NewTransaction(ownerID, input.AccountID, input.AmountCents, input.Kind, input.CategoryID, input.TransferToAccountID, input.OccurredOn, input.Memo)
	if err := transaction.ValidateAmount(); err != nil {
		return nil, err
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("record transaction: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("record transaction: transaction controller does not implement DBExecutor")
	}

	if err := s.validateReferences(ctx, txExecutor, ownerID, transaction); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, fmt.Errorf("record transaction: %w", err)
	}
	if err := s.applyEffects(ctx, txExecutor, transaction.BalanceEffects()); err != nil {
		return nil, fmt.Errorf("record transaction: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("record transaction: failed to commit transaction: %w", err)
	}
	return transaction, nil
}

// AmendTransaction rewrites an existing ledger entry. The original balance
// effect is reversed first, then the new fields are validated and their
// effect applied — all within one database transaction, so the balance
// invariant holds after every edit no matter which fields changed.
func (s *ledgerService) AmendTransaction(ctx context.Context, ownerID, transactionID int64, input TransactionInput) (*domain.Transaction, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("amend transaction: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("amend transaction: transaction controller does not implement DBExecutor")
	}

	original, err := s.getOwnedTransaction(ctx, txExecutor, ownerID, transactionID)
	if err != nil {
		return nil, err
	}

	amended := domain.NewTransaction(ownerID, input.AccountID, input.AmountCents, input.Kind, input.CategoryID, input.TransferToAccountID, input.OccurredOn, input.Memo)
	amended.ID = original.ID
	amended.CreatedAt = original.CreatedAt
	if err := amended.ValidateAmount(); err != nil {
		return nil, err
	}

	if err := s.validateReferences(ctx, txExecutor, ownerID, amended); err != nil {
		return nil, err
	}

	// Reverse, then re-apply. Accounts were locked by validateReferences for
	// the new entry; lock any accounts only the original touched as well.
	if err := s.lockEffectAccounts(ctx, txExecutor, original.BalanceEffects()); err != nil {
		return nil, err
	}
	if err := s.applyEffects(ctx, txExecutor, original.ReverseEffects()); err != nil {
		return nil, fmt.Errorf("amend transaction: %w", err)
	}
	if err := s.applyEffects(ctx, txExecutor, amended.BalanceEffects()); err != nil {
		return nil, fmt.Errorf("amend transaction: %w", err)
	}

	if err := s.transactionRepo.UpdateTransaction(ctx, txExecutor, amended); err != nil {
		return nil, fmt.Errorf("amend transaction: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("amend transaction: failed to commit transaction: %w", err)
	}
	return amended, nil
}

// DeleteTransaction reverses a ledger entry's balance effect(s) and removes
// the row, atomically.
func (s *ledgerService) DeleteTransaction(ctx context.Context, ownerID, transactionID int64) error {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return fmt.Errorf("delete transaction: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("delete transaction: transaction controller does not implement DBExecutor")
	}

	transaction, err := s.getOwnedTransaction(ctx, txExecutor, ownerID, transactionID)
	if err != nil {
		return err
	}

	if err := s.lockEffectAccounts(ctx, txExecutor, transaction.BalanceEffects()); err != nil {
		return err
	}
	if err := s.applyEffects(ctx, txExecutor, transaction.ReverseEffects()); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if err := s.transactionRepo.DeleteTransaction(ctx, txExecutor, transactionID); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("delete transaction: failed to commit transaction: %w", err)
	}
	return nil
}

// ListTransactions retrieves a paginated history for the owner, optionally
// filtered to one account.
func (s *ledgerService) ListTransactions(ctx context.Context, ownerID int64, accountID *int64, limit, offset int) ([]domain.Transaction, int64, error) {
	if accountID != nil {
		if _, err := s.getOwnedAccount(ctx, s.dbExecutor, ownerID, *accountID); err != nil {
			return nil, 0, err
		}
	}
	transactions, totalCount, err := s.transactionRepo.ListTransactionsByUser(ctx, s.dbExecutor, ownerID, accountID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, totalCount, nil
}

// validateReferences locks the transaction's accounts and checks that every
// referenced entity exists and belongs to the owner. A transfer target owned
// by a different user is a cross-user reference; any other missing or
// foreign entity reads as not found. Income and expense entries require a
// category whose kind matches the entry's kind.
func (s *ledgerService) validateReferences(ctx context.Context, q repository.DBExecutor, ownerID int64, transaction *domain.Transaction) error {
	ids := []int64{transaction.AccountID}
	if transaction.TransferToAccountID != nil {
		ids = append(ids, *transaction.TransferToAccountID)
	}
	accounts, err := s.accountRepo.LockAccounts(ctx, q, ids)
	if err != nil {
		return err
	}

	source, ok := accounts[transaction.AccountID]
	if !ok || source.UserID != ownerID {
		return util.ErrNotFound
	}
	if transaction.TransferToAccountID != nil {
		target, ok := accounts[*transaction.TransferToAccountID]
		if !ok {
			return util.ErrNotFound
		}
		if target.UserID != ownerID {
			return util.ErrCrossUserReference
		}
	}

	if transaction.Kind == domain.TransactionKindTransfer {
		// Transfers carry no category.
		transaction.CategoryID = nil
		return nil
	}

	if transaction.CategoryID == nil {
		return util.ErrInvalidInput
	}
	category, err := s.categoryRepo.GetCategoryByID(ctx, q, *transaction.CategoryID)
	if err != nil {
		return err
	}
	if category.UserID != ownerID {
		return util.ErrNotFound
	}
	if !transaction.MatchesCategoryKind(category.Kind) {
		return util.ErrCategoryKindMismatch
	}
	return nil
}

// lockEffectAccounts row-locks every account an effect list touches.
// LockAccounts sorts ids, so repeated calls take locks in a consistent order.
func (s *ledgerService) lockEffectAccounts(ctx context.Context, q repository.DBExecutor, effects []domain.BalanceEffect) error {
	ids := make([]int64, 0, len(effects))
	for _, e := range effects {
		ids = append(ids, e.AccountID)
	}
	_, err := s.accountRepo.LockAccounts(ctx, q, ids)
	return err
}

func (s *ledgerService) applyEffects(ctx context.Context, q repository.DBExecutor, effects []domain.BalanceEffect) error {
	for _, e := range effects {
		if err := s.accountRepo.ApplyBalanceEffect(ctx, q, e.AccountID, e.DeltaCents); err != nil {
			return err
		}
	}
	return nil
}

func (s *ledgerService) getOwnedAccount(ctx context.Context, q repository.DBExecutor, ownerID, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.GetAccountByID(ctx, q, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != ownerID {
		return nil, util.ErrNotFound
	}
	return account, nil
}

func (s *ledgerService) getOwnedTransaction(ctx context.Context, q repository.DBExecutor, ownerID, transactionID int64) (*domain.Transaction, error) {
	transaction, err := s.transactionRepo.GetTransactionByID(ctx, q, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction.UserID != ownerID {
		return nil, util.ErrNotFound
	}
	return transaction, nil
}

// applyBankDetails validates and copies optional bank metadata onto an
// account, resolving the bank name from the routing table when absent and
// keeping only the last four digits of the account number.
func applyBankDetails(account *domain.Account, input AccountInput) error {
	if input.RoutingNumber != "" {
		if !bank.ValidRoutingNumber(input.RoutingNumber) {
			return util.ErrInvalidInput
		}
		routing := input.RoutingNumber
		account.RoutingNumber = &routing

		bankName := input.BankName
		if bankName == "" {
			if res := bank.Lookup(routing); res.Valid {
				bankName = res.BankName
			}
		}
		if bankName != "" {
			account.BankName = &bankName
		}
	} else if input.BankName != "" {
		bankName := input.BankName
		account.BankName = &bankName
	}

	if input.AccountNumber != "" {
		last4 := lastFourDigits(input.AccountNumber)
		if last4 != "" {
			account.AccountNumberLast4 = &last4
		}
	}
	return nil
}

func lastFourDigits(s string) string {
	digits := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits = append(digits, s[i])
		}
	}
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return string(digits)
}

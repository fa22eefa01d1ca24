// internal/domain/transaction.go
package domain

import (
	"time"

	"moneytrack/internal/util"
)

// TransactionKind defines the kind of a ledger transaction.
type TransactionKind string

const (
	TransactionKindIncome   TransactionKind = "income"
	TransactionKindExpense  TransactionKind = "expense"
	TransactionKindTransfer TransactionKind = "transfer"
)

// ValidTransactionKind reports whether k is one of the known kinds.
func ValidTransactionKind(k TransactionKind) bool {
	switch k {
	case TransactionKindIncome, TransactionKindExpense, TransactionKindTransfer:
		return true
	}
	return false
}

// Transaction is a single ledger entry.
//
// AmountCents is signed: income > 0, expense < 0, transfer > 0 (the magnitude
// moved). A transfer debits AccountID and credits TransferToAccountID by the
// same magnitude. Transfers carry no category; income and expense require a
// category whose kind matches the transaction kind.
type Transaction struct {
	ID                  int64           `db:"id" json:"id"`
	UserID              int64           `db:"user_id" json:"user_id"`
	AccountID           int64           `db:"account_id" json:"account_id"`
	TransferToAccountID *int64          `db:"transfer_to_account_id" json:"transfer_to_account_id,omitempty"`
	CategoryID          *int64          `db:"category_id" json:"category_id,omitempty"`
	AmountCents         int64           `db:"amount_cents" json:"amount_cents"`
	Kind                TransactionKind `db:"kind" json:"kind"`
	OccurredOn          time.Time       `db:"occurred_on" json:"occurred_on"`
	Memo                string          `db:"memo" json:"memo"`
	CreatedAt           time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at" json:"updated_at"`
}

// BalanceEffect is the signed delta a transaction applies to one account.
type BalanceEffect struct {
	AccountID  int64
	DeltaCents int64
}

// ValidateAmount enforces the sign rule for the transaction's kind.
// The amount must be non-zero in every case.
func (t *Transaction) ValidateAmount() error {
	if t.AmountCents == 0 {
		return util.ErrInvalidAmount
	}
	switch t.Kind {
	case TransactionKindIncome:
		if t.AmountCents < 0 {
			return util.ErrInvalidAmount
		}
	case TransactionKindExpense:
		if t.AmountCents > 0 {
			return util.ErrInvalidAmount
		}
	case TransactionKindTransfer:
		if t.AmountCents < 0 {
			return util.ErrInvalidAmount
		}
		if t.TransferToAccountID == nil {
			return util.ErrInvalidInput
		}
		if *t.TransferToAccountID == t.AccountID {
			return util.ErrSameAccountTransfer
		}
	default:
		return util.ErrInvalidInput
	}
	return nil
}

// BalanceEffects returns the per-account deltas this transaction applies.
// Income and expense amounts are already signed, so the delta is the amount
// itself. A transfer produces two opposite effects of equal magnitude.
func (t *Transaction) BalanceEffects() []BalanceEffect {
	if t.Kind == TransactionKindTransfer && t.TransferToAccountID != nil {
		return []BalanceEffect{
			{AccountID: t.AccountID, DeltaCents: -t.AmountCents},
			{AccountID: *t.TransferToAccountID, DeltaCents: t.AmountCents},
		}
	}
	return []BalanceEffect{{AccountID: t.AccountID, DeltaCents: t.AmountCents}}
}

// ReverseEffects returns the effects that undo this transaction.
func (t *Transaction) ReverseEffects() []BalanceEffect {
	effects := t.BalanceEffects()
	reversed := make([]BalanceEffect, len(effects))
	for i, e := range effects {
		reversed[i] = BalanceEffect{AccountID: e.AccountID, DeltaCents: -e.DeltaCents}
	}
	return reversed
}

// MatchesCategoryKind reports whether a category of the given kind may label
// this transaction. Transfers are exempt from the match.
func (t *Transaction) MatchesCategoryKind(kind CategoryKind) bool {
	switch t.Kind {
	case TransactionKindIncome:
		return kind == CategoryKindIncome
	case TransactionKindExpense:
		return kind == CategoryKindExpense || kind == CategoryKindInvestment
	case TransactionKindTransfer:
		return true
	}
	return false
}

// NewTransaction creates a new Transaction instance.
func NewTransaction(userID, accountID int64, amountCents int64, kind TransactionKind, categoryID, transferTo *int64, occurredOn time.Time, memo string) *Transaction {
	now := time.Now().UTC()
	return &Transaction{
		UserID:              userID,
		AccountID:           accountID,
		TransferToAccountID: transferTo,
		CategoryID:          categoryID,
		AmountCents:         amountCents,
		Kind:                kind,
		OccurredOn:          occurredOn,
		Memo:                memo,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// internal/domain/account.go
package domain

import "time"

// AccountType classifies an account.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeCredit     AccountType = "credit"
)

// ValidAccountType reports whether t is one of the known account types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeInvestment, AccountTypeCredit:
		return true
	}
	return false
}

// Account is a user-owned account with a cached running balance.
//
// BalanceCents is a derived value: it always equals the signed sum of the
// balance effects of every existing transaction referencing this account.
// Only the ledger service mutates it, and only inside a database transaction
// together with the transaction row write that caused the change.
type Account struct {
	ID                 int64       `db:"id" json:"id"`
	UserID             int64       `db:"user_id" json:"user_id"`
	Name               string      `db:"name" json:"name"`
	Type               AccountType `db:"type" json:"type"`
	BalanceCents       int64       `db:"balance_cents" json:"balance_cents"`
	BankName           *string     `db:"bank_name" json:"bank_name,omitempty"`
	RoutingNumber      *string     `db:"routing_number" json:"routing_number,omitempty"`
	AccountNumberLast4 *string     `db:"account_number_last4" json:"account_number_last4,omitempty"`
	CreatedAt          time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time   `db:"updated_at" json:"updated_at"`
}

// NewAccount creates an account with a zero balance.
func NewAccount(userID int64, name string, accountType AccountType) *Account {
	now := time.Now().UTC()
	return &Account{
		UserID:    userID,
		Name:      name,
		Type:      accountType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// internal/domain/budget.go
package domain

import "time"

// MonthlyBudget is a budgeted amount for one category in one (year, month)
// period. At most one row may exist per (user, category, period).
type MonthlyBudget struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	CategoryID  int64     `db:"category_id" json:"category_id"`
	Year        int       `db:"year" json:"year"`
	Month       int       `db:"month" json:"month"`
	AmountCents int64     `db:"amount_cents" json:"amount_cents"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ValidPeriod reports whether the (year, month) pair is plausible.
func ValidPeriod(year, month int) bool {
	return year >= 1970 && year <= 9999 && month >= 1 && month <= 12
}

// NewMonthlyBudget creates a new MonthlyBudget instance.
func NewMonthlyBudget(userID, categoryID int64, year, month int, amountCents int64) *MonthlyBudget {
	now := time.Now().UTC()
	return &MonthlyBudget{
		UserID:      userID,
		CategoryID:  categoryID,
		Year:        year,
		Month:       month,
		AmountCents: amountCents,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

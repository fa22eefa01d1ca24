// internal/domain/category.go
package domain

import "time"

// CategoryKind classifies a category. The kind is immutable once transactions
// reference the category, so historical aggregates stay meaningful.
type CategoryKind string

const (
	CategoryKindIncome     CategoryKind = "income"
	CategoryKindExpense    CategoryKind = "expense"
	CategoryKindInvestment CategoryKind = "investment"
)

// ValidCategoryKind reports whether k is one of the known kinds.
func ValidCategoryKind(k CategoryKind) bool {
	switch k {
	case CategoryKindIncome, CategoryKindExpense, CategoryKindInvestment:
		return true
	}
	return false
}

// Category is a user-owned transaction label.
type Category struct {
	ID        int64        `db:"id" json:"id"`
	UserID    int64        `db:"user_id" json:"user_id"`
	Name      string       `db:"name" json:"name"`
	Kind      CategoryKind `db:"kind" json:"kind"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
}

// NewCategory creates a new Category instance.
func NewCategory(userID int64, name string, kind CategoryKind) *Category {
	return &Category{
		UserID:    userID,
		Name:      name,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}
}

// DefaultCategories returns the categories seeded for every new user.
func DefaultCategories(userID int64) []*Category {
	seed := []struct {
		name string
		kind CategoryKind
	}{
		{"Salary", CategoryKindIncome},
		{"Freelance", CategoryKindIncome},
		{"Groceries", CategoryKindExpense},
		{"Rent", CategoryKindExpense},
		{"Utilities", CategoryKindExpense},
		{"Transportation", CategoryKindExpense},
		{"Entertainment", CategoryKindExpense},
		{"Healthcare", CategoryKindExpense},
		{"Stocks", CategoryKindInvestment},
		{"Bonds", CategoryKindInvestment},
	}
	categories := make([]*Category, 0, len(seed))
	for _, s := range seed {
		categories = append(categories, NewCategory(userID, s.name, s.kind))
	}
	return categories
}

// internal/repository/category_repo.go
package repository

import (
	"context"

	"moneytrack/internal/domain"
)

// CategoryRepository defines the interface for category data operations.
type CategoryRepository interface {
	// CreateCategory adds a new category using the provided DBExecutor.
	CreateCategory(ctx context.Context, q DBExecutor, category *domain.Category) error
	// CreateCategories inserts several categories, used to seed defaults at
	// registration.
	CreateCategories(ctx context.Context, q DBExecutor, categories []*domain.Category) error
	// GetCategoryByID retrieves a category by its ID.
	GetCategoryByID(ctx context.Context, q DBExecutor, id int64) (*domain.Category, error)
	// ListCategoriesByUser retrieves a user's categories ordered by name.
	ListCategoriesByUser(ctx context.Context, q DBExecutor, userID int64) ([]domain.Category, error)
	// DeleteCategory removes a category row.
	DeleteCategory(ctx context.Context, q DBExecutor, id int64) error
}

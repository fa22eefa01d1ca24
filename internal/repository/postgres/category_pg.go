// internal/repository/postgres/category_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"moneytrack/internal/domain"
	"moneytrack/internal/repository"
	"moneytrack/internal/util"
)

// CategoryRepository implements repository.CategoryRepository for PostgreSQL.
type CategoryRepository struct{}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) repository.CategoryRepository {
	return &CategoryRepository{}
}

// CreateCategory inserts a new category using the provided DBExecutor.
func (r *CategoryRepository) CreateCategory(ctx context.Context, q repository.DBExecutor, category *domain.Category) error {
	query := `INSERT INTO categories (user_id, name, kind, created_at)
              VALUES ($1, $2, $3, $4) RETURNING id`
	err := q.QueryRowContext(ctx, query, category.UserID, category.Name, category.Kind, category.CreatedAt).Scan(&category.ID)
	if err != nil {
		if mapped := translateError(err, util.ErrDuplicateEntry); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// CreateCategories inserts several categories, used for default seeding.
func (r *CategoryRepository) CreateCategories(ctx context.Context, q repository.DBExecutor, categories []*domain.Category) error {
	for _, category := range categories {
		if err := r.CreateCategory(ctx, q, category); err != nil {
			return err
		}
	}
	return nil
}

// GetCategoryByID retrieves a category by its ID.
func (r *CategoryRepository) GetCategoryByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Category, error) {
	var category domain.Category
	query := `SELECT id, user_id, name, kind, created_at FROM categories WHERE id = $1`
	err := q.GetContext(ctx, &category, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category by ID %d: %w", id, err)
	}
	return &category, nil
}

// ListCategoriesByUser retrieves a user's categories ordered by name.
func (r *CategoryRepository) ListCategoriesByUser(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Category, error) {
	categories := []domain.Category{}
	query := `SELECT id, user_id, name, kind, created_at FROM categories WHERE user_id = $1 ORDER BY name`
	if err := q.SelectContext(ctx, &categories, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list categories for user %d: %w", userID, err)
	}
	return categories, nil
}

// DeleteCategory removes a category row.
func (r *CategoryRepository) DeleteCategory(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for category %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

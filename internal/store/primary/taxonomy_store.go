package primary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"taxo/internal/models"
	"taxo/internal/store"
)

// --- Category Management ---

func (s *StoreImpl) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (name, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	now := time.Now()
	err := s.db.QueryRow(ctx, query,
		category.Name, category.Slug, now, now,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category with slug '%s' already exists: %w", category.Slug, store.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (s *StoreImpl) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM categories WHERE id = $1`
	category := &models.Category{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&category.ID, &category.Name, &category.Slug, &category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category by id %d: %w", id, err)
	}
	return category, nil
}

func (s *StoreImpl) ListCategories(ctx context.Context) ([]models.Category, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM categories ORDER BY name ASC`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *StoreImpl) CountSubcategories(ctx context.Context, categoryID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM subcategories WHERE category_id = $1`
	var count int64
	if err := s.db.QueryRow(ctx, query, categoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count subcategories for category %d: %w", categoryID, err)
	}
	return count, nil
}

// DeleteCategoryCascade removes the category and clears both taxonomy fields
// on every product whose denormalized category text matches the node name.
// The no-children precondition is re-checked inside the transaction so a
// concurrently inserted child aborts the whole operation.
func (s *StoreImpl) DeleteCategoryCascade(ctx context.Context, category *models.Category) (int64, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin category delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var children int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM subcategories WHERE category_id = $1`, category.ID).Scan(&children); err != nil {
		return 0, fmt.Errorf("failed to re-check subcategories for category %d: %w", category.ID, err)
	}
	if children > 0 {
		return 0, fmt.Errorf("category %d gained subcategories during delete: %w", category.ID, store.ErrConflict)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, category.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete category %d: %w", category.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return 0, store.ErrNotFound
	}

	cascade := `
		UPDATE products
		SET category = NULL, subcategory = NULL, updated_at = $2
		WHERE LOWER(TRIM(category)) = LOWER(TRIM($1))`
	cascadeTag, err := tx.Exec(ctx, cascade, category.Name, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to clear product references to category '%s': %w", category.Name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit category delete transaction: %w", err)
	}
	return cascadeTag.RowsAffected(), nil
}

// --- Subcategory Management ---

func (s *StoreImpl) CreateSubcategory(ctx context.Context, subcategory *models.Subcategory) error {
	query := `
		INSERT INTO subcategories (category_id, name, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	now := time.Now()
	err := s.db.QueryRow(ctx, query,
		subcategory.CategoryID, subcategory.Name, subcategory.Slug, now, now,
	).Scan(&subcategory.ID, &subcategory.CreatedAt, &subcategory.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("subcategory with slug '%s' already exists under category %d: %w",
				subcategory.Slug, subcategory.CategoryID, store.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert subcategory: %w", err)
	}
	return nil
}

func (s *StoreImpl) GetSubcategory(ctx context.Context, id int64) (*models.Subcategory, error) {
	query := `SELECT id, category_id, name, slug, created_at, updated_at FROM subcategories WHERE id = $1`
	sub := &models.Subcategory{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&sub.ID, &sub.CategoryID, &sub.Name, &sub.Slug, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subcategory by id %d: %w", id, err)
	}
	return sub, nil
}

func (s *StoreImpl) ListSubcategories(ctx context.Context) ([]models.Subcategory, error) {
	query := `SELECT id, category_id, name, slug, created_at, updated_at FROM subcategories ORDER BY category_id ASC, name ASC`
	return s.querySubcategories(ctx, query)
}

func (s *StoreImpl) ListSubcategoriesByCategory(ctx context.Context, categoryID int64) ([]models.Subcategory, error) {
	query := `SELECT id, category_id, name, slug, created_at, updated_at FROM subcategories WHERE category_id = $1 ORDER BY name ASC`
	return s.querySubcategories(ctx, query, categoryID)
}

func (s *StoreImpl) querySubcategories(ctx context.Context, query string, args ...any) ([]models.Subcategory, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}
	defer rows.Close()

	var subs []models.Subcategory
	for rows.Next() {
		var sub models.Subcategory
		if err := rows.Scan(&sub.ID, &sub.CategoryID, &sub.Name, &sub.Slug, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subcategory row: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// DeleteSubcategoryCascade removes the subcategory and clears only the
// subcategory text on products matching both the owning category name and the
// subcategory name; the category field is untouched.
func (s *StoreImpl) DeleteSubcategoryCascade(ctx context.Context, category *models.Category, subcategory *models.Subcategory) (int64, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin subcategory delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cmdTag, err := tx.Exec(ctx, `DELETE FROM subcategories WHERE id = $1`, subcategory.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete subcategory %d: %w", subcategory.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return 0, store.ErrNotFound
	}

	cascade := `
		UPDATE products
		SET subcategory = NULL, updated_at = $3
		WHERE LOWER(TRIM(category)) = LOWER(TRIM($1))
		  AND LOWER(TRIM(subcategory)) = LOWER(TRIM($2))`
	cascadeTag, err := tx.Exec(ctx, cascade, category.Name, subcategory.Name, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to clear product references to subcategory '%s': %w", subcategory.Name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit subcategory delete transaction: %w", err)
	}
	return cascadeTag.RowsAffected(), nil
}

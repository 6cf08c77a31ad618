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

const productColumns = `id, name, brand, category, subcategory, created_at, updated_at`

func scanProduct(row pgx.Row, dest *models.Product) error {
	return row.Scan(
		&dest.ID,
		&dest.Name,
		&dest.Brand,
		&dest.Category,
		&dest.Subcategory,
		&dest.CreatedAt,
		&dest.UpdatedAt,
	)
}

func (s *StoreImpl) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, brand, category, subcategory, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	now := time.Now()
	err := s.db.QueryRow(ctx, query,
		product.Name, product.Brand, product.Category, product.Subcategory, now, now,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (s *StoreImpl) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	product := &models.Product{}
	if err := scanProduct(s.db.QueryRow(ctx, query, id), product); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by id %d: %w", id, err)
	}
	return product, nil
}

func (s *StoreImpl) GetProductsByIDs(ctx context.Context, ids []int64) ([]*models.Product, error) {
	if len(ids) == 0 {
		return []*models.Product{}, nil
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1) ORDER BY id ASC`
	rows, err := s.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get products by ids: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p := &models.Product{}
		if err := scanProduct(rows, p); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *StoreImpl) ListProducts(ctx context.Context, limit, offset int, uncategorizedOnly bool) ([]*models.Product, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if uncategorizedOnly {
		query += ` WHERE category IS NULL`
	}
	query += ` ORDER BY name ASC LIMIT $1 OFFSET $2`

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p := &models.Product{}
		if err := scanProduct(rows, p); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *StoreImpl) ListUncategorizedIDs(ctx context.Context, limit int) ([]int64, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT id FROM products WHERE category IS NULL ORDER BY id ASC LIMIT $1`
	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list uncategorized product ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *StoreImpl) UpdateProductTaxonomy(ctx context.Context, productID int64, category, subcategory *string) error {
	query := `
		UPDATE products
		SET category = $2, subcategory = $3, updated_at = $4
		WHERE id = $1`
	cmdTag, err := s.db.Exec(ctx, query, productID, category, subcategory, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update taxonomy for product %d: %w", productID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

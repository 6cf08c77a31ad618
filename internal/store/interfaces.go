package store

import (
	"context"

	"github.com/hibiken/asynq"

	"taxo/internal/models"
)

// --- Provider Status ---

type ProviderStatus int

const (
	ProviderStatusUnknown ProviderStatus = iota
	ProviderStatusActive
	ProviderStatusDisabled // not configured or explicitly disabled
)

// --- Job Client ---

type JobClient interface {
	Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	EnqueueCategorizeBatch(ctx context.Context, productIDs []int64) (string, error)
	Close() error
}

// --- Taxonomy Store ---

// TaxonomyStore persists the category/subcategory tree. Implementations must
// enforce slug uniqueness (global for categories, per category_id for
// subcategories) and surface violations as ErrDuplicate.
type TaxonomyStore interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CountSubcategories(ctx context.Context, categoryID int64) (int64, error)
	// DeleteCategoryCascade deletes the category and clears both taxonomy
	// fields on every product whose category text matches the node name,
	// returning the affected product count. The no-children precondition is
	// re-checked inside the same transaction as the delete and cascade, so a
	// concurrently created child makes the whole operation fail with
	// ErrConflict instead of orphaning it.
	DeleteCategoryCascade(ctx context.Context, category *models.Category) (int64, error)

	CreateSubcategory(ctx context.Context, subcategory *models.Subcategory) error
	GetSubcategory(ctx context.Context, id int64) (*models.Subcategory, error)
	ListSubcategories(ctx context.Context) ([]models.Subcategory, error)
	ListSubcategoriesByCategory(ctx context.Context, categoryID int64) ([]models.Subcategory, error)
	// DeleteSubcategoryCascade deletes the subcategory and clears only the
	// subcategory text on products matching both the owning category name and
	// the subcategory name, returning the affected product count.
	DeleteSubcategoryCascade(ctx context.Context, category *models.Category, subcategory *models.Subcategory) (int64, error)

	Ping(ctx context.Context) error
}

// --- Product Store ---

type ProductStore interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	GetProductsByIDs(ctx context.Context, ids []int64) ([]*models.Product, error)
	ListProducts(ctx context.Context, limit, offset int, uncategorizedOnly bool) ([]*models.Product, error)
	ListUncategorizedIDs(ctx context.Context, limit int) ([]int64, error)
	UpdateProductTaxonomy(ctx context.Context, productID int64, category, subcategory *string) error
}

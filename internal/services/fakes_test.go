package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"taxo/internal/models"
	"taxo/internal/store"
)

// fakeStore is an in-memory TaxonomyStore + ProductStore with the same
// observable semantics as the Postgres implementation, including the
// case/trim-insensitive cascade matching.
type fakeStore struct {
	categories    map[int64]*models.Category
	subcategories map[int64]*models.Subcategory
	products      map[int64]*models.Product
	nextID        int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		categories:    make(map[int64]*models.Category),
		subcategories: make(map[int64]*models.Subcategory),
		products:      make(map[int64]*models.Product),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

var _ store.TaxonomyStore = (*fakeStore)(nil)
var _ store.ProductStore = (*fakeStore)(nil)

// --- TaxonomyStore ---

func (f *fakeStore) CreateCategory(ctx context.Context, c *models.Category) error {
	for _, existing := range f.categories {
		if existing.Slug == c.Slug {
			return fmt.Errorf("slug '%s': %w", c.Slug, store.ErrDuplicate)
		}
	}
	c.ID = f.id()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f *fakeStore) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	for _, c := range f.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) CountSubcategories(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	for _, s := range f.subcategories {
		if s.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) DeleteCategoryCascade(ctx context.Context, category *models.Category) (int64, error) {
	n, _ := f.CountSubcategories(ctx, category.ID)
	if n > 0 {
		return 0, store.ErrConflict
	}
	if _, ok := f.categories[category.ID]; !ok {
		return 0, store.ErrNotFound
	}
	delete(f.categories, category.ID)

	var affected int64
	for _, p := range f.products {
		if p.Category != nil && models.NameEquals(*p.Category, category.Name) {
			p.Category = nil
			p.Subcategory = nil
			affected++
		}
	}
	return affected, nil
}

func (f *fakeStore) CreateSubcategory(ctx context.Context, s *models.Subcategory) error {
	for _, existing := range f.subcategories {
		if existing.CategoryID == s.CategoryID && existing.Slug == s.Slug {
			return fmt.Errorf("slug '%s': %w", s.Slug, store.ErrDuplicate)
		}
	}
	s.ID = f.id()
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	f.subcategories[s.ID] = &cp
	return nil
}

func (f *fakeStore) GetSubcategory(ctx context.Context, id int64) (*models.Subcategory, error) {
	s, ok := f.subcategories[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) ListSubcategories(ctx context.Context) ([]models.Subcategory, error) {
	var out []models.Subcategory
	for _, s := range f.subcategories {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CategoryID != out[j].CategoryID {
			return out[i].CategoryID < out[j].CategoryID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (f *fakeStore) ListSubcategoriesByCategory(ctx context.Context, categoryID int64) ([]models.Subcategory, error) {
	all, _ := f.ListSubcategories(ctx)
	var out []models.Subcategory
	for _, s := range all {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteSubcategoryCascade(ctx context.Context, category *models.Category, subcategory *models.Subcategory) (int64, error) {
	if _, ok := f.subcategories[subcategory.ID]; !ok {
		return 0, store.ErrNotFound
	}
	delete(f.subcategories, subcategory.ID)

	var affected int64
	for _, p := range f.products {
		if p.Category != nil && models.NameEquals(*p.Category, category.Name) &&
			p.Subcategory != nil && models.NameEquals(*p.Subcategory, subcategory.Name) {
			p.Subcategory = nil
			affected++
		}
	}
	return affected, nil
}

func (f *fakeStore) Ping(ctx context.Context) error { return nil }

// --- ProductStore ---

func (f *fakeStore) CreateProduct(ctx context.Context, p *models.Product) error {
	p.ID = f.id()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeStore) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) GetProductsByIDs(ctx context.Context, ids []int64) ([]*models.Product, error) {
	var out []*models.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStore) ListProducts(ctx context.Context, limit, offset int, uncategorizedOnly bool) ([]*models.Product, error) {
	var out []*models.Product
	for _, p := range f.products {
		if uncategorizedOnly && p.Category != nil {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) ListUncategorizedIDs(ctx context.Context, limit int) ([]int64, error) {
	var ids []int64
	for id, p := range f.products {
		if p.Category == nil {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (f *fakeStore) UpdateProductTaxonomy(ctx context.Context, productID int64, category, subcategory *string) error {
	p, ok := f.products[productID]
	if !ok {
		return store.ErrNotFound
	}
	p.Category = category
	p.Subcategory = subcategory
	p.UpdatedAt = time.Now()
	return nil
}

// --- test data helpers ---

func (f *fakeStore) seedCategory(name, slug string) *models.Category {
	c := &models.Category{Name: name, Slug: slug}
	_ = f.CreateCategory(context.Background(), c)
	return c
}

func (f *fakeStore) seedSubcategory(categoryID int64, name, slug string) *models.Subcategory {
	s := &models.Subcategory{CategoryID: categoryID, Name: name, Slug: slug}
	_ = f.CreateSubcategory(context.Background(), s)
	return s
}

func (f *fakeStore) seedProduct(name string, category, subcategory *string) *models.Product {
	p := &models.Product{Name: name, Category: category, Subcategory: subcategory}
	_ = f.CreateProduct(context.Background(), p)
	return p
}

func strptr(s string) *string { return &s }

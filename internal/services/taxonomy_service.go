package services

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"taxo/internal/models"
	"taxo/internal/store"
	"taxo/pkg/slug"
)

// TaxonomyService guards mutations of the category/subcategory tree. Because
// products reference taxonomy nodes by denormalized text, deletions must
// cascade into product records; creations must keep slugs unique at their
// scope.
type TaxonomyService struct {
	taxonomyStore store.TaxonomyStore
}

func NewTaxonomyService(taxonomyStore store.TaxonomyStore) *TaxonomyService {
	return &TaxonomyService{taxonomyStore: taxonomyStore}
}

// CreateCategory creates a category from an explicit user-chosen name. A name
// that slugs to nothing is rejected; a slug collision is a hard error, never
// auto-deduplicated, because the user picked this exact name.
func (s *TaxonomyService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	sl := slug.Make(name)
	if sl == "" {
		return nil, fmt.Errorf("category name '%s' produces an empty slug: %w", name, models.ErrValidation)
	}

	category := &models.Category{Name: name, Slug: sl}
	if err := s.taxonomyStore.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("category slug '%s' is taken: %w", sl, models.ErrDuplicate)
		}
		return nil, err
	}
	log.Infof("Created category '%s' (slug %s, id %d)", category.Name, category.Slug, category.ID)
	return category, nil
}

// CreateSubcategory creates a subcategory under categoryID from an explicit
// user-chosen name. Slug uniqueness is scoped to the owning category.
func (s *TaxonomyService) CreateSubcategory(ctx context.Context, categoryID int64, name string) (*models.Subcategory, error) {
	sl := slug.Make(name)
	if sl == "" {
		return nil, fmt.Errorf("subcategory name '%s' produces an empty slug: %w", name, models.ErrValidation)
	}
	if _, err := s.taxonomyStore.GetCategory(ctx, categoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("category %d: %w", categoryID, models.ErrNotFound)
		}
		return nil, err
	}

	subcategory := &models.Subcategory{CategoryID: categoryID, Name: name, Slug: sl}
	if err := s.taxonomyStore.CreateSubcategory(ctx, subcategory); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("subcategory slug '%s' is taken under category %d: %w", sl, categoryID, models.ErrDuplicate)
		}
		return nil, err
	}
	log.Infof("Created subcategory '%s' (slug %s, id %d) under category %d",
		subcategory.Name, subcategory.Slug, subcategory.ID, categoryID)
	return subcategory, nil
}

// CreateSuggestedSubcategory creates a subcategory from an AI-suggested name.
// Since the name was not an explicit user choice, a slug collision is
// resolved by auto-suffixing instead of rejection.
func (s *TaxonomyService) CreateSuggestedSubcategory(ctx context.Context, categoryID int64, name string) (*models.Subcategory, error) {
	if slug.Make(name) == "" {
		return nil, fmt.Errorf("suggested subcategory name '%s' produces an empty slug: %w", name, models.ErrValidation)
	}
	if _, err := s.taxonomyStore.GetCategory(ctx, categoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("category %d: %w", categoryID, models.ErrNotFound)
		}
		return nil, err
	}

	siblings, err := s.taxonomyStore.ListSubcategoriesByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sibling subcategories: %w", err)
	}
	sibs := make([]slug.Sibling, len(siblings))
	for i, sib := range siblings {
		sibs[i] = slug.Sibling{CategoryID: sib.CategoryID, Slug: sib.Slug}
	}

	subcategory := &models.Subcategory{
		CategoryID: categoryID,
		Name:       name,
		Slug:       slug.UniqueWithin(name, sibs, categoryID),
	}
	if err := s.taxonomyStore.CreateSubcategory(ctx, subcategory); err != nil {
		return nil, err
	}
	log.Infof("Created suggested subcategory '%s' (slug %s, id %d) under category %d",
		subcategory.Name, subcategory.Slug, subcategory.ID, categoryID)
	return subcategory, nil
}

// DeleteCategory deletes a category with zero child subcategories and clears
// both taxonomy fields on every product referencing it by name. Returns the
// number of affected products. A category with children is rejected with no
// side effects; no partial cascade.
func (s *TaxonomyService) DeleteCategory(ctx context.Context, id int64) (int64, error) {
	category, err := s.taxonomyStore.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, fmt.Errorf("category %d: %w", id, models.ErrNotFound)
		}
		return 0, err
	}

	children, err := s.taxonomyStore.CountSubcategories(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to count subcategories of category %d: %w", id, err)
	}
	if children > 0 {
		return 0, fmt.Errorf("category '%s' has %d subcategories: %w", category.Name, children, models.ErrHasChildren)
	}

	affected, err := s.taxonomyStore.DeleteCategoryCascade(ctx, category)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return 0, fmt.Errorf("category '%s': %w", category.Name, models.ErrHasChildren)
		}
		return 0, err
	}
	log.Infof("Deleted category '%s'; cleared taxonomy on %d products", category.Name, affected)
	return affected, nil
}

// DeleteSubcategory deletes a subcategory and clears only the subcategory
// field on products referencing it under its owning category; the category
// field is untouched. Returns the number of affected products.
func (s *TaxonomyService) DeleteSubcategory(ctx context.Context, id int64) (int64, error) {
	subcategory, err := s.taxonomyStore.GetSubcategory(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, fmt.Errorf("subcategory %d: %w", id, models.ErrNotFound)
		}
		return 0, err
	}
	category, err := s.taxonomyStore.GetCategory(ctx, subcategory.CategoryID)
	if err != nil {
		return 0, fmt.Errorf("failed to load owning category %d: %w", subcategory.CategoryID, err)
	}

	affected, err := s.taxonomyStore.DeleteSubcategoryCascade(ctx, category, subcategory)
	if err != nil {
		return 0, err
	}
	log.Infof("Deleted subcategory '%s' under '%s'; cleared subcategory on %d products",
		subcategory.Name, category.Name, affected)
	return affected, nil
}

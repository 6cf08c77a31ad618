package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"taxo/internal/models"
	"taxo/internal/rules"
	"taxo/internal/store"
	"taxo/pkg/categorizer"
)

// CategorizationService orchestrates batch product categorization: a
// deterministic rule pass first, then a single AI call for the leftovers.
type CategorizationService struct {
	Categorizer   categorizer.ProductCategorizer
	taxonomyStore store.TaxonomyStore
	productStore  store.ProductStore
}

func NewCategorizationService(cat categorizer.ProductCategorizer, taxonomyStore store.TaxonomyStore, productStore store.ProductStore) *CategorizationService {
	return &CategorizationService{
		Categorizer:   cat,
		taxonomyStore: taxonomyStore,
		productStore:  productStore,
	}
}

// Categorize classifies every product against the supplied taxonomy
// snapshot, index-preserving. Products resolved by the rule table never reach
// the AI adapter; everything else goes into one adapter call. If that call
// degrades, the unresolved products keep empty suggestion lists and stay
// unclassified; this method never fails a batch.
func (s *CategorizationService) Categorize(ctx context.Context, products []models.Product, categories []models.Category, subcategories []models.Subcategory) []models.CategorizedProduct {
	results := make([]models.CategorizedProduct, len(products))

	var aiIndexes []int
	var aiNames []string
	for i, p := range products {
		results[i] = models.CategorizedProduct{Product: p}

		rule, ok := rules.Match(p.Name)
		if !ok || rule.Confidence() < categorizer.AutoPopulateThreshold {
			aiIndexes = append(aiIndexes, i)
			aiNames = append(aiNames, p.Name)
			continue
		}

		reason := fmt.Sprintf("matched keyword rule (priority %d)", rule.Priority)
		catSugs := categorizer.RankCategories([]categorizer.CategoryGuess{
			{Name: rule.Category, Confidence: rule.Confidence(), Reason: reason},
		}, categories)
		if len(catSugs) == 0 {
			// The rule's target category is not a persisted node; the rule
			// cannot finalize, so the product falls through to the AI pass.
			log.Debugf("Rule target category '%s' not in taxonomy; deferring '%s' to AI", rule.Category, p.Name)
			aiIndexes = append(aiIndexes, i)
			aiNames = append(aiNames, p.Name)
			continue
		}
		subSugs := categorizer.RankSubcategories([]categorizer.SubcategoryGuess{
			{Name: rule.Subcategory, Confidence: rule.Confidence(), Reason: reason},
		}, catSugs[0].Category, subcategories)

		sel := categorizer.Decide(catSugs, subSugs)
		results[i].CategorySuggestions = catSugs
		results[i].SubcategorySuggestions = subSugs
		results[i].SelectedCategory = sel.Category
		results[i].SelectedSubcategory = sel.Subcategory
	}

	if len(aiNames) == 0 {
		return results
	}

	batch := s.Categorizer.CategorizeBatch(ctx, aiNames, categories, subcategories)
	if !batch.OK {
		// Degraded: the affected products stay unclassified with empty
		// suggestion lists; rule-resolved results are unaffected.
		log.Warnf("AI categorization degraded; %d products left unclassified", len(aiNames))
		return results
	}

	for k, idx := range aiIndexes {
		guesses := batch.Guesses[k]
		catSugs := categorizer.RankCategories(guesses.Categories, categories)
		var top *models.Category
		if len(catSugs) > 0 {
			top = catSugs[0].Category
		}
		subSugs := categorizer.RankSubcategories(guesses.Subcategories, top, subcategories)

		sel := categorizer.Decide(catSugs, subSugs)
		results[idx].CategorySuggestions = catSugs
		results[idx].SubcategorySuggestions = subSugs
		results[idx].SelectedCategory = sel.Category
		results[idx].SelectedSubcategory = sel.Subcategory
	}
	return results
}

// CategorizeProducts loads the taxonomy snapshot once and categorizes the
// given products against it.
func (s *CategorizationService) CategorizeProducts(ctx context.Context, products []models.Product) ([]models.CategorizedProduct, error) {
	categories, subcategories, err := s.taxonomySnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.Categorize(ctx, products, categories, subcategories), nil
}

// CategorizeNames wraps bare product names in transient products and
// categorizes them; used by the CLI and API for ad hoc classification.
func (s *CategorizationService) CategorizeNames(ctx context.Context, names []string) ([]models.CategorizedProduct, error) {
	products := make([]models.Product, len(names))
	for i, n := range names {
		products[i] = models.Product{Name: n}
	}
	return s.CategorizeProducts(ctx, products)
}

// CategorizeByIDs fetches the products and categorizes them. IDs that match
// no product are skipped with a warning.
func (s *CategorizationService) CategorizeByIDs(ctx context.Context, ids []int64) ([]models.CategorizedProduct, error) {
	fetched, err := s.productStore.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products for categorization: %w", err)
	}
	if len(fetched) < len(ids) {
		log.Warnf("Requested %d products for categorization, found %d", len(ids), len(fetched))
	}

	products := make([]models.Product, 0, len(fetched))
	for _, p := range fetched {
		if p == nil {
			continue
		}
		products = append(products, *p)
	}
	return s.CategorizeProducts(ctx, products)
}

// Apply persists the auto-populated selections back onto product records and
// returns the number of products updated. Results without a selected category
// are skipped; a per-product store failure is logged and does not abort the
// rest.
func (s *CategorizationService) Apply(ctx context.Context, results []models.CategorizedProduct) (int, error) {
	applied := 0
	for _, r := range results {
		if r.Product.ID == 0 || r.SelectedCategory == nil {
			continue
		}
		if err := s.productStore.UpdateProductTaxonomy(ctx, r.Product.ID, r.SelectedCategory, r.SelectedSubcategory); err != nil {
			log.Errorf("Failed to apply taxonomy to product %d ('%s'): %v", r.Product.ID, r.Product.Name, err)
			continue
		}
		applied++
	}
	return applied, nil
}

func (s *CategorizationService) taxonomySnapshot(ctx context.Context) ([]models.Category, []models.Subcategory, error) {
	categories, err := s.taxonomyStore.ListCategories(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load categories: %w", err)
	}
	subcategories, err := s.taxonomyStore.ListSubcategories(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load subcategories: %w", err)
	}
	return categories, subcategories, nil
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxo/internal/models"
	"taxo/pkg/categorizer"
)

// stubCategorizer records the batch it receives and returns a canned result.
type stubCategorizer struct {
	result    categorizer.BatchResult
	gotNames  []string
	callCount int
}

func (s *stubCategorizer) CategorizeBatch(ctx context.Context, names []string, categories []models.Category, subcategories []models.Subcategory) categorizer.BatchResult {
	s.callCount++
	s.gotNames = names
	if len(names) == 0 {
		return categorizer.BatchResult{OK: true}
	}
	return s.result
}

func seedTaxonomy(fs *fakeStore) {
	pc := fs.seedCategory("Personal Care", "personal-care")
	fs.seedSubcategory(pc.ID, "Bath Soaps", "bath-soaps")
	fs.seedSubcategory(pc.ID, "Hair Care", "hair-care")
	sn := fs.seedCategory("Snacks", "snacks")
	fs.seedSubcategory(sn.ID, "Packaged Snacks", "packaged-snacks")
}

func TestCategorizeRuleMatchAutoPopulates(t *testing.T) {
	fs := newFakeStore()
	seedTaxonomy(fs)
	stub := &stubCategorizer{}
	svc := NewCategorizationService(stub, fs, fs)

	results, err := svc.CategorizeNames(context.Background(), []string{"Lifebuoy Soap"})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	require.NotNil(t, r.SelectedCategory)
	assert.Equal(t, "Personal Care", *r.SelectedCategory)
	require.NotNil(t, r.SelectedSubcategory)
	assert.Equal(t, "Bath Soaps", *r.SelectedSubcategory)
	assert.Zero(t, stub.callCount, "rule-resolved batch must not call the AI adapter")
}

func TestCategorizeRuleTargetSubcategoryMissing(t *testing.T) {
	fs := newFakeStore()
	// Category exists but its rule-target subcategory is not persisted.
	fs.seedCategory("Personal Care", "personal-care")
	stub := &stubCategorizer{}
	svc := NewCategorizationService(stub, fs, fs)

	results, err := svc.CategorizeNames(context.Background(), []string{"Lifebuoy Soap"})
	require.NoError(t, err)

	r := results[0]
	require.NotNil(t, r.SelectedCategory)
	assert.Nil(t, r.SelectedSubcategory, "a new-subcategory suggestion never auto-populates")
	require.Len(t, r.SubcategorySuggestions, 1)
	assert.True(t, r.SubcategorySuggestions[0].IsNew)
	assert.Equal(t, "Bath Soaps", r.SubcategorySuggestions[0].Name)
}

func TestCategorizeLeftoversGoToOneAICall(t *testing.T) {
	fs := newFakeStore()
	seedTaxonomy(fs)
	stub := &stubCategorizer{
		result: categorizer.BatchResult{
			OK: true,
			Guesses: []categorizer.ProductGuesses{
				{
					Name:          "Mystery Munchies",
					Categories:    []categorizer.CategoryGuess{{Name: "Snacks", Confidence: 0.82, Reason: "snack-like name"}},
					Subcategories: []categorizer.SubcategoryGuess{{Name: "Packaged Snacks", Confidence: 0.78, Reason: "packaged"}},
				},
				{
					Name:          "Quantum Widget",
					Categories:    []categorizer.CategoryGuess{{Name: "Snacks", Confidence: 0.3, Reason: "unsure"}},
					Subcategories: nil,
				},
			},
		},
	}
	svc := NewCategorizationService(stub, fs, fs)

	names := []string{"Lifebuoy Soap", "Mystery Munchies", "Quantum Widget"}
	results, err := svc.CategorizeNames(context.Background(), names)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 1, stub.callCount, "exactly one AI call per batch")
	assert.Equal(t, []string{"Mystery Munchies", "Quantum Widget"}, stub.gotNames)

	// Order is preserved: rule-resolved first product stays at index 0.
	assert.Equal(t, "Lifebuoy Soap", results[0].Product.Name)
	require.NotNil(t, results[0].SelectedCategory)

	require.NotNil(t, results[1].SelectedCategory)
	assert.Equal(t, "Snacks", *results[1].SelectedCategory)
	require.NotNil(t, results[1].SelectedSubcategory)
	assert.Equal(t, "Packaged Snacks", *results[1].SelectedSubcategory)

	// Below threshold: suggested but not auto-populated.
	assert.Nil(t, results[2].SelectedCategory)
	require.Len(t, results[2].CategorySuggestions, 1)
	assert.InDelta(t, 0.3, results[2].CategorySuggestions[0].Confidence, 1e-9)
}

func TestCategorizeDegradesWhenAIFails(t *testing.T) {
	fs := newFakeStore()
	seedTaxonomy(fs)
	stub := &stubCategorizer{result: categorizer.BatchResult{OK: false}}
	svc := NewCategorizationService(stub, fs, fs)

	results, err := svc.CategorizeNames(context.Background(), []string{"Lifebuoy Soap", "Quantum Widget"})
	require.NoError(t, err, "a degraded AI call must never fail the batch")
	require.Len(t, results, 2)

	// Rule-resolved product is unaffected by the degradation.
	require.NotNil(t, results[0].SelectedCategory)

	// Unresolved product is left unclassified with empty suggestions.
	assert.Empty(t, results[1].CategorySuggestions)
	assert.Empty(t, results[1].SubcategorySuggestions)
	assert.Nil(t, results[1].SelectedCategory)
	assert.Nil(t, results[1].SelectedSubcategory)
}

func TestCategorizeByIDsSkipsMissing(t *testing.T) {
	fs := newFakeStore()
	seedTaxonomy(fs)
	p := fs.seedProduct("Lifebuoy Soap", nil, nil)
	stub := &stubCategorizer{}
	svc := NewCategorizationService(stub, fs, fs)

	results, err := svc.CategorizeByIDs(context.Background(), []int64{p.ID, 9999})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, p.ID, results[0].Product.ID)
}

func TestApplyWritesSelections(t *testing.T) {
	fs := newFakeStore()
	seedTaxonomy(fs)
	p1 := fs.seedProduct("Lifebuoy Soap", nil, nil)
	p2 := fs.seedProduct("Quantum Widget", nil, nil)
	stub := &stubCategorizer{result: categorizer.BatchResult{OK: false}}
	svc := NewCategorizationService(stub, fs, fs)

	results, err := svc.CategorizeByIDs(context.Background(), []int64{p1.ID, p2.ID})
	require.NoError(t, err)

	applied, err := svc.Apply(context.Background(), results)
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	got, _ := fs.GetProduct(context.Background(), p1.ID)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Personal Care", *got.Category)
	require.NotNil(t, got.Subcategory)
	assert.Equal(t, "Bath Soaps", *got.Subcategory)

	got, _ = fs.GetProduct(context.Background(), p2.ID)
	assert.Nil(t, got.Category, "unclassified product must stay untouched")
}

func TestCategorizeLifebuoyEndToEnd(t *testing.T) {
	// categorize([{name:"Lifebuoy Soap"}]) against {Personal Care / Bath Soaps}
	// resolves via the keyword+brand rule with both fields auto-populated.
	fs := newFakeStore()
	pc := fs.seedCategory("Personal Care", "personal-care")
	fs.seedSubcategory(pc.ID, "Bath Soaps", "bath-soaps")
	svc := NewCategorizationService(&stubCategorizer{}, fs, fs)

	categories, _ := fs.ListCategories(context.Background())
	subcategories, _ := fs.ListSubcategories(context.Background())
	results := svc.Categorize(context.Background(),
		[]models.Product{{Name: "Lifebuoy Soap"}}, categories, subcategories)

	require.Len(t, results, 1)
	require.NotNil(t, results[0].SelectedCategory)
	assert.Equal(t, "Personal Care", *results[0].SelectedCategory)
	require.NotNil(t, results[0].SelectedSubcategory)
	assert.Equal(t, "Bath Soaps", *results[0].SelectedSubcategory)
	require.NotEmpty(t, results[0].CategorySuggestions)
	assert.GreaterOrEqual(t, results[0].CategorySuggestions[0].Confidence, 0.7)
}

package categorizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxo/internal/models"
)

func TestRankCategories(t *testing.T) {
	known := []models.Category{
		{ID: 1, Name: "Personal Care"},
		{ID: 2, Name: "Snacks"},
		{ID: 3, Name: "Beverages"},
	}
	guesses := []CategoryGuess{
		{Name: "snacks", Confidence: 0.4, Reason: "low"},
		{Name: "Gadgets", Confidence: 0.99, Reason: "unknown category, dropped"},
		{Name: "Personal Care", Confidence: 1.7, Reason: "clamped"},
		{Name: "BEVERAGES", Confidence: -0.2, Reason: "clamped to zero"},
	}

	ranked := RankCategories(guesses, known)

	require.Len(t, ranked, 3)
	assert.Equal(t, "Personal Care", ranked[0].Name)
	assert.Equal(t, 1.0, ranked[0].Confidence)
	assert.Equal(t, "Snacks", ranked[1].Name)
	assert.Equal(t, "Beverages", ranked[2].Name)
	assert.Equal(t, 0.0, ranked[2].Confidence)
	require.NotNil(t, ranked[1].Category)
	assert.Equal(t, int64(2), ranked[1].Category.ID)
}

func TestRankCategoriesCapsAtThree(t *testing.T) {
	known := []models.Category{
		{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}, {ID: 4, Name: "D"},
	}
	guesses := []CategoryGuess{
		{Name: "A", Confidence: 0.1},
		{Name: "B", Confidence: 0.9},
		{Name: "C", Confidence: 0.5},
		{Name: "D", Confidence: 0.7},
	}

	ranked := RankCategories(guesses, known)

	require.Len(t, ranked, MaxSuggestions)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Confidence, ranked[i].Confidence)
	}
	assert.Equal(t, "B", ranked[0].Name)
}

func TestRankSubcategoriesResolvesUnderTopCategory(t *testing.T) {
	top := &models.Category{ID: 1, Name: "Personal Care"}
	known := []models.Subcategory{
		{ID: 10, CategoryID: 1, Name: "Bath Soaps"},
		{ID: 20, CategoryID: 2, Name: "Chips"},
	}
	guesses := []SubcategoryGuess{
		{Name: "bath soaps", Confidence: 0.8},
		{Name: "Chips", Confidence: 0.9}, // owned by a different category
	}

	ranked := RankSubcategories(guesses, top, known)

	require.Len(t, ranked, 2)
	// "Chips" does not resolve under Personal Care, so it demotes to a new
	// suggestion instead of being discarded.
	assert.Equal(t, "Chips", ranked[0].Name)
	assert.True(t, ranked[0].IsNew)
	assert.Nil(t, ranked[0].Subcategory)

	assert.Equal(t, "Bath Soaps", ranked[1].Name)
	assert.False(t, ranked[1].IsNew)
	require.NotNil(t, ranked[1].Subcategory)
	assert.Equal(t, int64(10), ranked[1].Subcategory.ID)
}

func TestRankSubcategoriesKeepsExplicitNew(t *testing.T) {
	top := &models.Category{ID: 1, Name: "Personal Care"}
	known := []models.Subcategory{{ID: 10, CategoryID: 1, Name: "Bath Soaps"}}
	guesses := []SubcategoryGuess{
		{Name: "Bath Soaps", IsNew: true, Confidence: 0.9, Reason: "provider says new"},
	}

	ranked := RankSubcategories(guesses, top, known)

	require.Len(t, ranked, 1)
	// An explicit is_new guess is kept verbatim, not resolved.
	assert.True(t, ranked[0].IsNew)
	assert.Nil(t, ranked[0].Subcategory)
}

func TestRankSubcategoriesNoTopCategory(t *testing.T) {
	known := []models.Subcategory{{ID: 10, CategoryID: 1, Name: "Bath Soaps"}}
	guesses := []SubcategoryGuess{{Name: "Bath Soaps", Confidence: 0.8}}

	ranked := RankSubcategories(guesses, nil, known)

	require.Len(t, ranked, 1)
	assert.True(t, ranked[0].IsNew)
}

func TestRankSubcategoriesDropsBlankNames(t *testing.T) {
	ranked := RankSubcategories([]SubcategoryGuess{{Name: "  ", Confidence: 0.9}}, nil, nil)
	assert.Empty(t, ranked)
}

func TestDecideCategoryThreshold(t *testing.T) {
	above := []models.CategorySuggestion{{Name: "Snacks", Confidence: 0.7}}
	below := []models.CategorySuggestion{{Name: "Snacks", Confidence: 0.69}}

	sel := Decide(above, nil)
	require.NotNil(t, sel.Category)
	assert.Equal(t, "Snacks", *sel.Category)
	assert.Nil(t, sel.Subcategory)

	sel = Decide(below, nil)
	assert.Nil(t, sel.Category)
}

func TestDecideSubcategoryRequiresExisting(t *testing.T) {
	cats := []models.CategorySuggestion{{Name: "Snacks", Confidence: 0.9}}
	existing := []models.SubcategorySuggestion{
		{Name: "Chips", IsNew: false, Confidence: 0.8, Subcategory: &models.Subcategory{ID: 20}},
	}
	isNew := []models.SubcategorySuggestion{
		{Name: "Artisanal Crisps", IsNew: true, Confidence: 0.99},
	}

	sel := Decide(cats, existing)
	require.NotNil(t, sel.Subcategory)
	assert.Equal(t, "Chips", *sel.Subcategory)

	// A top new-subcategory suggestion never auto-populates, however confident.
	sel = Decide(cats, isNew)
	assert.Nil(t, sel.Subcategory)
}

func TestDecideEmptySuggestions(t *testing.T) {
	sel := Decide(nil, nil)
	assert.Nil(t, sel.Category)
	assert.Nil(t, sel.Subcategory)
}

package categorizer

import (
	"sort"
	"strings"

	"taxo/internal/models"
)

const (
	// MaxSuggestions caps every ranked suggestion list.
	MaxSuggestions = 3
	// AutoPopulateThreshold is the minimum top-suggestion confidence for
	// writing a taxonomy field onto a product without human confirmation.
	AutoPopulateThreshold = 0.7
)

// Selection is the auto-population outcome for one product. Nil fields mean
// the caller must leave the product unclassified (or ask a human).
type Selection struct {
	Category    *string
	Subcategory *string
}

// RankCategories resolves raw category guesses against the known taxonomy by
// case-insensitive exact name match, drops unresolved guesses, clamps
// confidence to [0,1], sorts descending, and caps the list at MaxSuggestions.
func RankCategories(guesses []CategoryGuess, known []models.Category) []models.CategorySuggestion {
	var suggestions []models.CategorySuggestion
	for _, g := range guesses {
		cat := findCategory(known, g.Name)
		if cat == nil {
			continue
		}
		suggestions = append(suggestions, models.CategorySuggestion{
			Category:   cat,
			Name:       cat.Name,
			Confidence: clamp01(g.Confidence),
			Reason:     g.Reason,
		})
	}
	sortByConfidence(suggestions, func(s models.CategorySuggestion) float64 { return s.Confidence })
	return capLen(suggestions)
}

// RankSubcategories resolves raw subcategory guesses against the
// subcategories owned by topCategory (the top-ranked resolved category).
// Guesses flagged new stay new; an unresolved existing guess is demoted to a
// new suggestion rather than discarded, since an unmatched name is still
// informative. Same clamp/sort/cap rule as categories.
func RankSubcategories(guesses []SubcategoryGuess, topCategory *models.Category, known []models.Subcategory) []models.SubcategorySuggestion {
	var suggestions []models.SubcategorySuggestion
	for _, g := range guesses {
		if strings.TrimSpace(g.Name) == "" {
			continue
		}
		s := models.SubcategorySuggestion{
			Name:       g.Name,
			IsNew:      true,
			Confidence: clamp01(g.Confidence),
			Reason:     g.Reason,
		}
		if !g.IsNew && topCategory != nil {
			if sub := findSubcategory(known, topCategory.ID, g.Name); sub != nil {
				s.Subcategory = sub
				s.Name = sub.Name
				s.IsNew = false
			}
		}
		suggestions = append(suggestions, s)
	}
	sortByConfidence(suggestions, func(s models.SubcategorySuggestion) float64 { return s.Confidence })
	return capLen(suggestions)
}

// Decide applies the confidence gates: the category is auto-populated iff the
// top suggestion reaches the threshold; the subcategory additionally requires
// an existing node. A new-subcategory suggestion never auto-populates
// regardless of confidence; it is only a creation candidate for the caller.
func Decide(categories []models.CategorySuggestion, subcategories []models.SubcategorySuggestion) Selection {
	var sel Selection
	if len(categories) > 0 && categories[0].Confidence >= AutoPopulateThreshold {
		name := categories[0].Name
		sel.Category = &name
	}
	if len(subcategories) > 0 && !subcategories[0].IsNew && subcategories[0].Confidence >= AutoPopulateThreshold {
		name := subcategories[0].Name
		sel.Subcategory = &name
	}
	return sel
}

func findCategory(known []models.Category, name string) *models.Category {
	for i := range known {
		if models.NameEquals(known[i].Name, name) {
			return &known[i]
		}
	}
	return nil
}

func findSubcategory(known []models.Subcategory, categoryID int64, name string) *models.Subcategory {
	for i := range known {
		if known[i].CategoryID == categoryID && models.NameEquals(known[i].Name, name) {
			return &known[i]
		}
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func sortByConfidence[T any](s []T, conf func(T) float64) {
	sort.SliceStable(s, func(i, j int) bool { return conf(s[i]) > conf(s[j]) })
}

func capLen[T any](s []T) []T {
	if len(s) > MaxSuggestions {
		return s[:MaxSuggestions]
	}
	return s
}

// Package rules holds the deterministic keyword/brand categorization table
// consulted before any AI inference. Matching is data-driven: the table is an
// ordered sequence of records, not a chain of conditionals, so individual
// rules stay independently testable.
package rules

import (
	"sort"
	"strings"
)

// Rule maps product-name keywords (optionally gated by brand names) to a
// target category/subcategory. Priority 1 is checked first.
type Rule struct {
	Priority    int
	Keywords    []string
	Brands      []string
	Category    string
	Subcategory string
}

// Confidence derives a match confidence from the rule's priority: lower
// priority number means higher confidence, floored at 0.7 so that every rule
// match stays eligible for auto-population.
func (r *Rule) Confidence() float64 {
	c := 1.0 - float64(r.Priority)*0.05
	if c < 0.7 {
		return 0.7
	}
	return c
}

// matches reports whether productName satisfies the rule: any keyword is a
// case-insensitive substring, and (if the rule lists brands) any brand is too.
func (r *Rule) matches(productName string) bool {
	name := strings.ToLower(productName)

	keywordHit := false
	for _, kw := range r.Keywords {
		if strings.Contains(name, strings.ToLower(kw)) {
			keywordHit = true
			break
		}
	}
	if !keywordHit {
		return false
	}

	if len(r.Brands) == 0 {
		return true
	}
	for _, b := range r.Brands {
		if strings.Contains(name, strings.ToLower(b)) {
			return true
		}
	}
	return false
}

// Match scans the table in ascending priority order and returns the first
// rule the product name satisfies. A miss is not an error; it just means the
// product needs AI inference.
func Match(productName string) (*Rule, bool) {
	for i := range table {
		if table[i].matches(productName) {
			return &table[i], true
		}
	}
	return nil, false
}

// Table returns the rule table in evaluation order. Read-only.
func Table() []Rule {
	out := make([]Rule, len(table))
	copy(out, table)
	return out
}

func init() {
	// The table is authored in priority groups; keep evaluation order stable
	// even if entries are appended out of order.
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Priority < table[j].Priority
	})
}

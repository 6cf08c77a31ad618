// Package slug generates URL-safe taxonomy node slugs.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	invalidChars    = regexp.MustCompile(`[^a-z0-9 -]+`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Make converts a name into its canonical slug: lowercase, characters
// restricted to [a-z0-9-], no consecutive hyphens, never starting or ending
// with a hyphen. Deterministic and idempotent on already-valid slugs. May
// return "" for input with no alphanumerics; callers must treat that as
// invalid.
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = invalidChars.ReplaceAllString(s, "")
	s = whitespaceRuns.ReplaceAllString(s, "-")
	s = multipleHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return s
}

// Sibling is the minimal view of an existing node needed for uniqueness
// probing: its slug and the category it lives under.
type Sibling struct {
	CategoryID int64
	Slug       string
}

// UniqueWithin computes the slug for name, then probes base, base-1, base-2,
// ... returning the first value not taken by a sibling under categoryID.
// Terminates because the sibling set is finite.
func UniqueWithin(name string, siblings []Sibling, categoryID int64) string {
	base := Make(name)
	taken := make(map[string]struct{}, len(siblings))
	for _, s := range siblings {
		if s.CategoryID == categoryID {
			taken[s.Slug] = struct{}{}
		}
	}

	if _, ok := taken[base]; !ok {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

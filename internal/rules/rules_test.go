package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchBrandedSoap(t *testing.T) {
	rule, ok := Match("Lifebuoy Soap")
	require.True(t, ok)
	assert.Equal(t, "Personal Care", rule.Category)
	assert.Equal(t, "Bath Soaps", rule.Subcategory)
	assert.Equal(t, 1, rule.Priority)
}

func TestMatchCaseInsensitive(t *testing.T) {
	rule, ok := Match("LIFEBUOY TOTAL 10 SOAP 125G")
	require.True(t, ok)
	assert.Equal(t, "Bath Soaps", rule.Subcategory)
}

func TestMatchBrandGateFallsThrough(t *testing.T) {
	// No listed brand in the name, so the priority-1 branded rule is skipped
	// and the generic keyword fallback wins.
	rule, ok := Match("Medimix Ayurvedic Soap")
	require.True(t, ok)
	assert.Equal(t, "Personal Care", rule.Category)
	assert.Equal(t, 10, rule.Priority)
}

func TestMatchFirstMatchWins(t *testing.T) {
	// "Surf Excel Matic" satisfies both the branded laundry rule and the
	// generic detergent rule; ascending priority order picks the branded one.
	rule, ok := Match("Surf Excel Matic Front Load Detergent")
	require.True(t, ok)
	assert.Equal(t, 3, rule.Priority)
	assert.Equal(t, "Laundry", rule.Subcategory)
}

func TestMatchMiss(t *testing.T) {
	_, ok := Match("Mystery Gadget 3000")
	assert.False(t, ok)
}

func TestConfidence(t *testing.T) {
	testCases := []struct {
		priority int
		expected float64
	}{
		{1, 0.95},
		{2, 0.90},
		{5, 0.75},
		{6, 0.70},
		{10, 0.70}, // floored
		{15, 0.70}, // floored
	}

	for _, tc := range testCases {
		r := Rule{Priority: tc.priority}
		assert.InDelta(t, tc.expected, r.Confidence(), 1e-9, "priority %d", tc.priority)
	}
}

func TestTableOrderedByPriority(t *testing.T) {
	tbl := Table()
	require.NotEmpty(t, tbl)
	for i := 1; i < len(tbl); i++ {
		assert.LessOrEqual(t, tbl[i-1].Priority, tbl[i].Priority)
	}
}

func TestEveryRuleMatchIsAutoPopulatable(t *testing.T) {
	for _, r := range Table() {
		assert.GreaterOrEqual(t, r.Confidence(), 0.7, "priority %d", r.Priority)
	}
}

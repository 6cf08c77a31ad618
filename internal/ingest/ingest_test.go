package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProducts(t *testing.T) {
	input := strings.Join([]string{
		"name,brand,category,subcategory",
		"Lifebuoy Soap 100g,Lifebuoy,,",
		"Tata Salt 1kg,Tata,Staples,Salt & Sugar",
		",NoName,,",
		"  Maggi  Noodles ,Nestle,,",
	}, "\n")

	parsed, err := ParseProducts(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, parsed.Products, 3)
	assert.Equal(t, 1, parsed.Skipped)

	assert.Equal(t, "Lifebuoy Soap 100g", parsed.Products[0].Name)
	require.NotNil(t, parsed.Products[0].Brand)
	assert.Equal(t, "Lifebuoy", *parsed.Products[0].Brand)
	assert.Nil(t, parsed.Products[0].Category)

	require.NotNil(t, parsed.Products[1].Category)
	assert.Equal(t, "Staples", *parsed.Products[1].Category)
	require.NotNil(t, parsed.Products[1].Subcategory)
	assert.Equal(t, "Salt & Sugar", *parsed.Products[1].Subcategory)

	// Whitespace runs inside names collapse.
	assert.Equal(t, "Maggi Noodles", parsed.Products[2].Name)
}

func TestParseProductsHeaderVariants(t *testing.T) {
	// Column order and header casing don't matter.
	input := "Brand,NAME\nAmul,Amul Butter 500g\n"
	parsed, err := ParseProducts(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, parsed.Products, 1)
	assert.Equal(t, "Amul Butter 500g", parsed.Products[0].Name)
	require.NotNil(t, parsed.Products[0].Brand)
	assert.Equal(t, "Amul", *parsed.Products[0].Brand)
}

func TestParseProductsMissingNameColumn(t *testing.T) {
	_, err := ParseProducts(strings.NewReader("brand,price\nTata,20\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'name' column")
}

func TestParseProductsEmptyFile(t *testing.T) {
	_, err := ParseProducts(strings.NewReader(""))
	require.Error(t, err)
}

func TestParseProductsShortRows(t *testing.T) {
	// Rows with fewer fields than the header still parse; missing optional
	// columns are treated as empty.
	input := "name,brand\nKurkure Masala Munch\n"
	parsed, err := ParseProducts(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, parsed.Products, 1)
	assert.Nil(t, parsed.Products[0].Brand)
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, `Kellogg's "Corn Flakes"`, CleanName("Kellogg’s “Corn Flakes”"))
	assert.Equal(t, "Tata Salt", CleanName("  Tata  Salt  "))
	assert.Equal(t, "", CleanName("   "))
}

func TestCleanFileContentStripsBOM(t *testing.T) {
	out, err := CleanFileContent(append([]byte{0xEF, 0xBB, 0xBF}, []byte("name\nTea")...), "test.csv")
	require.NoError(t, err)
	assert.Equal(t, "name\nTea", out)
}

package models

import (
	"strings"
	"time"
)

// Category is a top-level taxonomy node. Slug is unique across all categories.
type Category struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Subcategory is a second-level taxonomy node. Slug is unique only among
// siblings sharing the same CategoryID; the same slug may recur under
// different categories.
type Subcategory struct {
	ID         int64     `db:"id" json:"id"`
	CategoryID int64     `db:"category_id" json:"category_id"`
	Name       string    `db:"name" json:"name"`
	Slug       string    `db:"slug" json:"slug"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Product references its taxonomy by denormalized text, not by id.
// Category/Subcategory are nil when the product is unclassified.
type Product struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Brand       *string   `db:"brand" json:"brand,omitempty"`
	Category    *string   `db:"category" json:"category,omitempty"`
	Subcategory *string   `db:"subcategory" json:"subcategory,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CategorySuggestion is a ranked guess at an existing category.
type CategorySuggestion struct {
	Category   *Category `json:"category,omitempty"`
	Name       string    `json:"name"`
	Confidence float64   `json:"confidence"`
	Reason     string    `json:"reason,omitempty"`
}

// SubcategorySuggestion is a ranked guess at a subcategory. Either
// Subcategory points at an existing node (IsNew=false) or Name carries a
// proposed new subcategory (IsNew=true); never both.
type SubcategorySuggestion struct {
	Subcategory *Subcategory `json:"subcategory,omitempty"`
	Name        string       `json:"name"`
	IsNew       bool         `json:"is_new"`
	Confidence  float64      `json:"confidence"`
	Reason      string       `json:"reason,omitempty"`
}

// CategorizedProduct is the transient, request-scoped outcome of one
// categorization pass over a single product. Only the selected strings are
// ever written back to a product record.
type CategorizedProduct struct {
	Product                Product                 `json:"product"`
	CategorySuggestions    []CategorySuggestion    `json:"category_suggestions"`
	SubcategorySuggestions []SubcategorySuggestion `json:"subcategory_suggestions"`
	SelectedCategory       *string                 `json:"selected_category,omitempty"`
	SelectedSubcategory    *string                 `json:"selected_subcategory,omitempty"`
}

// NameEquals reports whether two denormalized taxonomy references point at
// the same node. Comparison is case-insensitive and trim-insensitive
// everywhere product fields are matched against node names.
func NameEquals(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

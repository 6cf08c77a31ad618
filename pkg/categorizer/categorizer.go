// Package categorizer turns raw product names into ranked taxonomy
// suggestions: an LLM adapter produces guesses, the ranker resolves them
// against the known taxonomy, and the decider gates auto-population.
package categorizer

import (
	"context"

	"taxo/internal/models"
)

// CategoryGuess is one raw category guess from the inference provider,
// before resolution against the known taxonomy.
type CategoryGuess struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// SubcategoryGuess is one raw subcategory guess. IsNew marks a name the
// provider itself believes is absent from the taxonomy.
type SubcategoryGuess struct {
	Name       string  `json:"name"`
	IsNew      bool    `json:"is_new"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// ProductGuesses carries the provider's guesses for a single product.
type ProductGuesses struct {
	Name          string             `json:"product_name"`
	Categories    []CategoryGuess    `json:"categories"`
	Subcategories []SubcategoryGuess `json:"subcategories"`
}

// BatchResult is the outcome of one batch inference call. OK=false is the
// single degraded outcome for every failure mode (unconfigured provider,
// transport error, unparseable response); it is never surfaced as a Go error
// so one bad response cannot abort a batch.
type BatchResult struct {
	OK      bool
	Guesses []ProductGuesses // index-aligned with the input names
}

// CompletionProvider is the capability the adapter needs from an inference
// backend. Configured must be cheap; it is consulted before every batch so an
// unconfigured provider short-circuits without a network call.
type CompletionProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Configured() bool
	Name() string
	ModelName() string
}

// ProductCategorizer categorizes a batch of product names against a taxonomy
// snapshot using a single provider invocation.
type ProductCategorizer interface {
	CategorizeBatch(ctx context.Context, names []string, categories []models.Category, subcategories []models.Subcategory) BatchResult
}

package services

import (
	"context"

	"taxo/internal/store" // For ProviderStatus
	"taxo/pkg/categorizer"
)

// CompletionService defines the interface for generating text completions
// from an inference provider. Configured is checked before any call attempt;
// an unconfigured provider must short-circuit without network traffic.
type CompletionService interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Configured() bool
	Status() store.ProviderStatus
	Name() string      // Provider name (e.g., "openai", "gemini")
	ModelName() string // Specific model used
}

// Every CompletionService is usable as the categorizer's provider capability.
var (
	_ categorizer.CompletionProvider = (CompletionService)(nil)
)

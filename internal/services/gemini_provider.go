package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"taxo/internal/store"
)

// GeminiCompletionProvider implements CompletionService using the Google
// Gemini API.
type GeminiCompletionProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiCompletionProvider creates a new Gemini completion provider. A
// missing API key yields a disabled provider rather than an error.
func NewGeminiCompletionProvider(apiKey, model string) (*GeminiCompletionProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY") // Fallback to env var
	}
	if apiKey == "" {
		log.Warn("Gemini API key not provided. Gemini completion provider will be disabled.")
		return &GeminiCompletionProvider{client: nil, model: model}, nil
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	log.Infof("Gemini completion provider initialized with model %s", model)
	return &GeminiCompletionProvider{client: client, model: model}, nil
}

// Name returns the provider name.
func (p *GeminiCompletionProvider) Name() string { return "gemini" }

// ModelName returns the specific model identifier.
func (p *GeminiCompletionProvider) ModelName() string { return p.model }

// Configured reports whether the provider can be called.
func (p *GeminiCompletionProvider) Configured() bool { return p.client != nil }

// Status returns the operational status of the provider.
func (p *GeminiCompletionProvider) Status() store.ProviderStatus {
	if p.client == nil {
		return store.ProviderStatusDisabled
	}
	return store.ProviderStatusActive
}

// Complete sends prompt to the generative model and concatenates the text
// parts of the first candidate.
func (p *GeminiCompletionProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("Gemini completion provider is not initialized (missing API key)")
	}

	model := p.client.GenerativeModel(p.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini content generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini candidate contained no text parts")
	}
	return sb.String(), nil
}

var _ CompletionService = (*GeminiCompletionProvider)(nil)

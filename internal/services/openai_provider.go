package services

import (
	"context"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"taxo/internal/store"
)

// chatCompletionClient is the minimal slice of the OpenAI client the provider
// needs; tests substitute a mock.
type chatCompletionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAICompletionProvider implements CompletionService using the OpenAI API.
type OpenAICompletionProvider struct {
	client chatCompletionClient
	model  string
}

// NewOpenAICompletionProvider creates a new OpenAI completion provider. A
// missing API key yields a disabled provider rather than an error, so the
// engine can still run rule-only categorization.
func NewOpenAICompletionProvider(apiKey, model string) *OpenAICompletionProvider {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY") // Fallback to env var
	}
	if apiKey == "" {
		log.Warn("OpenAI API key not provided. OpenAI completion provider will be disabled.")
		return &OpenAICompletionProvider{client: nil, model: model}
	}
	if model == "" {
		model = openai.GPT4oMini
	}

	log.Infof("OpenAI completion provider initialized with model %s", model)
	return &OpenAICompletionProvider{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Name returns the provider name.
func (p *OpenAICompletionProvider) Name() string { return "openai" }

// ModelName returns the specific model identifier.
func (p *OpenAICompletionProvider) ModelName() string { return p.model }

// Configured reports whether the provider can be called.
func (p *OpenAICompletionProvider) Configured() bool { return p.client != nil }

// Status returns the operational status of the provider.
func (p *OpenAICompletionProvider) Status() store.ProviderStatus {
	if p.client == nil {
		return store.ProviderStatusDisabled
	}
	return store.ProviderStatusActive
}

// Complete sends prompt as a single user message and returns the raw
// completion text.
func (p *OpenAICompletionProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("OpenAI completion provider is not initialized (missing API key)")
	}

	resp, err := p.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: p.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

var _ CompletionService = (*OpenAICompletionProvider)(nil)

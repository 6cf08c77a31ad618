package categorizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"taxo/internal/models"
)

// DefaultPromptTemplate is used when the config does not supply a template.
// {{TAXONOMY}} expands to the category tree, {{PRODUCTS}} to the numbered
// list of pending product names.
const DefaultPromptTemplate = `You are a product catalog assistant. Assign each product below to one of the known categories and subcategories.

Known taxonomy:
{{TAXONOMY}}

Products:
{{PRODUCTS}}

Respond with ONLY a JSON array, one object per product, in this shape:
[{"product_name": "...", "categories": [{"name": "...", "confidence": 0.0, "reason": "..."}], "subcategories": [{"name": "...", "is_new": false, "confidence": 0.0, "reason": "..."}]}]

Confidence is between 0 and 1. Use "is_new": true when no known subcategory fits and you are proposing a new one. Do not invent category names that are not in the taxonomy.`

// LLMCategorizer implements ProductCategorizer over a CompletionProvider.
// One provider call per batch, never one per product, to bound external call
// volume.
type LLMCategorizer struct {
	provider       CompletionProvider
	promptTemplate string
}

// NewLLMCategorizer creates an adapter over the given provider. An empty
// template falls back to DefaultPromptTemplate.
func NewLLMCategorizer(provider CompletionProvider, promptTemplate string) *LLMCategorizer {
	if promptTemplate == "" {
		promptTemplate = DefaultPromptTemplate
	}
	return &LLMCategorizer{provider: provider, promptTemplate: promptTemplate}
}

var _ ProductCategorizer = (*LLMCategorizer)(nil)

// CategorizeBatch builds one prompt embedding the full taxonomy and every
// pending product name, invokes the provider once, and parses the structured
// response. Every failure mode collapses into BatchResult{OK: false}.
func (c *LLMCategorizer) CategorizeBatch(ctx context.Context, names []string, categories []models.Category, subcategories []models.Subcategory) BatchResult {
	if len(names) == 0 {
		return BatchResult{OK: true}
	}
	if c.provider == nil || !c.provider.Configured() {
		log.Warn("Completion provider is not configured; batch categorization degraded")
		return BatchResult{OK: false}
	}

	prompt := c.buildPrompt(names, categories, subcategories)

	raw, err := c.provider.Complete(ctx, prompt)
	if err != nil {
		log.Warnf("Completion call failed for batch of %d products: %v", len(names), err)
		return BatchResult{OK: false}
	}

	entries, err := parseResponse(raw)
	if err != nil {
		log.Warnf("Unparseable completion response for batch of %d products: %v", len(names), err)
		return BatchResult{OK: false}
	}

	return BatchResult{OK: true, Guesses: alignEntries(entries, names)}
}

func (c *LLMCategorizer) buildPrompt(names []string, categories []models.Category, subcategories []models.Subcategory) string {
	var taxonomy strings.Builder
	for _, cat := range categories {
		taxonomy.WriteString("- ")
		taxonomy.WriteString(cat.Name)
		var subs []string
		for _, sub := range subcategories {
			if sub.CategoryID == cat.ID {
				subs = append(subs, sub.Name)
			}
		}
		if len(subs) > 0 {
			taxonomy.WriteString(": ")
			taxonomy.WriteString(strings.Join(subs, ", "))
		}
		taxonomy.WriteString("\n")
	}

	var products strings.Builder
	for i, name := range names {
		fmt.Fprintf(&products, "%d. %s\n", i+1, name)
	}

	prompt := c.promptTemplate
	prompt = strings.ReplaceAll(prompt, "{{TAXONOMY}}", strings.TrimRight(taxonomy.String(), "\n"))
	prompt = strings.ReplaceAll(prompt, "{{PRODUCTS}}", strings.TrimRight(products.String(), "\n"))
	return prompt
}

// parseResponse strictly decodes the provider output as a JSON array of
// per-product guesses. Markdown code fences around the payload are tolerated
// since chat models add them even when told not to.
func parseResponse(raw string) ([]ProductGuesses, error) {
	content := strings.TrimSpace(raw)
	content = stripCodeFence(content)
	if content == "" {
		return nil, fmt.Errorf("empty response")
	}

	var entries []ProductGuesses
	if err := json.Unmarshal([]byte(content), &entries); err != nil {
		return nil, fmt.Errorf("response is not a JSON guess array: %w", err)
	}
	return entries, nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// alignEntries maps response entries back onto the input slots: first by
// case-insensitive exact name match, then positionally for entries whose name
// matches nothing. Positional fallback can misattribute results if the
// provider both renames and reorders entries; accepted as inherited behavior.
func alignEntries(entries []ProductGuesses, names []string) []ProductGuesses {
	aligned := make([]ProductGuesses, len(names))
	filled := make([]bool, len(names))
	byName := make(map[string]int, len(names))
	for i, n := range names {
		aligned[i].Name = n
		if _, dup := byName[strings.ToLower(strings.TrimSpace(n))]; !dup {
			byName[strings.ToLower(strings.TrimSpace(n))] = i
		}
	}

	var unmatched []ProductGuesses
	for _, e := range entries {
		if idx, ok := byName[strings.ToLower(strings.TrimSpace(e.Name))]; ok && !filled[idx] {
			e.Name = names[idx]
			aligned[idx] = e
			filled[idx] = true
			continue
		}
		unmatched = append(unmatched, e)
	}

	// Positional alignment for leftovers, in order, into the unfilled slots.
	slot := 0
	for _, e := range unmatched {
		for slot < len(names) && filled[slot] {
			slot++
		}
		if slot >= len(names) {
			log.Warnf("Discarding surplus completion entry %q: no input slot left", e.Name)
			break
		}
		log.Debugf("Positionally aligning completion entry %q to input %q", e.Name, names[slot])
		e.Name = names[slot]
		aligned[slot] = e
		filled[slot] = true
	}

	return aligned
}

// Package app wires the engine's dependencies from configuration.
package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"taxo/internal/config"
	"taxo/internal/services"
	"taxo/internal/store"
	"taxo/internal/store/primary"
	"taxo/pkg/categorizer"
)

type App struct {
	Config *config.Config

	TaxonomyStore store.TaxonomyStore
	ProductStore  store.ProductStore
	JobClient     store.JobClient

	CompletionService services.CompletionService

	CategorizationService *services.CategorizationService
	TaxonomyService       *services.TaxonomyService

	primaryStore *primary.StoreImpl
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()
	app := &App{Config: cfg}

	if err := app.initPrimaryStore(ctx); err != nil {
		return nil, err
	}
	if err := app.initJobClient(); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}
	if err := app.initCompletionService(); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}
	if err := app.initServices(); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}

	log.Debug("Application initialization complete.")
	return app, nil
}

// Close releases connections held by the app.
func (a *App) Close() {
	if a.JobClient != nil {
		if err := a.JobClient.Close(); err != nil {
			log.Warnf("Failed to close job client: %v", err)
		}
	}
	if a.primaryStore != nil {
		a.primaryStore.Close()
	}
}

func (a *App) cleanupPartialInit() {
	a.Close()
}

func (a *App) initPrimaryStore(ctx context.Context) error {
	ps, err := primary.NewPrimaryStore(ctx, a.Config.Database.Primary.DSN)
	if err != nil {
		return fmt.Errorf("init primary store: %w", err)
	}
	a.primaryStore = ps
	a.TaxonomyStore = ps
	a.ProductStore = ps
	return nil
}

func (a *App) initJobClient() error {
	jc, err := store.NewAsynqJobClient(a.Config.Redis.Address, a.Config.Redis.Password, a.Config.Redis.DB)
	if err != nil {
		return fmt.Errorf("init job client: %w", err)
	}
	a.JobClient = jc
	return nil
}

func (a *App) initCompletionService() error {
	switch a.Config.AI.Provider {
	case "openai", "":
		a.CompletionService = services.NewOpenAICompletionProvider(a.Config.AI.OpenaiApiKey, a.Config.AI.Model)
	case "gemini":
		provider, err := services.NewGeminiCompletionProvider(a.Config.AI.GeminiApiKey, a.Config.AI.Model)
		if err != nil {
			return fmt.Errorf("init gemini provider: %w", err)
		}
		a.CompletionService = provider
	case "none":
		log.Info("AI provider disabled by configuration; categorization is rule-only")
		a.CompletionService = nil
	default:
		return fmt.Errorf("unknown ai.provider '%s'", a.Config.AI.Provider)
	}
	return nil
}

func (a *App) initServices() error {
	promptTemplate, err := config.LoadPromptContent(a.Config.AI.PromptTemplate, "categorize.txt")
	if err != nil {
		return fmt.Errorf("load categorization prompt: %w", err)
	}

	llm := categorizer.NewLLMCategorizer(a.CompletionService, promptTemplate)
	a.CategorizationService = services.NewCategorizationService(llm, a.TaxonomyStore, a.ProductStore)
	a.TaxonomyService = services.NewTaxonomyService(a.TaxonomyStore)
	return nil
}

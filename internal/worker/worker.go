// Package worker hosts the Asynq task handlers.
package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"taxo/internal/services"
	"taxo/internal/tasks"
)

// CategorizeDeps carries the dependencies of the categorization handlers.
type CategorizeDeps struct {
	CategorizationService *services.CategorizationService
}

// RegisterHandlers wires the task handlers onto the mux.
func RegisterHandlers(mux *asynq.ServeMux, deps CategorizeDeps) {
	mux.HandleFunc(tasks.TypeCategorizeBatch, HandleCategorizeBatch(deps))
}

// HandleCategorizeBatch categorizes the payload's products and persists any
// auto-populated taxonomy fields. A degraded AI pass is not a task failure:
// the affected products simply stay unclassified and a later run can retry
// them.
func HandleCategorizeBatch(deps CategorizeDeps) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload tasks.CategorizeBatchPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			// Malformed payloads never succeed; don't retry.
			return fmt.Errorf("failed to unmarshal categorize batch payload: %v: %w", err, asynq.SkipRetry)
		}
		if deps.CategorizationService == nil {
			return fmt.Errorf("categorization service is not initialized: %w", asynq.SkipRetry)
		}

		log.Infof("Processing categorize batch %s (%d products)", payload.BatchID, len(payload.ProductIDs))

		results, err := deps.CategorizationService.CategorizeByIDs(ctx, payload.ProductIDs)
		if err != nil {
			return fmt.Errorf("categorize batch %s failed: %w", payload.BatchID, err)
		}

		applied, err := deps.CategorizationService.Apply(ctx, results)
		if err != nil {
			return fmt.Errorf("failed to apply categorize batch %s: %w", payload.BatchID, err)
		}

		log.Infof("Categorize batch %s complete: %d/%d products auto-populated",
			payload.BatchID, applied, len(results))
		return nil
	}
}

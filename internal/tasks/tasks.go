// Package tasks defines the Asynq task types and payloads.
package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	// TypeCategorizeBatch categorizes a batch of products and persists any
	// auto-populated taxonomy fields.
	TypeCategorizeBatch = "categorize:batch"
)

// CategorizeBatchPayload is the payload for TypeCategorizeBatch.
type CategorizeBatchPayload struct {
	BatchID    uuid.UUID `json:"batch_id"`
	ProductIDs []int64   `json:"product_ids"`
}

// NewCategorizeBatchTask builds a categorize:batch task with a fresh batch ID.
func NewCategorizeBatchTask(productIDs []int64) (*asynq.Task, string, error) {
	if len(productIDs) == 0 {
		return nil, "", fmt.Errorf("categorize batch requires at least one product ID")
	}
	payload := CategorizeBatchPayload{
		BatchID:    uuid.New(),
		ProductIDs: productIDs,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal categorize batch payload: %w", err)
	}
	return asynq.NewTask(TypeCategorizeBatch, data), payload.BatchID.String(), nil
}

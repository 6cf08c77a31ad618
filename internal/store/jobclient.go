package store

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"taxo/internal/tasks"
)

// AsynqJobClient enqueues background categorization tasks.
var _ JobClient = (*AsynqJobClient)(nil)

type AsynqJobClient struct {
	client *asynq.Client
}

func NewAsynqJobClient(redisAddr, redisPassword string, redisDB int) (*AsynqJobClient, error) {
	if redisAddr == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}
	cli := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})
	return &AsynqJobClient{client: cli}, nil
}

func (jc *AsynqJobClient) Close() error {
	return jc.client.Close()
}

// Enqueue submits a task to the queue.
func (jc *AsynqJobClient) Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if jc.client == nil {
		return nil, fmt.Errorf("asynq client is not initialized")
	}
	info, err := jc.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		log.Errorf("Failed to enqueue task type '%s': %v", task.Type(), err)
		return nil, err
	}
	log.Debugf("Enqueued task type '%s' id=%s queue=%s", task.Type(), info.ID, info.Queue)
	return info, nil
}

// EnqueueCategorizeBatch enqueues one batch categorization job for the given
// product IDs and returns the batch identifier.
func (jc *AsynqJobClient) EnqueueCategorizeBatch(ctx context.Context, productIDs []int64) (string, error) {
	task, batchID, err := tasks.NewCategorizeBatchTask(productIDs)
	if err != nil {
		return "", fmt.Errorf("failed to build categorize batch task: %w", err)
	}
	if _, err := jc.Enqueue(ctx, task); err != nil {
		return "", err
	}
	log.Infof("Enqueued categorize batch %s (%d products)", batchID, len(productIDs))
	return batchID, nil
}

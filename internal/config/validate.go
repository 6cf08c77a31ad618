package config

import (
	"errors"
	"fmt"
)

// Validate checks the fields needed by the command about to run. The database
// and Redis settings are required everywhere; AI provider keys are only
// required when that provider is selected, since the engine degrades to
// rule-only categorization without one.
func (c *Config) Validate() error {
	if c.Database.Primary.DSN == "" {
		return errors.New("database.primary.DSN is required")
	}

	switch c.AI.Provider {
	case "openai", "gemini", "none", "":
	default:
		return fmt.Errorf("ai.provider must be 'openai', 'gemini' or 'none', got '%s'", c.AI.Provider)
	}

	if c.Redis.Address == "" {
		return errors.New("redis.address is required")
	}
	if c.Worker.Concurrency <= 0 {
		return errors.New("worker.concurrency must be a positive integer")
	}
	if c.Worker.BatchSize <= 0 {
		return errors.New("worker.batch_size must be a positive integer")
	}
	for name, priority := range c.Worker.Queues {
		if name == "" {
			return errors.New("worker.queues contains an empty queue name")
		}
		if priority <= 0 {
			return fmt.Errorf("worker.queues['%s'] must have a positive priority", name)
		}
	}
	return nil
}

package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Primary struct {
			DSN string
		}
	}

	AI struct {
		Provider       string `mapstructure:"provider"` // "openai", "gemini" or "none"
		Model          string `mapstructure:"model"`    // Model name for the provider
		OpenaiApiKey   string `mapstructure:"openai_api_key"`
		GeminiApiKey   string `mapstructure:"gemini_api_key"`
		PromptTemplate string `mapstructure:"prompt_template"` // Path to prompt template file, or empty for the built-in template
	} `mapstructure:"ai"`

	Redis struct {
		Address  string
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	}

	Worker struct {
		Concurrency int            `mapstructure:"concurrency"`
		Queues      map[string]int `mapstructure:"queues"`
		BatchSize   int            `mapstructure:"batch_size"` // Max products per enqueued categorize batch
	}

	Serve struct {
		Address string `mapstructure:"address"`
		Port    string `mapstructure:"port"`
	}
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".") // Look for config.yaml in the current directory

	viper.AutomaticEnv()
	// Bind the provider API keys so they can come from the environment
	// without a prefix.
	viper.BindEnv("ai.openai_api_key", "OPENAI_API_KEY")
	viper.BindEnv("ai.gemini_api_key", "GEMINI_API_KEY")

	viper.SetDefault("ai.provider", "openai")
	viper.SetDefault("redis.address", "127.0.0.1:6379")
	viper.SetDefault("worker.concurrency", 5)
	viper.SetDefault("worker.batch_size", 25)
	viper.SetDefault("serve.address", "127.0.0.1")
	viper.SetDefault("serve.port", "8080")

	if err := viper.ReadInConfig(); err != nil {
		// The config file is optional; env vars and defaults may be enough.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

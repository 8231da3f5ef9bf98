// Package config defines service configuration and its loading rules.
package config

import (
	"fmt"
	"strings"
	"time"

	"feedback-backend/internal/models"
)

const (
	StoreMongo  = "mongo"
	StoreSQLite = "sqlite"

	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

type Config struct {
	Port     string `koanf:"port"`
	LogLevel string `koanf:"log_level"`

	// StoreDriver selects the feedback store: mongo or sqlite.
	StoreDriver string `koanf:"store_driver"`
	MongoURI    string `koanf:"mongodb_uri"`
	DBName      string `koanf:"db_name"`
	SQLitePath  string `koanf:"sqlite_path"`

	LLMProvider       string        `koanf:"llm_provider"`
	LLMModel          string        `koanf:"llm_model"`
	LLMBaseURL        string        `koanf:"llm_base_url"`
	AnthropicAPIKey   string        `koanf:"anthropic_api_key"`
	OpenAIAPIKey      string        `koanf:"openai_api_key"`
	GenerationTimeout time.Duration `koanf:"generation_timeout"`

	// ListLimit caps GET /api/feedback.
	ListLimit int `koanf:"list_limit"`

	SlackWebhookURL string `koanf:"slack_webhook_url"`
	ResendAPIKey    string `koanf:"resend_api_key"`
	FromEmail       string `koanf:"from_email"`
	AlertEmail      string `koanf:"alert_email"`
	// AlertMaxRating publishes operator alerts only for ratings at or below it.
	AlertMaxRating int `koanf:"alert_max_rating"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Port:              "3000",
		LogLevel:          "info",
		StoreDriver:       StoreMongo,
		DBName:            "feedback",
		SQLitePath:        "feedback.db",
		LLMProvider:       ProviderAnthropic,
		GenerationTimeout: 15 * time.Second,
		ListLimit:         1000,
		AlertMaxRating:    models.MaxRating,
	}
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("%w: port must not be empty", ErrInvalidConfig)
	}
	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("%w: MONGODB_URI is required for the mongo store", ErrInvalidConfig)
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite_path is required for the sqlite store", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store_driver %q", ErrInvalidConfig, c.StoreDriver)
	}
	switch c.LLMProvider {
	case ProviderAnthropic, ProviderOpenAI:
	default:
		return fmt.Errorf("%w: unknown llm_provider %q", ErrInvalidConfig, c.LLMProvider)
	}
	if c.GenerationTimeout <= 0 {
		return fmt.Errorf("%w: generation_timeout must be positive", ErrInvalidConfig)
	}
	if c.ListLimit <= 0 {
		return fmt.Errorf("%w: list_limit must be positive", ErrInvalidConfig)
	}
	return nil
}

// APIKey returns the credential for the configured provider.
func (c *Config) APIKey() string {
	if c.LLMProvider == ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.AnthropicAPIKey
}

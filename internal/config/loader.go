package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "FEEDBACK_"

// Plain variable names accepted without the FEEDBACK_ prefix.
var legacyEnv = map[string]string{
	"PORT":              "port",
	"MONGODB_URI":       "mongodb_uri",
	"DB_NAME":           "db_name",
	"ANTHROPIC_API_KEY": "anthropic_api_key",
	"OPENAI_API_KEY":    "openai_api_key",
	"SLACK_WEBHOOK_URL": "slack_webhook_url",
	"RESEND_API_KEY":    "resend_api_key",
	"FROM_EMAIL":        "from_email",
}

// Load builds a Config by layering, low to high precedence:
//  1. defaults (New)
//  2. YAML file named by FEEDBACK_CONFIG, if set
//  3. plain env vars (PORT, MONGODB_URI, ...)
//  4. FEEDBACK_-prefixed env vars
//
// A .env file in the working directory is loaded into the environment first.
func Load() (*Config, error) {
	// Missing .env is fine; production sets env vars directly.
	_ = godotenv.Load()

	k := koanf.New(".")

	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrLoadConfig, path, err)
		}
	}

	legacy := env.Provider("", ".", func(s string) string {
		return legacyEnv[s]
	})
	if err := k.Load(legacy, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	prefixed := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		if s == "CONFIG" {
			return ""
		}
		return strings.ToLower(s)
	})
	if err := k.Load(prefixed, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

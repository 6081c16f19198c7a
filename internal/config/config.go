package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Logging LoggingConfig `envPrefix:"LOG_"`
	Storage StorageConfig `envPrefix:"STORAGE_"`
	Redis   RedisConfig   `envPrefix:"REDIS_"`
	Backend BackendConfig `envPrefix:"SUPABASE_"`
	OpenAI  OpenAIConfig  `envPrefix:"OPENAI_"`
	DND5E   DND5EConfig   `envPrefix:"DND5E_"`
	Rules   RulesConfig   `envPrefix:"RULES_"`
	Import  ImportConfig  `envPrefix:"IMPORT_"`
}

// LoggingConfig selects the zap level and encoder
type LoggingConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"console"`
}

// StorageConfig locates the on-device SQLite file holding settings and,
// without Redis, characters
type StorageConfig struct {
	Path string `env:"PATH" envDefault:"character-sheet.db"`
}

// RedisConfig holds Redis-specific configuration. An empty URL keeps
// characters in local storage.
type RedisConfig struct {
	URL string `env:"URL"`
}

// BackendConfig seeds the hosted backend credentials when settings have
// never been saved
type BackendConfig struct {
	URL        string `env:"URL"`
	ServiceKey string `env:"SERVICE_KEY"`
}

// OpenAIConfig seeds the embeddings key the same way
type OpenAIConfig struct {
	APIKey string `env:"API_KEY"`
}

// DND5EConfig holds D&D 5e API configuration
type DND5EConfig struct {
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// RulesConfig points at an optional YAML override of the game tables
type RulesConfig struct {
	Path string `env:"PATH"`
}

// ImportConfig tunes the spell import script
type ImportConfig struct {
	// Delay pauses between dnd5e API requests; 0 disables it
	Delay time.Duration `env:"DELAY" envDefault:"100ms"`
}

// Load reads an optional .env file, then the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv parses the environment only
func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var errs []error
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q must be one of debug, info, warn, error", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q must be json or console", c.Logging.Format))
	}
	if c.Storage.Path == "" {
		errs = append(errs, errors.New("STORAGE_PATH is required"))
	}
	if c.DND5E.Timeout <= 0 {
		errs = append(errs, errors.New("DND5E_TIMEOUT must be positive"))
	}
	if c.Import.Delay < 0 {
		errs = append(errs, errors.New("IMPORT_DELAY must not be negative"))
	}
	return errors.Join(errs...)
}

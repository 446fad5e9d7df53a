// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// LocalService selects the built-in store as the post service
const LocalService = "local"

// Config holds runtime settings
type Config struct {
	Addr           string        `validate:"required"`
	ServiceURL     string        `validate:"required,url|eq=local"`
	DBPath         string        `validate:"required"`
	PostID         int           `validate:"gte=1"`
	RequestTimeout time.Duration `validate:"gt=0"`
	LogLevel       string        `validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat      string        `validate:"omitempty,oneof=json text"`
}

var validate = validator.New()

// Load reads an optional .env file and then the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return LoadFrom(os.Getenv)
}

// LoadFrom builds a Config from getenv, applying defaults for unset keys
func LoadFrom(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	postID, err := strconv.Atoi(get("POSTVIEW_POST_ID", "1"))
	if err != nil {
		return nil, fmt.Errorf("POSTVIEW_POST_ID: %w", err)
	}
	timeout, err := time.ParseDuration(get("POSTVIEW_REQUEST_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("POSTVIEW_REQUEST_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Addr:           get("POSTVIEW_ADDR", ":8080"),
		ServiceURL:     get("POSTVIEW_SERVICE_URL", "https://jsonplaceholder.typicode.com"),
		DBPath:         get("POSTVIEW_DB_PATH", "data/badger"),
		PostID:         postID,
		RequestTimeout: timeout,
		LogLevel:       strings.ToLower(get("LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(get("LOG_FORMAT", "json")),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// UsesLocalService reports whether posts come from the built-in store
func (c *Config) UsesLocalService() bool {
	return c.ServiceURL == LocalService
}

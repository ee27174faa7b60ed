// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Search   SearchConfig
	Provider ProviderConfig
	Reasoner ReasonerConfig
	History  HistoryConfig
	Logging  LoggingConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
}

// SearchConfig holds settings for the search pipeline.
type SearchConfig struct {
	// ResultLimit caps how many results are retained per search.
	ResultLimit int `env:"SEARCH_RESULT_LIMIT" envDefault:"5"`

	// GlobalTimeout bounds one whole search including address follow-ups.
	GlobalTimeout time.Duration `env:"TIMEOUT_SEARCH" envDefault:"10s"`

	// LookupTimeout bounds each per-record address follow-up call.
	LookupTimeout time.Duration `env:"TIMEOUT_ADDRESS_LOOKUP" envDefault:"2s"`
}

// ProviderConfig holds SerpAPI settings.
type ProviderConfig struct {
	APIKey      string        `env:"SERPAPI_API_KEY"`
	BaseURL     string        `env:"SERPAPI_BASE_URL" envDefault:"https://serpapi.com/search.json"`
	CallTimeout time.Duration `env:"SERPAPI_CALL_TIMEOUT" envDefault:"8s"`
}

// ReasonerConfig holds Gemini settings.
type ReasonerConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
}

// HistoryConfig holds conversation history store settings.
type HistoryConfig struct {
	// RedisAddr enables the Redis history store when non-empty; an empty
	// value selects the in-memory store.
	RedisAddr string        `env:"REDIS_ADDR"`
	RedisDB   int           `env:"REDIS_DB" envDefault:"0"`
	TTL       time.Duration `env:"HISTORY_TTL" envDefault:"720h"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	// Validate server port
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	// Validate timeouts are positive
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Search.GlobalTimeout <= 0 {
		return fmt.Errorf("TIMEOUT_SEARCH must be positive")
	}
	if cfg.Search.LookupTimeout <= 0 {
		return fmt.Errorf("TIMEOUT_ADDRESS_LOOKUP must be positive")
	}

	// Validate per-lookup timeout is less than the global search timeout
	if cfg.Search.LookupTimeout >= cfg.Search.GlobalTimeout {
		return fmt.Errorf("TIMEOUT_ADDRESS_LOOKUP (%s) should be less than TIMEOUT_SEARCH (%s)",
			cfg.Search.LookupTimeout, cfg.Search.GlobalTimeout)
	}

	// Validate result limit
	if cfg.Search.ResultLimit < 1 {
		return fmt.Errorf("SEARCH_RESULT_LIMIT must be at least 1, got %d", cfg.Search.ResultLimit)
	}

	// Validate log level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	// Validate log format
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	// Validate app environment
	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

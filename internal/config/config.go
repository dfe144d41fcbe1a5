// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration
type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	// DataDir is where the JSON file store keeps its state when neither
	// Postgres nor SQLite is configured. Empty means ~/.sportspal.
	DataDir string `env:"DATA_DIR"`

	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	SMTPAddr  string `env:"SMTP_ADDR"`
	EmailFrom string `env:"EMAIL_FROM" envDefault:"no-reply@sportspal.local"`

	News NewsConfig
}

// NewsConfig holds NewsAPI-specific configuration
type NewsConfig struct {
	APIKey   string        `env:"NEWS_API_KEY"`
	BaseURL  string        `env:"NEWS_BASE_URL" envDefault:"https://newsapi.org"`
	CacheTTL time.Duration `env:"NEWS_CACHE_TTL" envDefault:"1h"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".sportspal")
	}

	return cfg, nil
}

// HasPostgres returns true if a Postgres connection string is configured
func (c *Config) HasPostgres() bool {
	return c.DatabaseURL != ""
}

// HasSQLite returns true if a SQLite database path is configured
func (c *Config) HasSQLite() bool {
	return c.SQLitePath != ""
}

// HasNews returns true if live news fetching is configured
func (c *Config) HasNews() bool {
	return c.News.APIKey != ""
}

// HasSMTP returns true if outbound mail is configured
func (c *Config) HasSMTP() bool {
	return c.SMTPAddr != ""
}

// Validate rejects configurations that name more than one store backend, so a
// typo cannot silently split state between two databases.
func (c *Config) Validate() error {
	if c.HasPostgres() && c.HasSQLite() {
		return fmt.Errorf("both DATABASE_URL and SQLITE_PATH set - configure exactly one store backend")
	}
	return nil
}

// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (remote store, sessions, audit) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Session storage backends.
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// # Configuration Schema

// Config holds all runtime configuration for the showcase API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Remote Record Store (spreadsheet-backed script endpoints)
	ProjectsEndpoint string        `env:"PROJECTS_ENDPOINT,required,notEmpty"`
	LeadsEndpoint    string        `env:"LEADS_ENDPOINT,required,notEmpty"`
	RemoteTimeout    time.Duration `env:"REMOTE_TIMEOUT"  envDefault:"15s"`
	RefreshTimeout   time.Duration `env:"REFRESH_TIMEOUT" envDefault:"30s"`

	// ContactRelayURL receives project-idea submissions as JSON.
	ContactRelayURL string `env:"CONTACT_RELAY_URL" envDefault:"https://formsubmit.co/ajax/aanchaluke77@gmail.com"`

	// PageSize is the default number of rows per page in list views.
	PageSize int `env:"PAGE_SIZE" envDefault:"10"`

	// Session-scoped snapshot storage
	SessionBackend string        `env:"SESSION_BACKEND"  envDefault:"memory"`
	SessionIdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`

	// Key-Value Cache (Redis), required when SessionBackend is "redis"
	RedisURL string `env:"REDIS_URL"`

	// Relational Database (PostgreSQL), optional: enables the moderation audit trail.
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Object Storage (S3-compatible), optional: enables report archiving.
	// Credentials fall back to the default AWS chain when unset.
	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION"     envDefault:"auto"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3PathStyle bool   `env:"S3_PATH_STYLE" envDefault:"false"`
	S3AccessKey string `env:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `env:"S3_SECRET_ACCESS_KEY"`

	// Cross-Origin Resource Sharing
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"vercel.app"`

	// Brand details used in outgoing welcome mails.
	Brand Brand `envPrefix:"BRAND_"`
}

// Brand describes the business sending welcome mails to leads.
type Brand struct {
	Company string `env:"COMPANY" envDefault:"Aanchal Alytcs"`
	Owner   string `env:"OWNER"   envDefault:"Aanchal"`
	Email   string `env:"EMAIL"   envDefault:"aanchaluke77@gmail.com"`
	Phone   string `env:"PHONE"`
	Address string `env:"ADDRESS"`
	Website string `env:"WEBSITE"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	switch c.SessionBackend {
	case SessionBackendMemory:
	case SessionBackendRedis:
		if c.RedisURL == "" {
			return errors.New("config: REDIS_URL is required when SESSION_BACKEND=redis")
		}
	default:
		return fmt.Errorf("config: unknown SESSION_BACKEND %q", c.SessionBackend)
	}

	if c.PageSize < 1 {
		return fmt.Errorf("config: PAGE_SIZE must be positive, got %d", c.PageSize)
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AuditEnabled reports whether the moderation audit trail is configured.
func (c *Config) AuditEnabled() bool {
	return c.DatabaseURL != ""
}

// ArchiveEnabled reports whether exported reports are archived to object storage.
func (c *Config) ArchiveEnabled() bool {
	return c.S3Bucket != ""
}

// OriginSuffix implements [middleware.AppConfig].
func (c *Config) OriginSuffix() string {
	return c.AllowedOriginSuffix
}

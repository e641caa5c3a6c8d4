package app

import (
	"fmt"

	"github.com/kbukum/labauth/auth"
	"github.com/kbukum/labauth/config"
	"github.com/kbukum/labauth/database"
	"github.com/kbukum/labauth/observability"
	"github.com/kbukum/labauth/redis"
	"github.com/kbukum/labauth/server"
	"github.com/kbukum/labauth/validation"
)

// Config is the labauth configuration. The token secret is only read from
// AUTH_TOKEN_SECRET (environment or .env).
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	HTTP          server.Config        `yaml:"http" mapstructure:"http"`
	Auth          auth.Config          `yaml:"auth" mapstructure:"auth"`
	Store         StoreConfig          `yaml:"store" mapstructure:"store"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
	Features      FeaturesConfig       `yaml:"features" mapstructure:"features"`
}

// Store backends.
const (
	BackendMemory = "memory"
	BackendSQL    = "sql"
	BackendRedis  = "redis"
)

// StoreConfig selects the credential store. Only the block of the selected
// backend is validated.
type StoreConfig struct {
	Backend  string          `yaml:"backend" mapstructure:"backend" validate:"required,oneof=memory sql redis"`
	Database database.Config `yaml:"database" mapstructure:"database" validate:"-"`
	Redis    redis.Config    `yaml:"redis" mapstructure:"redis" validate:"-"`
}

// FeaturesConfig holds the demo feature flags.
type FeaturesConfig struct {
	// NewGreeting switches /api/greeting to the new greeting for everyone.
	NewGreeting bool `yaml:"new_greeting" mapstructure:"new_greeting" json:"newGreeting"`
}

// ApplyDefaults fills every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "labauth"
	}
	c.ServiceConfig.ApplyDefaults()
	c.HTTP.ApplyDefaults()
	c.Auth.ApplyDefaults()
	c.Observability.ApplyDefaults()

	if c.Store.Backend == "" {
		c.Store.Backend = BackendMemory
	}
	switch c.Store.Backend {
	case BackendSQL:
		c.Store.Database.ApplyDefaults()
	case BackendRedis:
		c.Store.Redis.ApplyDefaults()
	}
}

// Validate checks every section. Errors never include the token secret.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("http: %w", err)
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Observability.Validate(); err != nil {
		return err
	}
	if err := validation.Struct(c.Store); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	switch c.Store.Backend {
	case BackendSQL:
		if err := c.Store.Database.Validate(); err != nil {
			return fmt.Errorf("store.database: %w", err)
		}
	case BackendRedis:
		if err := c.Store.Redis.Validate(); err != nil {
			return fmt.Errorf("store.redis: %w", err)
		}
	}
	return nil
}

// Describe is the startup log line for the non-secret settings.
func (c *Config) Describe() string {
	return fmt.Sprintf("store=%s %s rate_limit=%d/min request_timeout=%s",
		c.Store.Backend, c.Auth.Describe(), c.HTTP.LoginRateLimit.RequestsPerMinute, c.HTTP.RequestTimeout)
}

package auth

import (
	"fmt"
	"regexp"

	"github.com/kbukum/labauth/auth/password"
	"github.com/kbukum/labauth/auth/token"
)

// Config holds all authentication configuration.
type Config struct {
	Password password.Config `yaml:"password" mapstructure:"password"`
	Token    token.Config    `yaml:"token" mapstructure:"token"`
	Policy   PolicyConfig    `yaml:"policy" mapstructure:"policy"`
}

// ApplyDefaults sets sensible defaults on every sub-configuration.
func (c *Config) ApplyDefaults() {
	c.Password.ApplyDefaults()
	c.Token.ApplyDefaults()
	c.Policy.ApplyDefaults()
}

// Validate checks every sub-configuration.
func (c *Config) Validate() error {
	if err := c.Password.Validate(); err != nil {
		return fmt.Errorf("auth.password: %w", err)
	}
	if err := c.Token.Validate(); err != nil {
		return fmt.Errorf("auth.token: %w", err)
	}
	if err := c.Policy.Validate(); err != nil {
		return fmt.Errorf("auth.policy: %w", err)
	}
	return nil
}

// Describe returns a one-liner for the startup log. The secret is masked.
// Example: "token=HS256 ttl=1h0m0s secret=<redacted> password=bcrypt"
func (c *Config) Describe() string {
	secret := "<unset>"
	if c.Token.Secret != "" {
		secret = "<redacted>"
	}
	return fmt.Sprintf("token=%s ttl=%s secret=%s password=%s",
		c.Token.Method, c.Token.TTL, secret, c.Password.Algorithm)
}

// PolicyConfig bounds usernames and passwords accepted by Register.
type PolicyConfig struct {
	UsernameMinLength int `yaml:"username_min_length" mapstructure:"username_min_length"`
	UsernameMaxLength int `yaml:"username_max_length" mapstructure:"username_max_length"`
	PasswordMinLength int `yaml:"password_min_length" mapstructure:"password_min_length"`
	// PasswordMaxLength is in bytes; bcrypt ignores anything past 72.
	PasswordMaxLength int `yaml:"password_max_length" mapstructure:"password_max_length"`
}

// usernamePattern is the accepted username alphabet.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

func (c *PolicyConfig) ApplyDefaults() {
	if c.UsernameMinLength == 0 {
		c.UsernameMinLength = 3
	}
	if c.UsernameMaxLength == 0 {
		c.UsernameMaxLength = 64
	}
	if c.PasswordMinLength == 0 {
		c.PasswordMinLength = 6
	}
	if c.PasswordMaxLength == 0 {
		c.PasswordMaxLength = 72
	}
}

func (c *PolicyConfig) Validate() error {
	if c.UsernameMinLength < 1 || c.UsernameMinLength > c.UsernameMaxLength {
		return fmt.Errorf("username length bounds %d..%d are invalid", c.UsernameMinLength, c.UsernameMaxLength)
	}
	if c.PasswordMinLength < 1 || c.PasswordMinLength > c.PasswordMaxLength {
		return fmt.Errorf("password length bounds %d..%d are invalid", c.PasswordMinLength, c.PasswordMaxLength)
	}
	if c.PasswordMaxLength > 72 {
		return fmt.Errorf("password_max_length must be <= 72 (got: %d)", c.PasswordMaxLength)
	}
	return nil
}

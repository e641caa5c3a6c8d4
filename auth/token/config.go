package token

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// SigningMethod names a supported HMAC algorithm.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

const (
	// MinSecretLength is the shortest accepted signing secret in bytes.
	MinSecretLength = 32
	DefaultTTL      = time.Hour
)

// Config configures the token issuer. Secret has no default and must be
// provisioned through the environment.
type Config struct {
	Secret string        `yaml:"-" mapstructure:"secret"`
	Method SigningMethod `yaml:"method" mapstructure:"method"`
	Issuer string        `yaml:"issuer" mapstructure:"issuer"`
	// TTL is the lifetime of tokens issued at login (default: 1h).
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.TTL == 0 {
		c.TTL = DefaultTTL
	}
}

// Validate checks the configuration. Error messages never include the secret.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("token.secret is required (set AUTH_TOKEN_SECRET)")
	}
	if len(c.Secret) < MinSecretLength {
		return fmt.Errorf("token.secret must be at least %d bytes (got: %d)", MinSecretLength, len(c.Secret))
	}
	if c.signingMethod() == nil {
		return fmt.Errorf("token.method %q is not supported (use HS256, HS384 or HS512)", c.Method)
	}
	if c.TTL < 0 {
		return fmt.Errorf("token.ttl must be non-negative (got: %s)", c.TTL)
	}
	return nil
}

// String renders the configuration with the secret masked, so a Config that
// ends up in a log line or error message does not disclose it.
func (c Config) String() string {
	secret := "<unset>"
	if c.Secret != "" {
		secret = "<redacted>"
	}
	return fmt.Sprintf("{Secret:%s Method:%s Issuer:%s TTL:%s}", secret, c.Method, c.Issuer, c.TTL)
}

func (c *Config) signingMethod() *gojwt.SigningMethodHMAC {
	switch c.Method {
	case HS256:
		return gojwt.SigningMethodHS256
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	default:
		return nil
	}
}

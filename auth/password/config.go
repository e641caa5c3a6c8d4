package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Algorithm represents supported password hashing algorithms.
type Algorithm string

const (
	AlgorithmBcrypt   Algorithm = "bcrypt"
	AlgorithmArgon2id Algorithm = "argon2id"
)

const (
	DefaultBcryptCost    = 12
	DefaultArgon2Time    = 1
	DefaultArgon2Memory  = 64 * 1024
	DefaultArgon2Threads = 4
)

// Config configures password hashing behavior.
type Config struct {
	// Algorithm selects the hashing algorithm (default: "bcrypt").
	Algorithm Algorithm `yaml:"algorithm" mapstructure:"algorithm"`

	// BcryptCost is only used when Algorithm is "bcrypt".
	BcryptCost int `yaml:"bcrypt_cost" mapstructure:"bcrypt_cost"`

	Argon2Time    uint32 `yaml:"argon2_time" mapstructure:"argon2_time"`
	Argon2Memory  uint32 `yaml:"argon2_memory" mapstructure:"argon2_memory"` // KiB
	Argon2Threads uint8  `yaml:"argon2_threads" mapstructure:"argon2_threads"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = AlgorithmBcrypt
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = DefaultBcryptCost
	}
	if c.Argon2Time == 0 {
		c.Argon2Time = DefaultArgon2Time
	}
	if c.Argon2Memory == 0 {
		c.Argon2Memory = DefaultArgon2Memory
	}
	if c.Argon2Threads == 0 {
		c.Argon2Threads = DefaultArgon2Threads
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch c.Algorithm {
	case AlgorithmBcrypt:
		if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
			return fmt.Errorf("password.bcrypt_cost must be between %d and %d (got: %d)",
				bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
		}
	case AlgorithmArgon2id:
		if c.Argon2Time > argon2MaxTime {
			return fmt.Errorf("password.argon2_time must be at most %d (got: %d)", argon2MaxTime, c.Argon2Time)
		}
		if c.Argon2Memory < 8*uint32(c.Argon2Threads) || c.Argon2Memory > argon2MaxMemory {
			return fmt.Errorf("password.argon2_memory out of range (got: %d KiB)", c.Argon2Memory)
		}
	default:
		return fmt.Errorf("password.algorithm %q is not supported (use bcrypt or argon2id)", c.Algorithm)
	}
	return nil
}

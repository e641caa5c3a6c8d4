// Package password hashes and verifies user passwords.
//
// Two algorithms are available behind the Hasher interface: bcrypt (the
// default) and argon2id. Both produce self-describing strings that embed the
// salt and cost parameters, so a stored hash can be verified without any
// side-channel configuration and hashes made with older parameters keep
// verifying after the configuration changes.
//
//	hasher, err := password.NewHasher(cfg)
//	hash, err := hasher.Hash("s3cret!")
//	ok := hasher.Verify("s3cret!", hash)
package password

import "errors"

// Hasher hashes a plaintext password with a fresh random salt and verifies a
// plaintext against a previously produced hash.
//
// Verify never panics or returns an error: malformed, truncated or foreign
// hashes simply do not verify.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

var (
	// ErrEmptyPassword is returned by Hash for an empty plaintext.
	ErrEmptyPassword = errors.New("password: empty password")
	// ErrPasswordTooLong is returned by the bcrypt hasher for inputs above
	// 72 bytes, which bcrypt would otherwise truncate silently.
	ErrPasswordTooLong = errors.New("password: longer than 72 bytes")
)

// NewHasher creates the Hasher selected by cfg.
func NewHasher(cfg Config) (Hasher, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Algorithm {
	case AlgorithmArgon2id:
		return NewArgon2Hasher(
			WithArgon2Time(cfg.Argon2Time),
			WithArgon2Memory(cfg.Argon2Memory),
			WithArgon2Threads(cfg.Argon2Threads),
		), nil
	default:
		return NewBcryptHasher(WithCost(cfg.BcryptCost)), nil
	}
}

// Package credential persists username to password-hash mappings.
//
// Every Store enforces username uniqueness with an atomic check-then-insert:
// of two concurrent inserts for the same username exactly one succeeds and
// the other fails with ErrAlreadyExists. Failures of the backing storage are
// reported as ErrUnavailable so callers can tell them apart from outcomes.
package credential

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrAlreadyExists is returned by Insert when the username is taken.
	ErrAlreadyExists = errors.New("credential: identity already exists")
	// ErrNotFound is returned by Lookup when no identity has the username.
	ErrNotFound = errors.New("credential: identity not found")
	// ErrUnavailable wraps any failure of the backing storage.
	ErrUnavailable = errors.New("credential: store unavailable")
)

// Identity is a registered user. It is immutable once inserted.
type Identity struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store is the persistence contract shared by all backends. Implementations
// are safe for concurrent use.
type Store interface {
	// Insert stores id unless its username already exists.
	Insert(ctx context.Context, id Identity) error
	// Lookup returns the identity registered under username.
	Lookup(ctx context.Context, username string) (Identity, error)
}

// unavailable wraps a backend failure so that errors.Is(err, ErrUnavailable)
// holds while the cause stays inspectable.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}

// Package authctx carries the authenticated principal through a request
// context.
package authctx

import (
	"context"
	"errors"
	"time"
)

// Principal is the identity resolved from a verified bearer token.
type Principal struct {
	Username  string    `json:"username"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

type contextKey struct{}

// ErrNoPrincipal is returned when the context carries no principal.
var ErrNoPrincipal = errors.New("authctx: no principal in context")

// Set stores p in the context.
func Set(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// Get returns the principal stored by Set.
func Get(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}

// GetOrError returns ErrNoPrincipal when the context carries none.
func GetOrError(ctx context.Context) (Principal, error) {
	p, ok := Get(ctx)
	if !ok {
		return Principal{}, ErrNoPrincipal
	}
	return p, nil
}

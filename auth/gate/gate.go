// Package gate decides whether a request carries a valid bearer token.
package gate

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/kbukum/labauth/auth"
	"github.com/kbukum/labauth/auth/authctx"
	"github.com/kbukum/labauth/auth/token"
)

// Verifier checks a token string. *token.Issuer implements it.
type Verifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

// Gate resolves the principal of a request from its Authorization header.
// It holds no mutable state and never touches the credential store.
type Gate struct {
	verifier Verifier
}

// New creates a Gate over v.
func New(v Verifier) *Gate {
	return &Gate{verifier: v}
}

// Authorize extracts the bearer token from header and verifies it.
//
// No Authorization header, or "Bearer" with nothing after it, yields
// auth.ErrMissingToken. Any other scheme and every verification failure
// yield auth.ErrInvalidToken. A done ctx yields auth.ErrUnavailable.
func (g *Gate) Authorize(ctx context.Context, header http.Header) (authctx.Principal, error) {
	if err := ctx.Err(); err != nil {
		return authctx.Principal{}, fmt.Errorf("%w: %w", auth.ErrUnavailable, err)
	}

	raw, err := bearerToken(header)
	if err != nil {
		return authctx.Principal{}, err
	}

	claims, err := g.verifier.Verify(raw)
	if err != nil {
		return authctx.Principal{}, fmt.Errorf("%w: %w", auth.ErrInvalidToken, err)
	}
	return authctx.Principal{
		Username:  claims.Username(),
		TokenID:   claims.ID,
		ExpiresAt: claims.Expiry(),
	}, nil
}

// bearerToken returns the credentials of a "Bearer <token>" header. The
// scheme is case-insensitive.
func bearerToken(header http.Header) (string, error) {
	value := strings.TrimSpace(header.Get("Authorization"))
	if value == "" {
		return "", auth.ErrMissingToken
	}

	scheme, credentials, _ := strings.Cut(value, " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return "", auth.ErrInvalidToken
	}
	credentials = strings.TrimSpace(credentials)
	if credentials == "" {
		return "", auth.ErrMissingToken
	}
	return credentials, nil
}

// Package token issues and verifies signed, time-bound bearer tokens.
//
// Tokens are compact JWS strings (header.payload.signature, base64url) signed
// with an HMAC secret that only the Issuer holds. The server keeps no record of
// issued tokens: a token stays valid until its expiry and there is no
// revocation.
package token

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verification failures. Every error returned by Verify matches exactly one of
// them under errors.Is.
var (
	ErrMalformed    = errors.New("token: malformed")
	ErrBadSignature = errors.New("token: bad signature")
	ErrExpired      = errors.New("token: expired")
)

// Claims is the token payload.
type Claims struct {
	gojwt.RegisteredClaims
}

// Username returns the subject the token was issued to.
func (c *Claims) Username() string { return c.Subject }

// Expiry returns the expiry time, or the zero time when unset.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Issuer signs and verifies tokens. It holds only immutable state and is safe
// for concurrent use.
type Issuer struct {
	method *gojwt.SigningMethodHMAC
	key    []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
	parser *gojwt.Parser
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithClock replaces time.Now. Token times have one second resolution.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

// NewIssuer validates cfg and builds an Issuer. The secret is copied.
func NewIssuer(cfg Config, opts ...Option) (*Issuer, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	i := &Issuer{
		method: cfg.signingMethod(),
		key:    []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}

	parserOpts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{i.method.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithIssuedAt(),
		gojwt.WithStrictDecoding(),
		gojwt.WithTimeFunc(i.now),
	}
	if i.issuer != "" {
		parserOpts = append(parserOpts, gojwt.WithIssuer(i.issuer))
	}
	i.parser = gojwt.NewParser(parserOpts...)
	return i, nil
}

// DefaultTTL returns the configured lifetime for login tokens.
func (i *Issuer) DefaultTTL() time.Duration { return i.ttl }

// Issue signs a token for subject valid from now until now+ttl. A zero ttl
// yields a token that is already expired.
func (i *Issuer) Issue(subject string, ttl time.Duration) (string, error) {
	signed, _, err := i.IssueWithClaims(subject, ttl)
	return signed, err
}

// IssueWithClaims is Issue that also returns the signed claims.
func (i *Issuer) IssueWithClaims(subject string, ttl time.Duration) (string, *Claims, error) {
	if subject == "" {
		return "", nil, errors.New("token: empty subject")
	}
	if ttl < 0 {
		return "", nil, fmt.Errorf("token: negative ttl %s", ttl)
	}

	now := i.now()
	claims := &Claims{RegisteredClaims: gojwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    i.issuer,
		IssuedAt:  gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}}

	signed, err := gojwt.NewWithClaims(i.method, claims).SignedString(i.key)
	if err != nil {
		return "", nil, fmt.Errorf("token: sign: %w", err)
	}
	return signed, claims, nil
}

// Verify checks the signature and expiry of tokenString and returns its
// claims. The token is valid while now < exp. HMAC comparison is constant time.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := i.parser.ParseWithClaims(tokenString, claims, i.keyFunc)
	if err != nil {
		return nil, classify(err)
	}
	if !tok.Valid || claims.Subject == "" {
		return nil, ErrMalformed
	}
	return claims, nil
}

func (i *Issuer) keyFunc(t *gojwt.Token) (interface{}, error) {
	if t.Method.Alg() != i.method.Alg() {
		return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
	}
	return i.key, nil
}

// classify maps parser errors onto the three verification failures. Claim
// problems other than expiry (wrong issuer, missing exp, iat in the future)
// count as malformed.
func classify(err error) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid), errors.Is(err, gojwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	case errors.Is(err, gojwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}

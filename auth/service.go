package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/labauth/auth/password"
	"github.com/kbukum/labauth/auth/token"
	"github.com/kbukum/labauth/credential"
	"github.com/kbukum/labauth/logger"
	"github.com/kbukum/labauth/observability"
)

// TokenIssuer signs login tokens. *token.Issuer implements it.
type TokenIssuer interface {
	IssueWithClaims(subject string, ttl time.Duration) (string, *token.Claims, error)
	DefaultTTL() time.Duration
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service registers users and logs them in. It is safe for concurrent use;
// all shared state lives in the store.
type Service struct {
	store     credential.Store
	hasher    password.Hasher
	issuer    TokenIssuer
	policy    PolicyConfig
	log       *logger.Logger
	metrics   *observability.Metrics
	now       func() time.Time
	dummyHash string
}

// Option configures a Service.
type Option func(*Service)

// WithPolicy replaces the default input policy.
func WithPolicy(p PolicyConfig) Option {
	return func(s *Service) { s.policy = p }
}

// WithMetrics records register and login outcomes on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock replaces time.Now for identity timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wires the service. It hashes a random throwaway password with
// hasher so Login can spend the same work on unknown users.
func NewService(store credential.Store, hasher password.Hasher, issuer TokenIssuer, log *logger.Logger, opts ...Option) (*Service, error) {
	s := &Service{
		store:  store,
		hasher: hasher,
		issuer: issuer,
		log:    log.WithComponent("auth"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.policy.ApplyDefaults()
	if err := s.policy.Validate(); err != nil {
		return nil, fmt.Errorf("auth policy: %w", err)
	}

	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("auth: prepare dummy hash: %w", err)
	}
	s.dummyHash = dummy
	return s, nil
}

// Register creates an identity for username. The password is hashed before
// the store is touched and is not retained.
func (s *Service) Register(ctx context.Context, username, pass string) (err error) {
	ctx, span := observability.StartSpan(ctx, "auth.register")
	start := time.Now()
	defer func() { s.finish(ctx, span, "register", err, start) }()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err := s.policy.checkRegistration(username, pass); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}

	err = s.store.Insert(ctx, credential.Identity{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	switch {
	case err == nil:
	case errors.Is(err, credential.ErrAlreadyExists):
		return ErrUsernameTaken
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	s.log.WithContext(ctx).Info("User registered", map[string]interface{}{
		logger.FieldUsername: username,
	})
	return nil
}

// Login checks the credentials and issues a token with the default TTL.
func (s *Service) Login(ctx context.Context, username, pass string) (result *LoginResult, err error) {
	ctx, span := observability.StartSpan(ctx, "auth.login")
	start := time.Now()
	defer func() { s.finish(ctx, span, "login", err, start) }()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if username == "" || pass == "" {
		return nil, ErrInvalidCredentials
	}

	id, err := s.store.Lookup(ctx, username)
	switch {
	case err == nil:
	case errors.Is(err, credential.ErrNotFound):
		s.hasher.Verify(pass, s.dummyHash)
		return nil, ErrInvalidCredentials
	default:
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if !s.hasher.Verify(pass, id.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	signed, claims, err := s.issuer.IssueWithClaims(id.Username, s.issuer.DefaultTTL())
	if err != nil {
		return nil, fmt.Errorf("auth: issue token: %w", err)
	}
	return &LoginResult{Token: signed, Username: id.Username, ExpiresAt: claims.Expiry()}, nil
}

// finish ends the span, records metrics and logs failures worth attention.
func (s *Service) finish(ctx context.Context, span trace.Span, op string, err error, start time.Time) {
	outcome := Outcome(err)
	span.SetAttributes(
		attribute.String(observability.AttrOperation, op),
		attribute.String(observability.AttrOutcome, outcome),
	)
	if outcome == OutcomeUnavailable || outcome == OutcomeError {
		observability.SetSpanError(ctx, err)
		s.log.WithContext(ctx).Error("Auth operation failed", logger.ErrorFields(op, err))
	}
	span.End()

	if s.metrics != nil {
		s.metrics.RecordAuth(ctx, op, outcome, time.Since(start))
	}
}

// Outcome labels.
const (
	OutcomeOK                 = "ok"
	OutcomeInvalidInput       = "invalid_input"
	OutcomeUsernameTaken      = "username_taken"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeUnavailable        = "unavailable"
	OutcomeError              = "error"
)

// Outcome maps an error returned by Service onto a metric label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrInvalidInput):
		return OutcomeInvalidInput
	case errors.Is(err, ErrUsernameTaken):
		return OutcomeUsernameTaken
	case errors.Is(err, ErrInvalidCredentials):
		return OutcomeInvalidCredentials
	case errors.Is(err, ErrUnavailable):
		return OutcomeUnavailable
	default:
		return OutcomeError
	}
}

// Package app composes the labauth service: credential store, password
// hasher, token issuer, auth service, request gate and HTTP routes.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kbukum/labauth/auth"
	"github.com/kbukum/labauth/auth/gate"
	"github.com/kbukum/labauth/auth/password"
	"github.com/kbukum/labauth/auth/token"
	"github.com/kbukum/labauth/component"
	"github.com/kbukum/labauth/credential"
	"github.com/kbukum/labauth/database"
	"github.com/kbukum/labauth/logger"
	"github.com/kbukum/labauth/observability"
	"github.com/kbukum/labauth/redis"
	"github.com/kbukum/labauth/server"
	"github.com/kbukum/labauth/server/endpoint"
)

const meterName = "github.com/kbukum/labauth"

// App holds the wired service. Infrastructure components are created by New
// and started by the caller; Configure builds everything that needs them.
type App struct {
	cfg     *Config
	log     *logger.Logger
	metrics *observability.Metrics

	db     *database.Component
	redis  *redis.Component
	server *server.Server

	store   credential.Store
	service *auth.Service
	gate    *gate.Gate
}

// New builds the infrastructure components for the configured backend and
// the HTTP server with its server-wide middleware. cfg must have defaults
// applied and be valid.
func New(cfg *Config, log *logger.Logger) (*App, error) {
	metrics, err := observability.NewMetrics(observability.Meter(meterName))
	if err != nil {
		return nil, fmt.Errorf("app: metrics: %w", err)
	}

	a := &App{cfg: cfg, log: log, metrics: metrics}
	switch cfg.Store.Backend {
	case BackendSQL:
		a.db = database.NewComponent(cfg.Store.Database, log).WithMigrations(credential.Migrations)
	case BackendRedis:
		a.redis = redis.NewComponent(cfg.Store.Redis, log)
	}

	a.server = server.New(cfg.HTTP, log)
	a.server.ApplyMiddleware()
	return a, nil
}

// Components returns the infrastructure components to start before Configure.
func (a *App) Components() []component.Component {
	var out []component.Component
	if a.db != nil {
		out = append(out, a.db)
	}
	if a.redis != nil {
		out = append(out, a.redis)
	}
	return out
}

// Configure wires store, hasher, issuer, service and gate, then registers the
// routes. checker feeds /health.
func (a *App) Configure(ctx context.Context, checker endpoint.HealthChecker) error {
	store, err := a.newStore()
	if err != nil {
		return err
	}
	hasher, err := password.NewHasher(a.cfg.Auth.Password)
	if err != nil {
		return fmt.Errorf("app: password hasher: %w", err)
	}
	issuer, err := token.NewIssuer(a.cfg.Auth.Token)
	if err != nil {
		return fmt.Errorf("app: token issuer: %w", err)
	}
	service, err := auth.NewService(store, hasher, issuer, a.log,
		auth.WithPolicy(a.cfg.Auth.Policy),
		auth.WithMetrics(a.metrics),
	)
	if err != nil {
		return fmt.Errorf("app: auth service: %w", err)
	}

	a.store = store
	a.service = service
	a.gate = gate.New(issuer)

	a.registerRoutes(checker)
	return nil
}

func (a *App) newStore() (credential.Store, error) {
	switch a.cfg.Store.Backend {
	case BackendMemory:
		return credential.NewMemoryStore(), nil
	case BackendSQL:
		db := a.db.DB()
		if db == nil {
			return nil, fmt.Errorf("app: database component not started")
		}
		return credential.NewSQLStore(db), nil
	case BackendRedis:
		client := a.redis.Client()
		if client == nil {
			return nil, fmt.Errorf("app: redis component not started")
		}
		return credential.NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("app: unknown store backend %q", a.cfg.Store.Backend)
	}
}

// Server returns the HTTP server; wrap it with server.NewComponent to run it.
func (a *App) Server() *server.Server { return a.server }

// Handler returns the complete HTTP handler.
func (a *App) Handler() http.Handler { return a.server.Handler() }

package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	apperrors "github.com/kbukum/labauth/errors"
	"github.com/kbukum/labauth/logger"
	"github.com/kbukum/labauth/server/endpoint"
	"github.com/kbukum/labauth/server/middleware"
)

// shutdownGrace bounds Stop when the config sets no shutdown timeout.
const shutdownGrace = 5 * time.Second

// Server is the HTTP server backed by Gin, served over HTTP/1.1 and h2c.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	handler    http.Handler
	config     Config
	log        *logger.Logger

	mu       sync.Mutex
	listener net.Listener
}

// New creates a new Server. The Gin engine is created but no middleware is
// applied yet; call ApplyMiddleware before registering routes.
func New(cfg Config, log *logger.Logger) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.NoRoute(func(c *gin.Context) {
		RespondWithError(c, apperrors.NotFound("route"))
	})
	engine.NoMethod(func(c *gin.Context) {
		RespondWithError(c, apperrors.MethodNotAllowed(c.Request.Method))
	})

	s := &Server{
		engine:  engine,
		handler: engine,
		config:  cfg,
		log:     log.WithComponent("server"),
	}
	// With no trusted proxies, ClientIP is the socket peer and forwarding
	// headers are ignored.
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		s.log.Warn("Invalid trusted proxies, trusting none", logger.ErrorFields("trusted_proxies", err))
		_ = engine.SetTrustedProxies(nil)
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
	return s
}

// GinEngine returns the underlying Gin engine for route registration.
func (s *Server) GinEngine() *gin.Engine {
	return s.engine
}

// Handler returns the full handler: server-wide middleware in front of Gin,
// wrapped for h2c. Tests serve it with httptest.
func (s *Server) Handler() http.Handler {
	return h2c.NewHandler(s.handler, &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          s.config.IdleTimeout,
	})
}

// ApplyMiddleware installs the server-wide stack in front of Gin: recovery,
// request id, request logging, CORS, body size limit and request deadline.
func (s *Server) ApplyMiddleware() {
	stack := []middleware.Middleware{
		middleware.Recovery(s.log),
		middleware.RequestID(),
		middleware.RequestLogger(s.log),
	}
	if len(s.config.CORS.AllowedOrigins) > 0 {
		stack = append(stack, middleware.CORS(&s.config.CORS))
	}
	if s.config.MaxBodySize != "" {
		stack = append(stack, middleware.BodySizeLimit(s.config.MaxBodySize))
	}
	stack = append(stack, middleware.Timeout(s.config.RequestTimeout))
	s.handler = middleware.Chain(stack...)(s.engine)
}

// RegisterDefaultEndpoints registers /health, /live and /info.
func (s *Server) RegisterDefaultEndpoints(serviceName string, checker endpoint.HealthChecker) {
	s.engine.GET("/health", endpoint.Health(serviceName, checker))
	s.engine.GET("/live", endpoint.Liveness(serviceName))
	s.engine.GET("/info", endpoint.Info(serviceName))
}

// Start binds the port and begins serving, over TLS when a certificate is
// configured. It returns once the listener is bound so the caller knows the
// port is ready; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	tlsCfg, err := s.config.TLS.BuildServer()
	if err != nil {
		return fmt.Errorf("server tls: %w", err)
	}

	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.httpServer.Handler = s.Handler()
	s.httpServer.TLSConfig = tlsCfg
	go func() {
		var err error
		if tlsCfg != nil {
			err = s.httpServer.ServeTLS(listener, "", "")
		} else {
			err = s.httpServer.Serve(listener)
		}
		if err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	s.log.Info("HTTP server started", map[string]interface{}{
		"addr": listener.Addr().String(),
		"tls":  tlsCfg != nil,
	})
	return nil
}

// Stop gracefully shuts down the server within the configured shutdown timeout.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = shutdownGrace
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("HTTP server shut down successfully")
	return nil
}

// Addr returns the bound address once started, otherwise the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/labauth/auth"
	"github.com/kbukum/labauth/auth/authctx"
	apperrors "github.com/kbukum/labauth/errors"
	"github.com/kbukum/labauth/server"
	"github.com/kbukum/labauth/server/endpoint"
	"github.com/kbukum/labauth/server/middleware"
)

// Response bodies of the demo endpoints.
const (
	msgRegistered      = "User registered successfully"
	msgSecure          = "secure data for JWT users only"
	msgTestSecure      = "This is a secured endpoint!"
	msgVersions        = "Hi! I am backend to test feature toggle feature!"
	msgNewGreeting     = "✨ Hello from the NEW greeting (flag on)!"
	msgClassicGreeting = "Hello from the classic greeting (flag off)."
)

// headerFeatures lets a client opt into flagged behaviour per request.
const headerFeatures = "X-Features"

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type greetingResponse struct {
	NewGreetingEnabled bool   `json:"newGreetingEnabled"`
	Message            string `json:"message"`
}

func (a *App) registerRoutes(checker endpoint.HealthChecker) {
	engine := a.server.GinEngine()
	engine.Use(middleware.Metrics(a.metrics))

	a.server.RegisterDefaultEndpoints(a.cfg.Name, checker)

	api := engine.Group("/api")
	api.GET("/ping", func(c *gin.Context) { server.RespondText(c, "pong") })
	api.GET("/version", endpoint.Version())
	api.GET("/versions", func(c *gin.Context) { server.RespondText(c, msgVersions) })
	api.GET("/features", a.features)
	api.GET("/greeting", a.greeting)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", a.register)
	authGroup.POST("/login", middleware.RateLimit(a.loginRateLimit()), a.login)

	protected := api.Group("", middleware.Auth(a.gate, a.log))
	protected.GET("/secure", func(c *gin.Context) { server.RespondText(c, msgSecure) })
	protected.GET("/test/secure", func(c *gin.Context) { server.RespondText(c, msgTestSecure) })
	protected.GET("/me", a.me)
}

func (a *App) loginRateLimit() middleware.RateLimitConfig {
	cfg := a.cfg.HTTP.LoginRateLimit
	cfg.OnLimit = func(c *gin.Context) {
		ctx := c.Request.Context()
		a.metrics.RecordRateLimited(ctx, c.FullPath())
		a.log.WithContext(ctx).Warn("Login rate limited", map[string]interface{}{
			"client_ip": c.ClientIP(),
		})
	}
	return cfg
}

func (a *App) register(c *gin.Context) {
	req, ok := bindCredentials(c)
	if !ok {
		return
	}
	if err := a.service.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		server.RespondWithError(c, auth.ToAppError(err))
		return
	}
	server.RespondText(c, msgRegistered)
}

func (a *App) login(c *gin.Context) {
	req, ok := bindCredentials(c)
	if !ok {
		return
	}
	result, err := a.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		server.RespondWithError(c, auth.ToAppError(err))
		return
	}
	server.RespondText(c, result.Token)
}

func (a *App) me(c *gin.Context) {
	p, err := authctx.GetOrError(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, auth.ToAppError(err))
		return
	}
	p.ExpiresAt = p.ExpiresAt.UTC()
	server.RespondOK(c, p)
}

func (a *App) features(c *gin.Context) {
	server.RespondOK(c, a.cfg.Features)
}

func (a *App) greeting(c *gin.Context) {
	enabled := a.cfg.Features.NewGreeting ||
		strings.Contains(strings.ToLower(c.GetHeader(headerFeatures)), "newgreeting")
	msg := msgClassicGreeting
	if enabled {
		msg = msgNewGreeting
	}
	server.RespondOK(c, greetingResponse{NewGreetingEnabled: enabled, Message: msg})
}

// bindCredentials decodes the JSON body. It writes the error response itself
// and reports false when the body is unusable.
func bindCredentials(c *gin.Context) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			server.RespondWithError(c, apperrors.BodyTooLarge(tooLarge.Limit))
		} else {
			server.RespondWithError(c, apperrors.InvalidInput("body", "expected a JSON object with username and password"))
		}
		return req, false
	}
	return req, true
}

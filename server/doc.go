// Package server provides the labauth HTTP server: a Gin engine behind a
// server-wide net/http middleware stack, served over HTTP/1.1 and h2c.
//
// # Middleware
//
// Server-wide, in order (server/middleware):
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: request id generation and propagation into the logger
//   - RequestLogger: one log line per request with status and duration
//   - CORS: cross-origin headers and preflight
//   - BodySizeLimit: request body cap
//   - Timeout: per-request deadline carried into the credential store
//
// Route-scoped Gin handlers: Auth (bearer gate), RateLimit (token bucket per
// client IP) and Metrics (OpenTelemetry request instruments).
//
// # Endpoints
//
// Built-in endpoints (server/endpoint): /health aggregates component health,
// /live confirms the process serves HTTP, /info reports build and uptime.
package server

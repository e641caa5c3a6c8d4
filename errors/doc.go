// Package errors provides the structured error type returned by the HTTP
// surface. Domain packages keep plain sentinel errors; the transport maps them
// onto an AppError carrying a stable code, a fixed message, the HTTP status and
// a retryable flag.
package errors

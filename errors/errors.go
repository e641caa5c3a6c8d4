package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// StoreUnavailable is returned when the credential store fails or the request
// deadline expires before it answers. Callers may retry with backoff.
func StoreUnavailable() *AppError {
	return &AppError{
		Code: ErrCodeStoreUnavailable, Message: "The service is temporarily unavailable. Please try again.",
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
	}
}

// RateLimited creates a new AppError for too many requests.
func RateLimited() *AppError {
	return &AppError{
		Code: ErrCodeRateLimited, Message: "Too many requests. Please wait a moment and try again.",
		HTTPStatus: http.StatusTooManyRequests, Retryable: true,
	}
}

// NotFound creates a new AppError for a missing resource.
func NotFound(resource string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// MethodNotAllowed creates a new AppError for a known path called with the
// wrong method.
func MethodNotAllowed(method string) *AppError {
	return &AppError{
		Code: ErrCodeMethodNotAllowed, Message: fmt.Sprintf("Method %s is not allowed here.", method),
		HTTPStatus: http.StatusMethodNotAllowed,
	}
}

// BodyTooLarge creates a new AppError for a request body over limit bytes.
func BodyTooLarge(limit int64) *AppError {
	return &AppError{
		Code: ErrCodeBodyTooLarge, Message: fmt.Sprintf("Request body exceeds %d bytes.", limit),
		HTTPStatus: http.StatusRequestEntityTooLarge,
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// UsernameTaken is the registration conflict. The message is the one the
// register endpoint has always returned.
func UsernameTaken() *AppError {
	return &AppError{
		Code: ErrCodeUsernameTaken, Message: "Username already exists",
		HTTPStatus: http.StatusConflict,
	}
}

// InvalidCredentials is the single login failure for unknown users and wrong
// passwords alike.
func InvalidCredentials() *AppError {
	return &AppError{
		Code: ErrCodeInvalidCredentials, Message: "Invalid username or password",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Unauthorized creates the uniform bearer rejection.
func Unauthorized() *AppError {
	return &AppError{
		Code: ErrCodeUnauthorized, Message: "Authentication required.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Internal creates a new AppError for an internal server error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred. Please try again or contact support.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}

package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Availability
const (
	// ErrCodeStoreUnavailable indicates the credential store could not be reached in time.
	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	ErrCodeRateLimited      ErrorCode = "RATE_LIMITED"
)

// Request data
const (
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeUsernameTaken indicates a registration conflict on the username.
	ErrCodeUsernameTaken    ErrorCode = "USERNAME_TAKEN"
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	ErrCodeBodyTooLarge     ErrorCode = "BODY_TOO_LARGE"
)

// Authentication
const (
	// ErrCodeInvalidCredentials covers both an unknown user and a wrong password.
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	// ErrCodeUnauthorized covers a missing, malformed, forged or expired bearer token.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
)

const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

var retryableCodes = map[ErrorCode]bool{
	ErrCodeStoreUnavailable: true,
	ErrCodeRateLimited:      true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

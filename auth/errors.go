package auth

import (
	"errors"

	apperrors "github.com/kbukum/labauth/errors"
)

var (
	// ErrInvalidInput is returned for empty or malformed usernames and passwords.
	ErrInvalidInput = errors.New("auth: invalid input")
	// ErrUsernameTaken is returned by Register when the username exists.
	ErrUsernameTaken = errors.New("auth: username taken")
	// ErrInvalidCredentials is returned by Login for an unknown user or a wrong password.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrMissingToken is returned by the gate when no bearer token was sent.
	ErrMissingToken = errors.New("auth: missing token")
	// ErrInvalidToken is returned by the gate for any token that fails verification.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrUnavailable is returned when the store fails or the request deadline
	// passes. It is the only retryable kind.
	ErrUnavailable = errors.New("auth: unavailable")
)

// ToAppError maps an error from Service or the gate onto the response the
// HTTP layer sends. Missing and invalid tokens share one body. Validation
// details survive for ErrInvalidInput; every other message is fixed per kind.
func ToAppError(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, ErrInvalidInput):
		if appErr, ok := apperrors.AsAppError(err); ok {
			return appErr
		}
		return apperrors.InvalidInput("", "username or password")
	case errors.Is(err, ErrUsernameTaken):
		return apperrors.UsernameTaken()
	case errors.Is(err, ErrInvalidCredentials):
		return apperrors.InvalidCredentials()
	case errors.Is(err, ErrMissingToken), errors.Is(err, ErrInvalidToken):
		return apperrors.Unauthorized()
	case errors.Is(err, ErrUnavailable):
		return apperrors.StoreUnavailable().WithCause(err)
	default:
		return apperrors.Internal(err)
	}
}

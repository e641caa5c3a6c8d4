package auth

import (
	"fmt"

	"github.com/kbukum/labauth/validation"
)

// checkRegistration applies the policy to a registration attempt. The
// returned error matches ErrInvalidInput and carries the *errors.AppError
// with per-field details. Messages never echo the password.
func (c *PolicyConfig) checkRegistration(username, pass string) error {
	v := validation.New().
		Required("username", username).
		MinLength("username", username, c.UsernameMinLength).
		MaxLength("username", username, c.UsernameMaxLength).
		Pattern("username", username, usernamePattern).
		Required("password", pass).
		MinLength("password", pass, c.PasswordMinLength).
		MaxBytes("password", pass, c.PasswordMaxLength)
	if appErr := v.Validate(); appErr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, appErr)
	}
	return nil
}

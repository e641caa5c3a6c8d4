package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kbukum/labauth/errors"
)

// Validator collects validation errors.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an AppError listing every field error, or nil.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}
	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return errors.Validation(strings.Join(messages, "; ")).
		WithDetail("fields", v.errors)
}

// Required checks that a string is not blank. Later checks on the same field
// are skipped once it fails.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// MinLength checks a minimum length in characters. Empty values are left to Required.
func (v *Validator) MinLength(field, value string, minLen int) *Validator {
	if value != "" && !v.failed(field) && utf8.RuneCountInString(value) < minLen {
		v.AddError(field, fmt.Sprintf("must be at least %d characters", minLen))
	}
	return v
}

// MaxLength checks a maximum length in characters.
func (v *Validator) MaxLength(field, value string, maxLen int) *Validator {
	if !v.failed(field) && utf8.RuneCountInString(value) > maxLen {
		v.AddError(field, fmt.Sprintf("must be %d characters or less", maxLen))
	}
	return v
}

// MaxBytes checks a maximum encoded length in bytes.
func (v *Validator) MaxBytes(field, value string, maxBytes int) *Validator {
	if !v.failed(field) && len(value) > maxBytes {
		v.AddError(field, fmt.Sprintf("must be %d bytes or less", maxBytes))
	}
	return v
}

// Pattern checks that a non-empty string matches re.
func (v *Validator) Pattern(field, value string, re *regexp.Regexp) *Validator {
	if value != "" && !v.failed(field) && !re.MatchString(value) {
		v.AddError(field, "does not match required format")
	}
	return v
}

// Custom applies a custom validation condition.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}

func (v *Validator) failed(field string) bool {
	for _, e := range v.errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

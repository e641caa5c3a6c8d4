// Package validation checks request input.
//
// Struct validates request DTOs through go-playground/validator tags.
// The Validator builder collects field errors for rules that are easier to
// state in code, such as the username and password policy:
//
//	v := validation.New()
//	v.Required("username", name).MinLength("username", name, 3)
//	if err := v.Validate(); err != nil { ... }
package validation

// Package auth implements registration and login on top of a credential
// store, a password hasher and a token issuer.
//
// Subpackages:
//
//   - auth/password: bcrypt and argon2id hashing
//   - auth/token:    signed, time-bound bearer tokens
//   - auth/gate:     bearer token checks for protected requests
//   - auth/authctx:  the authenticated principal in a request context
//
// Errors returned by Service and gate.Gate match one of the sentinels in this
// package under errors.Is. Login reports the same ErrInvalidCredentials for
// unknown users and wrong passwords and spends the same hashing work on both.
package auth

// Package logger provides structured logging over zerolog.
//
// Loggers are passed explicitly to the components that need them and scoped
// with WithComponent. Fields are plain maps so call sites stay free of
// zerolog's event builder:
//
//	log := logger.New(&cfg, "labauth").WithComponent("auth")
//	log.Info("user registered", logger.Fields("username", name))
//
// Nothing in this module logs passwords, password hashes or signing secrets;
// callers pass usernames and outcomes only.
package logger

// Package util holds small string helpers shared by the config loader and
// the HTTP server.
package util

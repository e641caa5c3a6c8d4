// Package version reports the build of the running labauth binary.
//
// Version, commit and build time are set at compile time via -ldflags and
// fall back to the VCS stamps in the Go build info:
//
//	go build -ldflags "-X github.com/kbukum/labauth/version.Version=1.4.0" ./cmd/labauth
package version

// Package version reports build information for fnkit binaries.
//
// Version, commit and build time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/fnkit/version.Version=1.2.0" ./cmd/fnpipe
//
// Unset values fall back to the VCS data embedded by the Go toolchain.
package version

// Package errors provides the structured error type used across fnkit.
// It carries machine-readable codes, human-readable messages and optional
// details so that callers such as the CLI can render a consistent body.
package errors

package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Definition and pipeline errors
const (
	// ErrCodeInvalidPipeline indicates a structurally invalid stage sequence.
	ErrCodeInvalidPipeline ErrorCode = "INVALID_PIPELINE"
	// ErrCodeTypeMismatch indicates a result of an unexpected type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
	// ErrCodeNotFound indicates a named function or definition was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Input errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidConfig indicates the configuration could not be loaded or is invalid.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var usageCodes = map[ErrorCode]bool{
	ErrCodeInvalidPipeline: true,
	ErrCodeNotFound:        true,
	ErrCodeInvalidInput:    true,
	ErrCodeMissingField:    true,
	ErrCodeInvalidConfig:   true,
}

// IsUsageCode reports whether the code describes a caller mistake
// (bad definition, flag or input) rather than a runtime failure.
func IsUsageCode(code ErrorCode) bool {
	return usageCodes[code]
}

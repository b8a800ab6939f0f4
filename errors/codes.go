package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Composition errors (fatal, never retried)
const (
	// ErrCodeConfigurationConflict indicates a set-once handle met an already populated field.
	ErrCodeConfigurationConflict ErrorCode = "CONFIGURATION_CONFLICT"
	// ErrCodeMissingPath indicates a request was dispatched without a path.
	ErrCodeMissingPath ErrorCode = "MISSING_PATH"
	// ErrCodeMissingResponder indicates a request was dispatched without a responder.
	ErrCodeMissingResponder ErrorCode = "MISSING_RESPONDER"
	// ErrCodeMissingTransport indicates a request was dispatched without a transport.
	ErrCodeMissingTransport ErrorCode = "MISSING_TRANSPORT"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Exchange errors
const (
	// ErrCodeFetchFailed indicates the server answered with a failure status.
	ErrCodeFetchFailed ErrorCode = "FETCH_FAILED"
	// ErrCodeConnectionFailed indicates a failed connection to a service.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnectionFailed: true,
	ErrCodeTimeout:          true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

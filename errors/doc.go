// Package errors provides the structured error type shared by fetchkit
// packages. Every AppError carries a machine-readable code; comparisons with
// errors.Is match on that code, so package-level sentinels can be checked
// against freshly constructed errors that carry call-specific details.
package errors

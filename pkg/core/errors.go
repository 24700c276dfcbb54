// Package core provides the shared error model for simtap. Targeting
// errors (no match, bad frame, malformed tree) are typed in the packages
// that detect them; this package classifies everything at the device and
// input boundary.
package core

import (
	"fmt"
)

// ErrorCategory classifies a boundary error for reporting.
type ErrorCategory int

// Error categories.
const (
	ErrCategoryNone       ErrorCategory = iota // No error
	ErrCategoryInput                           // Invalid flags or query parameters
	ErrCategoryConnection                      // Transport to the device failed
	ErrCategoryDevice                          // No usable simulator, not booted, unknown UDID
	ErrCategoryTimeout                         // Fetch or dispatch timed out
	ErrCategoryConfig                          // Bad config file
)

// String returns the string representation of ErrorCategory.
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryNone:
		return "none"
	case ErrCategoryInput:
		return "input"
	case ErrCategoryConnection:
		return "connection"
	case ErrCategoryDevice:
		return "device"
	case ErrCategoryTimeout:
		return "timeout"
	case ErrCategoryConfig:
		return "config"
	default:
		return "unknown"
	}
}

// ExecutionError represents a structured error with category and details.
type ExecutionError struct {
	Category ErrorCategory
	Code     string                 // Machine-readable code: device_not_booted, transport_failed, etc.
	Message  string                 // Human-readable message
	Details  map[string]interface{} // Additional context
	Cause    error                  // Underlying error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// WithCause returns a copy of the error with the given cause.
func (e *ExecutionError) WithCause(cause error) *ExecutionError {
	return &ExecutionError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Details:  e.Details,
		Cause:    cause,
	}
}

// WithMessage returns a copy of the error with a custom message.
func (e *ExecutionError) WithMessage(msg string) *ExecutionError {
	return &ExecutionError{
		Category: e.Category,
		Code:     e.Code,
		Message:  msg,
		Details:  e.Details,
		Cause:    e.Cause,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *ExecutionError) WithDetails(details map[string]interface{}) *ExecutionError {
	merged := make(map[string]interface{})
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &ExecutionError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Details:  merged,
		Cause:    e.Cause,
	}
}

// Predefined boundary errors.
var (
	ErrInvalidInput = &ExecutionError{
		Category: ErrCategoryInput,
		Code:     "invalid_input",
		Message:  "invalid command input",
	}
	ErrMissingRequired = &ExecutionError{
		Category: ErrCategoryInput,
		Code:     "missing_required",
		Message:  "missing required argument",
	}

	ErrTransportFailed = &ExecutionError{
		Category: ErrCategoryConnection,
		Code:     "transport_failed",
		Message:  "device transport command failed",
	}
	ErrSnapshotFailed = &ExecutionError{
		Category: ErrCategoryConnection,
		Code:     "snapshot_failed",
		Message:  "could not fetch accessibility snapshot",
	}

	ErrDeviceNotFound = &ExecutionError{
		Category: ErrCategoryDevice,
		Code:     "device_not_found",
		Message:  "simulator not found",
	}
	ErrDeviceNotBooted = &ExecutionError{
		Category: ErrCategoryDevice,
		Code:     "device_not_booted",
		Message:  "simulator is not booted",
	}
	ErrNoBootedDevice = &ExecutionError{
		Category: ErrCategoryDevice,
		Code:     "no_booted_device",
		Message:  "no booted simulator found",
	}

	ErrBootTimeout = &ExecutionError{
		Category: ErrCategoryTimeout,
		Code:     "boot_timeout",
		Message:  "simulator did not boot in time",
	}

	ErrInvalidConfig = &ExecutionError{
		Category: ErrCategoryConfig,
		Code:     "invalid_config",
		Message:  "invalid configuration",
	}
)

// NewExecutionError creates a new ExecutionError with the given parameters.
func NewExecutionError(category ErrorCategory, code, message string) *ExecutionError {
	return &ExecutionError{
		Category: category,
		Code:     code,
		Message:  message,
	}
}

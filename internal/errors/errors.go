// Package errors provides coded domain errors for Watchdog and maps them to
// the process exit statuses the command line contract promises.
//
// Usage:
//
//	// In components - return typed errors
//	if err := unix.InotifyAddWatch(...); err != nil {
//	    return errors.Wrap(err, errors.CodeAddFailed, "failed to add watch")
//	}
//
//	// At the top level - turn the code into an exit status
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    os.Exit(domainErr.ExitStatus())
//	}
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeMissingArgument Code = "MISSING_ARGUMENT"
	CodeValidation      Code = "VALIDATION"
	CodeInitFailed      Code = "INIT_FAILED"
	CodeAddFailed       Code = "ADD_WATCH_FAILED"
	CodeInvalidPath     Code = "INVALID_PATH"
	CodeReadFailed      Code = "READ_FAILED"
	CodeNotifyInit      Code = "NOTIFY_INIT_FAILED"

	// Non-fatal codes. They are logged and never turned into an exit.
	CodeCloseFailed   Code = "CLOSE_FAILED"
	CodePresentFailed Code = "PRESENT_FAILED"
	CodeCorruptStream Code = "CORRUPT_STREAM"
)

// Exit statuses. These values are part of the command line contract.
const (
	ExitSuccess         = 0
	ExitMissingArgument = 1
	ExitInitFailed      = 2
	ExitAddFailed       = 3
	ExitInvalidPath     = 4
	ExitReadFailed      = 5
	ExitNotifyInit      = 6
)

// ExitStatus returns the process exit status for an error code.
// Codes that never terminate the process map to the usage status.
func (c Code) ExitStatus() int {
	switch c {
	case CodeInitFailed:
		return ExitInitFailed
	case CodeAddFailed:
		return ExitAddFailed
	case CodeInvalidPath:
		return ExitInvalidPath
	case CodeReadFailed:
		return ExitReadFailed
	case CodeNotifyInit:
		return ExitNotifyInit
	default:
		return ExitMissingArgument
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code
	Message string
	Details any
	cause   error // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// ExitStatus returns the exit status for this error.
func (e *Error) ExitStatus() int {
	return e.Code.ExitStatus()
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrMissingArgument = &Error{Code: CodeMissingArgument, Message: "missing path argument"}
	ErrValidation      = &Error{Code: CodeValidation, Message: "validation error"}
	ErrInitFailed      = &Error{Code: CodeInitFailed, Message: "failed to initialize event channel"}
	ErrAddFailed       = &Error{Code: CodeAddFailed, Message: "failed to add watch"}
	ErrInvalidPath     = &Error{Code: CodeInvalidPath, Message: "invalid path"}
	ErrReadFailed      = &Error{Code: CodeReadFailed, Message: "failed to read events"}
	ErrNotifyInit      = &Error{Code: CodeNotifyInit, Message: "failed to initialize notifications"}
	ErrCloseFailed     = &Error{Code: CodeCloseFailed, Message: "failed to close watch"}
	ErrPresentFailed   = &Error{Code: CodePresentFailed, Message: "failed to present notification"}
	ErrCorruptStream   = &Error{Code: CodeCorruptStream, Message: "corrupt event stream"}
)

// StatusOf returns the exit status carried by err.
// A nil error is success; an error without a code is a usage failure.
func StatusOf(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.ExitStatus()
	}
	return ExitMissingArgument
}

// Constructor functions for creating errors with custom messages.

// MissingArgument creates a missing argument error.
func MissingArgument(msg string) *Error {
	return &Error{Code: CodeMissingArgument, Message: msg}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// InvalidPathf creates an invalid path error with formatted message.
func InvalidPathf(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidPath, Message: fmt.Sprintf(format, args...)}
}

// CorruptStreamf creates a corrupt stream error with formatted message.
func CorruptStreamf(format string, args ...any) *Error {
	return &Error{Code: CodeCorruptStream, Message: fmt.Sprintf(format, args...)}
}

// Newf creates an error with a code and formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}

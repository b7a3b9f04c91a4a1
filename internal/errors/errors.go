// Package errors provides centralized error definitions and error handling
// utilities for the texsnip codebase. It defines the error kinds the extension
// raises around external tool invocation and configuration loading, error
// constructors with context wrapping, and classification helpers.
//
// # Error Types
//
// Domain-specific errors represent errors from specific subsystems:
//   - CommandNotFoundError: the external executable could not be launched
//   - CommandFailedError: the external command exited with an unexpected status
//   - FatalError: an unrecoverable configuration problem with a user-facing message
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewCommandFailedError("pdflatex snippet.tex", 1, output)
//
//	err := errors.NewFatalError("bad config", cause).WithPath(cfgPath)
//
// Checking errors:
//
//	var failed *errors.CommandFailedError
//	if errors.As(err, &failed) {
//	    log.Error("renderer failed", "exit_code", failed.ExitCode)
//	}
//
//	if errors.Is(err, errors.ErrCommandNotFound) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Command-related sentinel errors
var (
	// ErrCommandNotFound indicates that an external executable could not be launched.
	ErrCommandNotFound = New("command not found")
	// ErrCommandFailed indicates that an external command exited with an unexpected status.
	ErrCommandFailed = New("command failed")
)

// Configuration-related sentinel errors
var (
	// ErrBadConfig indicates that a configuration file could not be parsed.
	ErrBadConfig = New("bad configuration")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// Error is the base interface for all texsnip errors. It extends the standard
// error interface with additional methods for classification.
type Error interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the error is transient and the operation
	// may succeed on retry.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// CommandNotFoundError indicates that an external executable could not be
// launched at all, typically because it is not installed or not on PATH.
//
// Example:
//
//	err := errors.NewCommandNotFoundError("pdflatex --version", osErr)
type CommandNotFoundError struct {
	baseError
	Command string
}

// NewCommandNotFoundError creates a new CommandNotFoundError.
// command is the rendered command line, cause the launch error from the OS.
func NewCommandNotFoundError(command string, cause error) *CommandNotFoundError {
	return &CommandNotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("command %s failed", command),
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
		Command: command,
	}
}

// Is checks if this error matches the target.
func (e *CommandNotFoundError) Is(target error) bool {
	if _, ok := target.(*CommandNotFoundError); ok {
		return true
	}
	if target == ErrCommandNotFound {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// CommandFailedError indicates that an external command launched but exited
// with a status other than the expected one. It carries the exit code and the
// captured output so callers can surface the tool's own diagnostics.
//
// Example:
//
//	var failed *errors.CommandFailedError
//	if errors.As(err, &failed) {
//	    fmt.Println(failed.ExitCode, string(failed.Output))
//	}
type CommandFailedError struct {
	baseError
	Command  string
	ExitCode int
	Output   []byte // Combined stdout and stderr of the failed command
}

// NewCommandFailedError creates a new CommandFailedError.
func NewCommandFailedError(command string, exitCode int, output []byte) *CommandFailedError {
	return &CommandFailedError{
		baseError: baseError{
			message:    fmt.Sprintf("command %s failed (code %d)", command, exitCode),
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
		Command:  command,
		ExitCode: exitCode,
		Output:   output,
	}
}

// WithCause adds a cause to the error.
func (e *CommandFailedError) WithCause(cause error) *CommandFailedError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *CommandFailedError) Error() string {
	msg := e.message
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	if out := strings.TrimSpace(string(e.Output)); out != "" {
		msg = fmt.Sprintf("%s\ncommand output: %s", msg, out)
	}
	return msg
}

// Is checks if this error matches the target.
func (e *CommandFailedError) Is(target error) bool {
	if _, ok := target.(*CommandFailedError); ok {
		return true
	}
	if target == ErrCommandFailed {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// FatalError represents an unrecoverable problem with a user-facing message,
// such as a settings file that exists but cannot be parsed. The cache variant
// of the settings store suppresses this error kind and proceeds with defaults.
//
// Example:
//
//	err := errors.NewFatalError("bad config", jsonErr).WithPath(cfgPath)
type FatalError struct {
	baseError
	Path string
}

// NewFatalError creates a new FatalError.
func NewFatalError(message string, cause error) *FatalError {
	return &FatalError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityCritical,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithPath adds the offending file path to the error context.
func (e *FatalError) WithPath(path string) *FatalError {
	e.Path = path
	return e
}

// WithSeverity sets the error severity.
func (e *FatalError) WithSeverity(s Severity) *FatalError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *FatalError) Error() string {
	prefix := "fatal error"
	if e.Path != "" {
		prefix = fmt.Sprintf("fatal error [path=%s]", e.Path)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *FatalError) Is(target error) bool {
	if _, ok := target.(*FatalError); ok {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var texErr Error
	if As(err, &texErr) {
		return texErr.IsRetryable()
	}

	return false
}

// IsUserFacing returns true if the error message is safe to display to end
// users. Errors that don't implement the Error interface are treated as
// internal.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var texErr Error
	if As(err, &texErr) {
		return texErr.IsUserFacing()
	}

	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement the Error interface.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var texErr Error
	if As(err, &texErr) {
		return texErr.Severity()
	}

	return SeverityError
}

// IsFatal returns true if the error is (or wraps) a FatalError.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var fatal *FatalError
	return As(err, &fatal)
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with an additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

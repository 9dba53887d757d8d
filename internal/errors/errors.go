// Package errors provides error types with actionable suggestions for
// the plotdev tool. Errors include contextual information to help
// developers resolve issues quickly.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors for use with errors.Is().
var (
	// ErrConfig indicates a configuration error.
	ErrConfig = errors.New("configuration error")
	// ErrGen indicates a UI code generation failure.
	ErrGen = errors.New("generation error")
	// ErrTest indicates a test run failure.
	ErrTest = errors.New("test error")
	// ErrDeps indicates a dependency refresh failure.
	ErrDeps = errors.New("dependency error")
	// ErrGit indicates a git operation failure.
	ErrGit = errors.New("git error")
	// ErrRun indicates an application launch failure.
	ErrRun = errors.New("run error")
	// ErrNotFound indicates a required tool or resource was not found.
	ErrNotFound = errors.New("not found")
)

// DevError is the base error type for plotdev errors.
// It wraps an underlying error and provides additional context.
type DevError struct {
	// Kind is the category of error (e.g., ErrGen, ErrGit).
	Kind error
	// Message is the human-readable error message.
	Message string
	// Suggestion provides actionable advice for resolving the error.
	Suggestion string
	// Cause is the underlying error that caused this error.
	Cause error
	// Details provides additional context (e.g., file path, command output).
	Details map[string]string
}

// Error implements the error interface.
func (e *DevError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *DevError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Kind
}

// Is reports whether any error in err's chain matches the target.
func (e *DevError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// Format returns a formatted error message with suggestions.
func (e *DevError) Format() string {
	var sb strings.Builder

	sb.WriteString("Error: ")
	sb.WriteString(e.Error())
	sb.WriteString("\n")

	if len(e.Details) > 0 {
		sb.WriteString("\nDetails:\n")
		for k, v := range e.Details {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", k, v))
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\nSuggestion: ")
		sb.WriteString(e.Suggestion)
		sb.WriteString("\n")
	}

	return sb.String()
}

// WithDetails adds details to the error.
func (e *DevError) WithDetails(key, value string) *DevError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying cause of the error.
func (e *DevError) WithCause(cause error) *DevError {
	e.Cause = cause
	return e
}

// New creates a new DevError with the given kind and message.
func New(kind error, message string) *DevError {
	return &DevError{
		Kind:    kind,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(err error, kind error, message string) *DevError {
	return &DevError{
		Kind:    kind,
		Message: message,
		Cause:   err,
	}
}

// WithSuggestion creates a new error with a suggestion.
func WithSuggestion(kind error, message, suggestion string) *DevError {
	return &DevError{
		Kind:       kind,
		Message:    message,
		Suggestion: suggestion,
	}
}

// CompileFailed creates an error for a UI compiler failure on one file.
func CompileFailed(compiler, source string, exitCode int) *DevError {
	err := &DevError{
		Kind:    ErrGen,
		Message: fmt.Sprintf("%s failed on %s", compiler, source),
		Details: map[string]string{
			"compiler":  compiler,
			"source":    source,
			"exit_code": fmt.Sprintf("%d", exitCode),
		},
	}
	err.Suggestion = fmt.Sprintf("Check that %s is installed and that %s is a valid Qt Designer file.", compiler, source)
	return err
}

// TestsFailed creates an error for a failing test run.
func TestsFailed(failed, total int) *DevError {
	return &DevError{
		Kind:    ErrTest,
		Message: fmt.Sprintf("%d of %d tests failed", failed, total),
		Details: map[string]string{
			"failed": fmt.Sprintf("%d", failed),
			"total":  fmt.Sprintf("%d", total),
		},
		Suggestion: "Review the pytest output above for the failing assertions.",
	}
}

// InstallFailed creates an error for a pip install failure.
func InstallFailed(pkg, source string, exitCode int) *DevError {
	return &DevError{
		Kind:    ErrDeps,
		Message: fmt.Sprintf("failed to install %s", pkg),
		Details: map[string]string{
			"package":   pkg,
			"source":    source,
			"exit_code": fmt.Sprintf("%d", exitCode),
		},
		Suggestion: "Check network access to the package source and that pip is up to date.",
	}
}

// MergeConflict creates an error for a merge that produced conflicts.
func MergeConflict(from, to string) *DevError {
	return &DevError{
		Kind:    ErrGit,
		Message: fmt.Sprintf("merging %s into %s produced conflicts", from, to),
		Suggestion: fmt.Sprintf("Resolve the conflicts on %s manually, or abort with 'git merge --abort'. Nothing was pushed.", to),
	}
}

// ToolNotFound creates an error for a missing external tool.
func ToolNotFound(tool string) *DevError {
	return &DevError{
		Kind:       ErrNotFound,
		Message:    fmt.Sprintf("required tool %q not found", tool),
		Suggestion: fmt.Sprintf("Install %s and make sure it is on your PATH.", tool),
	}
}

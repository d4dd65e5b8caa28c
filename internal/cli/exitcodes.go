package cli

import (
	"errors"

	"github.com/thenoetrevino/mytasks/internal/models"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags or arguments that cannot be parsed.
	ExitUsage = 2

	// ExitNotFound indicates a requested task does not exist.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: Unreadable stdin or a due date that cannot be parsed.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Blank title or description.
	ExitValidation = 5
)

// CodedError carries the process exit code of a failed command
type CodedError struct {
	Code int
	Err  error
}

func (e *CodedError) Error() string {
	return e.Err.Error()
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

// WithExitCode attaches an exit code to err
func WithExitCode(code int, err error) error {
	return &CodedError{Code: code, Err: err}
}

// ExitCode returns the exit code for an error returned by a command
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ExitError
}

// ExitCodeForDataError maps a repository failure to an exit code.
// A write that touched no rows means the task id does not exist.
func ExitCodeForDataError(err models.DataError) int {
	if err == models.DatabaseWriteError {
		return ExitNotFound
	}
	return ExitError
}

// Reported reports whether err was already printed by an OutputFormatter.
// Every CodedError returned by the task commands comes from Fail.
func Reported(err error) bool {
	var coded *CodedError
	return errors.As(err, &coded)
}

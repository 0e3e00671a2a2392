package cmd

import (
	"errors"
	"fmt"
)

// Exit codes for cmdseq.
const (
	ExitSuccess = 0 // the command ran and the position was handled
	ExitFailure = 1 // state, I/O or spawn failure
	ExitUsage   = 2 // help requested or unknown flag
	ExitBadArgs = 3 // malformed <count> <command> pairs
)

// ExitError carries the exit code the process should terminate with.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		if e.Message == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

package shell

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned when a command exceeds its timeout.
var ErrTimeout = errors.New("command timed out")

// NotFoundError is returned when the executable cannot be resolved on the
// search path.
type NotFoundError struct {
	Command string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("command not found: %s", e.Command)
}

// ExecutionError is returned when a command exits non-zero. Stderr carries
// the trimmed standard-error text.
type ExecutionError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExecutionError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("command %s exited with code %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("command %s failed: %s", e.Command, e.Stderr)
}

// UnexpectedError wraps failures that are neither a non-zero exit, a
// missing executable, nor a timeout (e.g. permission denied on spawn).
type UnexpectedError struct {
	Command string
	Err     error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected error running %s: %v", e.Command, e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

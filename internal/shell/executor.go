// Package shell runs single OS processes with a bounded timeout and
// returns captured output or a classified error. Arguments are passed as
// a discrete argument vector; no shell is ever invoked, so metacharacters
// in arguments stay literal.
package shell

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/yomica/yomica/internal/config"
)

// Executor runs commands under the configured timeout and output cap.
type Executor struct {
	timeout   time.Duration
	maxOutput int64
	logger    *slog.Logger
}

// NewExecutor creates an Executor from the shell configuration.
func NewExecutor(cfg *config.Config, logger *slog.Logger) *Executor {
	if cfg == nil {
		panic("cfg is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		timeout:   time.Duration(cfg.Shell.TimeoutSeconds) * time.Second,
		maxOutput: cfg.Shell.MaxOutputBytes,
		logger:    logger,
	}
}

// Execute spawns exactly one process and waits for it to finish.
// On success it returns trimmed stdout. On failure the error is one of
// *NotFoundError, *ExecutionError, ErrTimeout or *UnexpectedError. No
// retries: a failed command is reported upward verbatim.
func (e *Executor) Execute(ctx context.Context, command string, args []string) (string, error) {
	if strings.TrimSpace(command) == "" {
		return "", &UnexpectedError{Command: command, Err: errors.New("empty command")}
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	e.logger.Info("executing command", "command", command, "args", args)

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdin = nil

	stdout := newCollector(e.maxOutput)
	stderr := newCollector(e.maxOutput)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		e.logger.Warn("command timed out", "command", command, "timeout", e.timeout)
		return "", ErrTimeout
	}

	if err != nil {
		return "", e.classify(command, err, stderr.String())
	}

	out := strings.TrimSpace(stdout.String())
	if stdout.Truncated() {
		e.logger.Warn("command output truncated", "command", command, "max_bytes", e.maxOutput)
	}
	return out, nil
}

// classify maps an exec failure to the executor's error taxonomy.
func (e *Executor) classify(command string, err error, stderrText string) error {
	var execErr *exec.Error
	if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
		e.logger.Warn("command not found", "command", command)
		return &NotFoundError{Command: command}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderrText = strings.TrimSpace(stderrText)
		e.logger.Warn("command failed",
			"command", command,
			"exit_code", exitErr.ExitCode(),
			"stderr", stderrText)
		return &ExecutionError{
			Command:  command,
			ExitCode: exitErr.ExitCode(),
			Stderr:   stderrText,
		}
	}

	e.logger.Error("unexpected command failure", "command", command, "error", err)
	return &UnexpectedError{Command: command, Err: err}
}

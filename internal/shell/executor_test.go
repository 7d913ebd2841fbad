package shell

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/yomica/yomica/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestExecutor(mutate func(*config.Config)) *Executor {
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	return NewExecutor(cfg, testLogger())
}

func TestExecute(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		exec := newTestExecutor(nil)
		out, err := exec.Execute(context.Background(), "echo", []string{"hello"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "hello" {
			t.Errorf("expected trimmed 'hello', got %q", out)
		}
	})

	t.Run("TrimsTrailingNewline", func(t *testing.T) {
		exec := newTestExecutor(nil)
		out, err := exec.Execute(context.Background(), "printf", []string{"a\n\n"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "a" {
			t.Errorf("expected %q, got %q", "a", out)
		}
	})

	t.Run("NonZeroExit", func(t *testing.T) {
		exec := newTestExecutor(nil)
		_, err := exec.Execute(context.Background(), "sh", []string{"-c", "echo broken >&2; exit 3"})
		var execErr *ExecutionError
		if !errors.As(err, &execErr) {
			t.Fatalf("expected ExecutionError, got %v", err)
		}
		if execErr.ExitCode != 3 {
			t.Errorf("expected exit code 3, got %d", execErr.ExitCode)
		}
		if execErr.Stderr != "broken" {
			t.Errorf("expected trimmed stderr 'broken', got %q", execErr.Stderr)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		exec := newTestExecutor(nil)
		_, err := exec.Execute(context.Background(), "definitely-not-a-command-xyz", nil)
		var nfErr *NotFoundError
		if !errors.As(err, &nfErr) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
		if nfErr.Command != "definitely-not-a-command-xyz" {
			t.Errorf("error does not name the command: %v", nfErr)
		}
	})

	t.Run("EmptyCommand", func(t *testing.T) {
		exec := newTestExecutor(nil)
		_, err := exec.Execute(context.Background(), "  ", nil)
		var uErr *UnexpectedError
		if !errors.As(err, &uErr) {
			t.Fatalf("expected UnexpectedError, got %v", err)
		}
	})

	t.Run("Timeout", func(t *testing.T) {
		exec := newTestExecutor(func(cfg *config.Config) {
			cfg.Shell.TimeoutSeconds = 1
		})

		start := time.Now()
		_, err := exec.Execute(context.Background(), "sleep", []string{"30"})
		elapsed := time.Since(start)

		if !errors.Is(err, ErrTimeout) {
			t.Fatalf("expected ErrTimeout, got %v", err)
		}
		// The child must have been killed, not waited for.
		if elapsed > 10*time.Second {
			t.Errorf("command was not terminated at the timeout (took %v)", elapsed)
		}
	})

	t.Run("MetacharactersStayLiteral", func(t *testing.T) {
		exec := newTestExecutor(nil)
		arg := "; rm -rf /"
		out, err := exec.Execute(context.Background(), "echo", []string{arg})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != arg {
			t.Errorf("argument was not passed literally: got %q", out)
		}
	})

	t.Run("OutputCap", func(t *testing.T) {
		exec := newTestExecutor(func(cfg *config.Config) {
			cfg.Shell.MaxOutputBytes = 8
		})
		out, err := exec.Execute(context.Background(), "echo", []string{"0123456789abcdef"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out) > 8 {
			t.Errorf("expected output capped at 8 bytes, got %d", len(out))
		}
	})
}

func TestCollector(t *testing.T) {
	c := newCollector(4)

	n, err := c.Write([]byte("abcdef"))
	if err != nil || n != 6 {
		t.Fatalf("unexpected write result: %d, %v", n, err)
	}
	if c.String() != "abcd" {
		t.Errorf("expected capped content 'abcd', got %q", c.String())
	}
	if !c.Truncated() {
		t.Error("expected truncation flag")
	}

	// Writes after the cap are swallowed without error.
	if _, err := c.Write([]byte("ghi")); err != nil {
		t.Errorf("unexpected error after cap: %v", err)
	}
	if c.String() != "abcd" {
		t.Errorf("content changed after cap: %q", c.String())
	}
}

func TestExecuteRespectsParentContext(t *testing.T) {
	exec := newTestExecutor(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := exec.Execute(ctx, "sleep", []string{"5"})
	if err == nil {
		t.Error("expected error for cancelled context")
	}
	if strings.Contains(strings.ToLower(err.Error()), "timed out") {
		// Cancellation is not a timeout.
		t.Errorf("cancellation misreported as timeout: %v", err)
	}
}

package ui

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestReadInput(t *testing.T) {
	t.Run("TrimsWhitespace", func(t *testing.T) {
		c := NewConsole(strings.NewReader("  hello world  \n"), &bytes.Buffer{})
		got, err := c.ReadInput(context.Background(), "You:")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "hello world" {
			t.Errorf("expected trimmed input, got %q", got)
		}
	})

	t.Run("EOFWithoutInput", func(t *testing.T) {
		c := NewConsole(strings.NewReader(""), &bytes.Buffer{})
		if _, err := c.ReadInput(context.Background(), "You:"); err != io.EOF {
			t.Errorf("expected io.EOF, got %v", err)
		}
	})

	t.Run("LastLineWithoutNewline", func(t *testing.T) {
		c := NewConsole(strings.NewReader("quit"), &bytes.Buffer{})
		got, err := c.ReadInput(context.Background(), "You:")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "quit" {
			t.Errorf("expected %q, got %q", "quit", got)
		}
	})

	t.Run("CancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		c := NewConsole(strings.NewReader("hello\n"), &bytes.Buffer{})
		if _, err := c.ReadInput(ctx, "You:"); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"sure\n", false},
	}

	for _, tt := range tests {
		c := NewConsole(strings.NewReader(tt.input), &bytes.Buffer{})
		got, err := c.Confirm(context.Background(), "Run it?")
		if err != nil {
			t.Fatalf("input %q: unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("input %q: expected %v, got %v", tt.input, tt.want, got)
		}
	}

	t.Run("EOFIsAnError", func(t *testing.T) {
		c := NewConsole(strings.NewReader(""), &bytes.Buffer{})
		if _, err := c.Confirm(context.Background(), "Run it?"); err == nil {
			t.Error("expected error on closed input")
		}
	})
}

func TestWriteNotice(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader(""), &out)
	c.WriteNotice("something went wrong")
	if !strings.Contains(out.String(), "something went wrong") {
		t.Errorf("notice not written: %q", out.String())
	}
}

func TestWriteToolResult(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader(""), &out)
	c.WriteToolResult("execute_shell_command", "total 0")
	if !strings.Contains(out.String(), "execute_shell_command") {
		t.Errorf("tool name not written: %q", out.String())
	}
	if !strings.Contains(out.String(), "total 0") {
		t.Errorf("tool output not written: %q", out.String())
	}
}

func TestWriteMessageEmptyIsSilent(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader(""), &out)
	c.WriteMessage("")
	if out.Len() != 0 {
		t.Errorf("expected no output for empty message, got %q", out.String())
	}
}

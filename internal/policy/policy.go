// Package policy decides, given a mode and a requested command, whether
// execution proceeds automatically, requires interactive confirmation,
// or is refused.
package policy

import (
	"context"
	"fmt"
	"path/filepath"
)

// Mode selects the approval behavior for a session.
type Mode string

const (
	// ModeSafe auto-approves allowlisted commands and silently denies
	// everything else. No prompt is ever issued.
	ModeSafe Mode = "safe"

	// ModeWild prompts once for every command, and a second time for
	// commands on the dangerous list.
	ModeWild Mode = "wild"
)

// ParseMode validates a mode string from the CLI.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSafe, ModeWild:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid mode %q (want %q or %q)", s, ModeSafe, ModeWild)
	}
}

// DeniedError reports a policy refusal. It is a policy outcome, not a
// failure: the mediation loop feeds the reason back to the model as a
// tool result.
type DeniedError struct {
	Command string
	Reason  string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("command %q denied: %s", e.Command, e.Reason)
}

// Prompter asks the user for a yes/no confirmation, blocking until a
// line of input arrives.
type Prompter interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Lists exposes the static command sets consulted for decisions.
// Satisfied by *tool.Catalog.
type Lists interface {
	IsSafe(command string) bool
	IsDangerous(command string) bool
}

// Service applies the two-mode approval policy.
type Service struct {
	mode     Mode
	lists    Lists
	prompter Prompter
}

// NewService creates a policy service for one session.
func NewService(mode Mode, lists Lists, prompter Prompter) *Service {
	return &Service{
		mode:     mode,
		lists:    lists,
		prompter: prompter,
	}
}

// Mode returns the session's approval mode.
func (s *Service) Mode() Mode {
	return s.mode
}

// Check decides whether the command may run. A nil return means
// approved. A *DeniedError return means refused with a reason. Any other
// error means the confirmation prompt itself failed.
//
// The command is reduced to its basename first, so "/bin/rm" is matched
// as "rm".
func (s *Service) Check(ctx context.Context, command string) error {
	if command == "" {
		return &DeniedError{Command: command, Reason: "empty command"}
	}
	root := filepath.Base(command)

	switch s.mode {
	case ModeSafe:
		if s.lists.IsSafe(root) {
			return nil
		}
		return &DeniedError{Command: root, Reason: "not on approved list"}

	case ModeWild:
		return s.checkWild(ctx, root)

	default:
		return &DeniedError{Command: root, Reason: fmt.Sprintf("unknown mode %q", s.mode)}
	}
}

// checkWild prompts for every command; dangerous commands need a second,
// distinct affirmative response.
func (s *Service) checkWild(ctx context.Context, root string) error {
	ok, err := s.prompter.Confirm(ctx, fmt.Sprintf("Run %q?", root))
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !ok {
		return &DeniedError{Command: root, Reason: "canceled by user"}
	}

	if s.lists.IsDangerous(root) {
		ok, err = s.prompter.Confirm(ctx, fmt.Sprintf("%q is a dangerous command. Really run it?", root))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			return &DeniedError{Command: root, Reason: "canceled by user"}
		}
	}

	return nil
}

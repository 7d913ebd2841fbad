// Package mediator orchestrates one user turn: send message, receive
// streamed model output, gate requested commands through the approval
// policy, execute them, fold results back into the transcript, and
// request a follow-up summary from the model.
package mediator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/yomica/yomica/internal/conversation"
	"github.com/yomica/yomica/internal/policy"
	"github.com/yomica/yomica/internal/provider"
	"github.com/yomica/yomica/internal/tool"
)

// followupPrompt asks the model to interpret a tool result. It is sent
// after the transcript without becoming part of it.
const followupPrompt = "Summarize the result of the tool call for the user in one or two sentences."

// Console is the user-facing surface the loop talks through.
// Satisfied by *ui.Console.
type Console interface {
	ReadInput(ctx context.Context, prompt string) (string, error)
	WriteMessage(content string)
	WriteToolResult(name, content string)
	WriteNotice(message string)
	WriteStatus(phase, message string)
}

// Loop drives a single session. It exclusively owns the transcript; no
// concurrent turns exist.
type Loop struct {
	provider provider.Provider
	policy   *policy.Service
	catalog  *tool.Catalog
	console  Console
	state    *conversation.State
	logger   *slog.Logger
}

// New creates a mediation loop for one session.
func New(p provider.Provider, pol *policy.Service, cat *tool.Catalog, console Console, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		provider: p,
		policy:   pol,
		catalog:  cat,
		console:  console,
		state:    conversation.NewState(),
		logger:   logger,
	}
}

// State exposes the session transcript (used by tests).
func (l *Loop) State() *conversation.State {
	return l.state
}

// Run is the interactive session loop. It returns nil on a clean exit
// (empty line, exit/quit sentinel, or closed input); per-turn failures
// are surfaced to the user and never terminate the session.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		input, err := l.console.ReadInput(ctx, "You:")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if isExit(input) {
			l.console.WriteMessage("Goodbye!")
			return nil
		}

		if err := l.runTurn(ctx, input); err != nil {
			l.logger.Warn("turn failed", "error", err)
			l.console.WriteNotice("Error: " + err.Error())
		}
	}
}

// RunOnce handles a single one-shot query. Tool execution is disabled:
// any function calls in the response are ignored.
func (l *Loop) RunOnce(ctx context.Context, query string) error {
	l.state.Append(conversation.Turn{Role: conversation.RoleUser, Text: query})

	text, _, err := l.generate(ctx, "")
	if err != nil {
		l.rollbackToConsistent(0)
		return err
	}

	if text == "" {
		l.console.WriteNotice("No response from model.")
		return nil
	}

	l.state.Append(conversation.Turn{Role: conversation.RoleModel, Text: text})
	l.console.WriteMessage(text)
	return nil
}

// isExit reports whether the input ends the session. An empty line and
// the exit/quit sentinels (case-insensitive) all terminate cleanly.
func isExit(input string) bool {
	switch strings.ToLower(input) {
	case "", "exit", "quit":
		return true
	}
	return false
}

// runTurn executes one user turn. Any failure leaves the transcript in a
// consistent, replayable state: incomplete trailing turns are rolled
// back before the error is returned.
func (l *Loop) runTurn(ctx context.Context, input string) error {
	before := l.state.Len()
	l.state.Append(conversation.Turn{Role: conversation.RoleUser, Text: input})

	l.console.WriteStatus("thinking", "Waiting for model...")
	text, calls, err := l.generate(ctx, "")
	if err != nil {
		l.rollbackToConsistent(before)
		return err
	}

	if text != "" {
		l.state.Append(conversation.Turn{Role: conversation.RoleModel, Text: text})
		l.console.WriteMessage(text)
	}

	if text == "" && len(calls) == 0 {
		l.console.WriteNotice("No response from model.")
		return nil
	}

	for _, call := range calls {
		if err := l.handleCall(ctx, call); err != nil {
			l.rollbackToConsistent(before)
			return err
		}
	}

	return nil
}

// generate invokes the model with the current transcript and consumes
// the stream synchronously, accumulating text and function calls.
func (l *Loop) generate(ctx context.Context, prompt string) (string, []conversation.ToolCall, error) {
	stream, err := l.provider.GenerateStream(ctx, &provider.GenerateRequest{
		History: l.state.Snapshot(),
		Prompt:  prompt,
	})
	if err != nil {
		return "", nil, err
	}
	defer stream.Close()

	var text strings.Builder
	var calls []conversation.ToolCall
	for {
		chunk, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", nil, err
		}
		text.WriteString(chunk.Delta)
		if chunk.ToolCall != nil {
			calls = append(calls, *chunk.ToolCall)
		}
	}

	return strings.TrimSpace(text.String()), calls, nil
}

// handleCall mediates a single function call: policy gate, execution,
// tool turn, follow-up summary. On follow-up failure the turns appended
// here are rolled back so no orphaned tool result survives.
func (l *Loop) handleCall(ctx context.Context, call conversation.ToolCall) error {
	appended := 0
	var resultText string

	handler, known := l.catalog.Lookup(call.Name)
	if !known {
		resultText = fmt.Sprintf("tool not found: %s", call.Name)
		l.logger.Warn("unknown tool requested", "tool", call.Name)
	} else if req, err := tool.DecodeCommandRequest(call.Args); err != nil {
		resultText = err.Error()
	} else if policyErr := l.policy.Check(ctx, req.Command); policyErr != nil {
		var denied *policy.DeniedError
		if !errors.As(policyErr, &denied) {
			// The confirmation prompt itself failed; this is a turn
			// failure, not a policy outcome.
			return policyErr
		}
		resultText = denied.Error()
		l.logger.Info("command denied", "command", req.Command, "reason", denied.Reason)
		l.console.WriteNotice("Denied: " + denied.Reason)
	} else {
		l.state.Append(conversation.Turn{
			Role:      conversation.RoleModel,
			ToolCalls: []conversation.ToolCall{call},
		})
		appended++

		l.console.WriteStatus("executing", commandLine(req))
		out, execErr := handler.Execute(ctx, call.Args)
		if execErr != nil {
			resultText = execErr.Error()
		} else {
			resultText = out
		}
	}

	l.state.Append(conversation.Turn{
		Role:       conversation.RoleTool,
		ToolResult: &conversation.ToolResult{Name: call.Name, Content: resultText},
	})
	appended++
	l.console.WriteToolResult(call.Name, resultText)

	l.console.WriteStatus("thinking", "Summarizing...")
	summary, _, err := l.generate(ctx, followupPrompt)
	if err != nil {
		l.state.RollbackLast(appended)
		return fmt.Errorf("follow-up summary failed: %w", err)
	}
	if summary != "" {
		l.state.Append(conversation.Turn{Role: conversation.RoleModel, Text: summary})
		l.console.WriteMessage(summary)
	}

	return nil
}

// rollbackToConsistent pops trailing turns until the transcript either
// ends with a model turn or shrinks back to its length before the turn
// began. This keeps the history replayable: no dangling user or tool
// turn without a paired model response survives a failure.
func (l *Loop) rollbackToConsistent(before int) {
	for l.state.Len() > before {
		last, ok := l.state.Last()
		if !ok || last.Role == conversation.RoleModel {
			return
		}
		l.state.RollbackLast(1)
	}
}

// commandLine formats a request for status display.
func commandLine(req tool.CommandRequest) string {
	if len(req.Args) == 0 {
		return req.Command
	}
	return req.Command + " " + strings.Join(req.Args, " ")
}

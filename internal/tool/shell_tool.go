package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/yomica/yomica/internal/provider"
)

// CommandRequest is the decoded argument payload of one
// execute_shell_command call. Never persisted beyond one mediation step.
type CommandRequest struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// Validate checks the decoded request.
func (r CommandRequest) Validate() error {
	if r.Command == "" {
		return errors.New("command must not be empty")
	}
	return nil
}

// DecodeCommandRequest decodes a model-supplied argument map into a
// CommandRequest and validates it.
func DecodeCommandRequest(args map[string]any) (CommandRequest, error) {
	var req CommandRequest
	if err := mapstructure.Decode(args, &req); err != nil {
		return CommandRequest{}, fmt.Errorf("invalid arguments: %w", err)
	}
	if err := req.Validate(); err != nil {
		return CommandRequest{}, fmt.Errorf("invalid arguments: %w", err)
	}
	return req, nil
}

// CommandRunner executes one vetted command. Satisfied by *shell.Executor.
type CommandRunner interface {
	Execute(ctx context.Context, command string, args []string) (string, error)
}

// ShellTool adapts the command executor to the Tool interface.
type ShellTool struct {
	runner CommandRunner
}

// NewShellTool creates the universal shell tool.
func NewShellTool(runner CommandRunner) *ShellTool {
	return &ShellTool{runner: runner}
}

// Name implements Tool.
func (t *ShellTool) Name() string {
	return ShellToolName
}

// Definition implements Tool. This schema is exposed verbatim to the
// model service per its function-calling contract.
func (t *ShellTool) Definition() provider.ToolDefinition {
	return provider.ToolDefinition{
		Name:        ShellToolName,
		Description: "Execute a single system command with optional arguments and return its output. The command is run directly, not through a shell: pipes, redirection and substitution are not available.",
		Parameters: &provider.ParameterSchema{
			Type: "object",
			Properties: map[string]provider.PropertySchema{
				"command": {
					Type:        "string",
					Description: "The executable to run, e.g. 'ls' or 'df'.",
				},
				"args": {
					Type:        "array",
					Description: "Arguments passed to the executable, one element per argument.",
					Items: &provider.PropertySchema{
						Type: "string",
					},
				},
			},
			Required: []string{"command"},
		},
	}
}

// Execute decodes the arguments and runs the command.
func (t *ShellTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	req, err := DecodeCommandRequest(args)
	if err != nil {
		return "", err
	}
	return t.runner.Execute(ctx, req.Command, req.Args)
}

var _ Tool = (*ShellTool)(nil)

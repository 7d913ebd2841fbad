// Package tool holds the fixed schema of callable tools exposed to the
// model, the allow/deny command lists consulted by the approval policy,
// and the dispatch registry mapping tool names to handlers.
package tool

import (
	"context"

	"github.com/yomica/yomica/internal/config"
	"github.com/yomica/yomica/internal/provider"
)

// ShellToolName is the single universal tool exposed to the model.
const ShellToolName = "execute_shell_command"

// defaultSafeCommands auto-execute in safe mode.
var defaultSafeCommands = []string{
	"ls", "pwd", "df", "cat", "echo", "grep", "free",
	"ps", "du", "uptime", "whoami", "date", "uname",
	"head", "tail", "wc",
}

// defaultDangerousCommands require a second confirmation in wild mode.
// Package managers are included wholesale.
var defaultDangerousCommands = []string{
	"rm", "rmdir", "sudo", "reboot", "poweroff", "shutdown",
	"mv", "cp", "dd", "mkfs", "chown", "chmod", "kill", "killall",
	"apt", "apt-get", "dnf", "yum", "pacman", "zypper", "brew", "snap",
}

// Tool represents a capability the agent can use. Tools are stateless
// between invocations.
type Tool interface {
	// Name returns the unique identifier for this tool
	Name() string

	// Definition returns the structured tool definition for the provider
	Definition() provider.ToolDefinition

	// Execute runs the tool with the arguments supplied by the model
	Execute(ctx context.Context, args map[string]any) (string, error)
}

// Catalog is constructed once at startup and never mutated afterwards.
type Catalog struct {
	safe      map[string]struct{}
	dangerous map[string]struct{}
	tools     map[string]Tool
	order     []string
}

// NewCatalog builds the catalog from the built-in command lists, any
// extras from configuration, and the given tools.
func NewCatalog(cfg *config.Config, tools ...Tool) *Catalog {
	c := &Catalog{
		safe:      make(map[string]struct{}),
		dangerous: make(map[string]struct{}),
		tools:     make(map[string]Tool),
	}

	for _, cmd := range defaultSafeCommands {
		c.safe[cmd] = struct{}{}
	}
	for _, cmd := range defaultDangerousCommands {
		c.dangerous[cmd] = struct{}{}
	}
	if cfg != nil {
		for _, cmd := range cfg.Policy.ExtraSafeCommands {
			c.safe[cmd] = struct{}{}
		}
		for _, cmd := range cfg.Policy.ExtraDangerousCommands {
			c.dangerous[cmd] = struct{}{}
		}
	}

	for _, t := range tools {
		c.tools[t.Name()] = t
		c.order = append(c.order, t.Name())
	}

	return c
}

// Definitions returns the tool definitions exposed to the model, in
// registration order.
func (c *Catalog) Definitions() []provider.ToolDefinition {
	defs := make([]provider.ToolDefinition, 0, len(c.order))
	for _, name := range c.order {
		defs = append(defs, c.tools[name].Definition())
	}
	return defs
}

// Lookup resolves a model-supplied tool name to its handler. Unknown
// names return false; callers turn that into a structured "tool not
// found" result rather than failing the turn.
func (c *Catalog) Lookup(name string) (Tool, bool) {
	t, ok := c.tools[name]
	return t, ok
}

// IsSafe reports whether the command is on the allowlist.
func (c *Catalog) IsSafe(command string) bool {
	_, ok := c.safe[command]
	return ok
}

// IsDangerous reports whether the command is on the dangerous list.
func (c *Catalog) IsDangerous(command string) bool {
	_, ok := c.dangerous[command]
	return ok
}

package config

import (
	"fmt"
	"strings"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Model.Name) == "" {
		errs = append(errs, "model.name must not be empty")
	}

	if c.Shell.TimeoutSeconds < 1 {
		errs = append(errs, "shell.timeout_seconds must be >= 1")
	}
	if c.Shell.MaxOutputBytes < 1 {
		errs = append(errs, "shell.max_output_bytes must be >= 1")
	}

	// A command must not appear on both extra lists.
	safe := make(map[string]bool, len(c.Policy.ExtraSafeCommands))
	for _, cmd := range c.Policy.ExtraSafeCommands {
		if strings.TrimSpace(cmd) == "" {
			errs = append(errs, "policy.extra_safe_commands must not contain empty entries")
			continue
		}
		safe[cmd] = true
	}
	for _, cmd := range c.Policy.ExtraDangerousCommands {
		if strings.TrimSpace(cmd) == "" {
			errs = append(errs, "policy.extra_dangerous_commands must not contain empty entries")
			continue
		}
		if safe[cmd] {
			errs = append(errs, fmt.Sprintf("policy: command %q listed as both safe and dangerous", cmd))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}

package config

import (
	"strings"
	"testing"
)

func TestValidateDefaults(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config must validate, got: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "EmptyModelName",
			mutate:  func(c *Config) { c.Model.Name = "  " },
			wantMsg: "model.name",
		},
		{
			name:    "ZeroTimeout",
			mutate:  func(c *Config) { c.Shell.TimeoutSeconds = 0 },
			wantMsg: "shell.timeout_seconds",
		},
		{
			name:    "NegativeMaxOutput",
			mutate:  func(c *Config) { c.Shell.MaxOutputBytes = -1 },
			wantMsg: "shell.max_output_bytes",
		},
		{
			name: "CommandOnBothLists",
			mutate: func(c *Config) {
				c.Policy.ExtraSafeCommands = []string{"rsync"}
				c.Policy.ExtraDangerousCommands = []string{"rsync"}
			},
			wantMsg: "both safe and dangerous",
		},
		{
			name:    "EmptySafeEntry",
			mutate:  func(c *Config) { c.Policy.ExtraSafeCommands = []string{""} },
			wantMsg: "extra_safe_commands",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

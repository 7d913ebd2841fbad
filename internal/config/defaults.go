package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Model  ModelConfig  `json:"model"`
	Shell  ShellConfig  `json:"shell"`
	Policy PolicyConfig `json:"policy"`
}

// ModelConfig selects the Gemini model used for generation.
type ModelConfig struct {
	Name string `json:"name"` // Default: "gemini-2.5-flash-lite"
}

// ShellConfig bounds command execution.
type ShellConfig struct {
	TimeoutSeconds int   `json:"timeout_seconds"`  // Default: 10
	MaxOutputBytes int64 `json:"max_output_bytes"` // Default: 1 * 1024 * 1024 (1MB)
}

// PolicyConfig extends the built-in command lists. Both lists are merged
// into the catalog at startup and never change afterwards.
type PolicyConfig struct {
	ExtraSafeCommands      []string `json:"extra_safe_commands"`
	ExtraDangerousCommands []string `json:"extra_dangerous_commands"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			Name: "gemini-2.5-flash-lite",
		},
		Shell: ShellConfig{
			TimeoutSeconds: 10,
			MaxOutputBytes: 1 * 1024 * 1024,
		},
	}
}

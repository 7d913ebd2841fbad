// Package provider defines the boundary to the language-model service.
// The mediation loop depends only on these shapes; transport, auth and
// model selection live behind them.
package provider

import (
	"context"

	"github.com/yomica/yomica/internal/conversation"
)

// Provider is the interface for LLM backends.
type Provider interface {
	// GenerateStream sends the transcript (plus an optional extra prompt)
	// to the model and returns a stream of response fragments.
	GenerateStream(ctx context.Context, req *GenerateRequest) (ResponseStream, error)

	// DefineTools registers tool definitions for native tool calling.
	// Must be called before GenerateStream if tools should be available.
	DefineTools(tools []ToolDefinition)

	// SetModel changes the active model at runtime.
	SetModel(model string) error

	// GetModel returns the currently active model name.
	GetModel() string

	// ListModels returns the names of available models.
	ListModels(ctx context.Context) ([]string, error)
}

// GenerateRequest encapsulates the parameters for one generation request.
type GenerateRequest struct {
	// History is the full conversation transcript, in order. Order is the
	// only context the model receives.
	History []conversation.Turn

	// Prompt is an optional extra user instruction appended after the
	// history without being part of the transcript (used for follow-up
	// summary requests).
	Prompt string
}

// ResponseStream is a lazy, finite, non-restartable sequence of fragments.
// Next returns io.EOF when the stream is exhausted. Close releases
// resources and must be called exactly once.
type ResponseStream interface {
	Next() (*StreamChunk, error)
	Close() error
}

// StreamChunk is a single fragment of a streamed response. Either Delta
// or ToolCall is set, never both.
type StreamChunk struct {
	// Delta is an incremental piece of text.
	Delta string

	// ToolCall is a completed function-call request.
	ToolCall *conversation.ToolCall
}

// ToolDefinition defines a tool the model can invoke. Constructed once at
// startup, immutable, shared read-only by every model call.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  *ParameterSchema // nil means no parameters
}

// ParameterSchema maps directly to standard JSON Schema.
type ParameterSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]PropertySchema `json:"properties"`
	Required   []string                  `json:"required,omitempty"`
}

// PropertySchema defines a single parameter property.
type PropertySchema struct {
	Type        string          `json:"type"`
	Description string          `json:"description,omitempty"`
	Enum        []string        `json:"enum,omitempty"`
	Items       *PropertySchema `json:"items,omitempty"`
}

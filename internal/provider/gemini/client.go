package gemini

import (
	"context"
	"iter"
	"strings"

	"google.golang.org/genai"
)

// ModelInfo contains metadata about a Gemini model from the SDK
type ModelInfo struct {
	Name             string
	InputTokenLimit  int
	OutputTokenLimit int
}

// Client defines the interface for interacting with the Gemini API.
// This abstraction allows for easier testing and potential future implementations.
type Client interface {
	// GenerateContentStream streams a generation request to the Gemini API
	GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]

	// ListModels returns a list of available model information
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// SDKClient wraps the official SDK client to satisfy Client.
type SDKClient struct {
	client *genai.Client
}

// NewSDKClient creates a new SDKClient from an SDK client.
func NewSDKClient(client *genai.Client) *SDKClient {
	return &SDKClient{client: client}
}

// GenerateContentStream calls the SDK's streaming generation method.
func (c *SDKClient) GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
	return c.client.Models.GenerateContentStream(ctx, model, contents, config)
}

// ListModels returns available model information, filtered to gemini-* text
// models (excluding embedding, image, audio, live, and robotic models).
func (c *SDKClient) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var models []ModelInfo
	for model, err := range c.client.Models.All(ctx) {
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(model.Name, "models/gemini-") &&
			!strings.Contains(model.Name, "embedding") &&
			!strings.Contains(model.Name, "image") &&
			!strings.Contains(model.Name, "audio") &&
			!strings.Contains(model.Name, "live") &&
			!strings.Contains(model.Name, "robotic") {
			models = append(models, ModelInfo{
				Name:             model.Name,
				InputTokenLimit:  int(model.InputTokenLimit),
				OutputTokenLimit: int(model.OutputTokenLimit),
			})
		}
	}
	return models, nil
}

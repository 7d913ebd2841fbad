package gemini

import (
	"context"
	"iter"

	"google.golang.org/genai"
)

// mockClient implements Client with canned responses for tests.
type mockClient struct {
	responses []*genai.GenerateContentResponse
	streamErr error

	models    []ModelInfo
	modelsErr error

	// captured request
	lastModel    string
	lastContents []*genai.Content
	lastConfig   *genai.GenerateContentConfig
}

func (m *mockClient) GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
	m.lastModel = model
	m.lastContents = contents
	m.lastConfig = config

	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		for _, resp := range m.responses {
			if !yield(resp, nil) {
				return
			}
		}
		if m.streamErr != nil {
			yield(nil, m.streamErr)
		}
	}
}

func (m *mockClient) ListModels(ctx context.Context) ([]ModelInfo, error) {
	return m.models, m.modelsErr
}

// textResponse builds a streamed response carrying a single text part.
func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Role:  "model",
					Parts: []*genai.Part{genai.NewPartFromText(text)},
				},
			},
		},
	}
}

// callResponse builds a streamed response carrying a single function call.
func callResponse(name string, args map[string]any) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Role: "model",
					Parts: []*genai.Part{
						{FunctionCall: &genai.FunctionCall{Name: name, Args: args}},
					},
				},
			},
		},
	}
}

package gemini

import (
	"github.com/yomica/yomica/internal/conversation"
	"github.com/yomica/yomica/internal/provider"
	"google.golang.org/genai"
)

// toGeminiContents converts a transcript plus an optional trailing prompt
// to Gemini Content format.
func toGeminiContents(history []conversation.Turn, prompt string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)

	for _, turn := range history {
		content := turnToGeminiContent(turn)
		if content != nil {
			contents = append(contents, content)
		}
	}

	if prompt != "" {
		contents = append(contents, &genai.Content{
			Role: "user",
			Parts: []*genai.Part{
				genai.NewPartFromText(prompt),
			},
		})
	}

	return contents
}

// turnToGeminiContent converts a single turn to Gemini Content format.
// Empty turns yield nil.
func turnToGeminiContent(turn conversation.Turn) *genai.Content {
	role := "user"
	if turn.Role == conversation.RoleModel {
		role = "model"
	}

	parts := make([]*genai.Part, 0, 1)

	if turn.Text != "" {
		parts = append(parts, genai.NewPartFromText(turn.Text))
	}

	for _, call := range turn.ToolCalls {
		parts = append(parts, &genai.Part{
			FunctionCall: &genai.FunctionCall{
				Name: call.Name,
				Args: call.Args,
			},
		})
	}

	if turn.ToolResult != nil {
		parts = append(parts, &genai.Part{
			FunctionResponse: &genai.FunctionResponse{
				Name: turn.ToolResult.Name,
				Response: map[string]any{
					"content": turn.ToolResult.Content,
				},
			},
		})
	}

	if len(parts) == 0 {
		return nil
	}

	return &genai.Content{
		Role:  role,
		Parts: parts,
	}
}

// toGeminiTools converts tool definitions to Gemini tools.
func toGeminiTools(tools []provider.ToolDefinition) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}

	functionDeclarations := make([]*genai.FunctionDeclaration, 0, len(tools))

	for _, tool := range tools {
		fd := &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
		}

		if tool.Parameters != nil {
			fd.Parameters = toGeminiSchema(tool.Parameters)
		}

		functionDeclarations = append(functionDeclarations, fd)
	}

	return []*genai.Tool{
		{FunctionDeclarations: functionDeclarations},
	}
}

// toGeminiSchema converts a ParameterSchema to a Gemini Schema.
func toGeminiSchema(params *provider.ParameterSchema) *genai.Schema {
	schema := &genai.Schema{
		Type: genai.TypeObject,
	}

	if params.Properties != nil {
		schema.Properties = make(map[string]*genai.Schema)
		for name, prop := range params.Properties {
			schema.Properties[name] = &genai.Schema{
				Type:        toGeminiType(prop.Type),
				Description: prop.Description,
			}

			if len(prop.Enum) > 0 {
				schema.Properties[name].Enum = prop.Enum
			}

			if prop.Items != nil {
				schema.Properties[name].Items = &genai.Schema{
					Type:        toGeminiType(prop.Items.Type),
					Description: prop.Items.Description,
				}
			}
		}
	}

	if len(params.Required) > 0 {
		schema.Required = params.Required
	}

	return schema
}

// toGeminiType converts a JSON Schema type tag to a Gemini Type.
func toGeminiType(typeStr string) genai.Type {
	switch typeStr {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

// defaultSafetySettings returns safety settings with blocking disabled; the
// approval policy, not the safety filter, gates what actually runs.
func defaultSafetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		{
			Category:  genai.HarmCategoryHateSpeech,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategoryDangerousContent,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategoryHarassment,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategorySexuallyExplicit,
			Threshold: genai.HarmBlockThresholdOff,
		},
	}
}

// chunksFromResponse extracts stream fragments from one streamed response.
// A single response may carry both text and function-call parts.
func chunksFromResponse(resp *genai.GenerateContentResponse) ([]provider.StreamChunk, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, nil
	}

	candidate := resp.Candidates[0]

	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, &provider.ProviderError{
			Code:    provider.ErrorCodeContentBlocked,
			Message: "content blocked by safety filters",
		}
	}

	if candidate.Content == nil {
		return nil, nil
	}

	chunks := make([]provider.StreamChunk, 0, len(candidate.Content.Parts))
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			chunks = append(chunks, provider.StreamChunk{Delta: part.Text})
		}
		if part.FunctionCall != nil {
			chunks = append(chunks, provider.StreamChunk{
				ToolCall: &conversation.ToolCall{
					Name: part.FunctionCall.Name,
					Args: part.FunctionCall.Args,
				},
			})
		}
	}

	return chunks, nil
}

// mapGeminiError maps Gemini API errors to provider errors.
func mapGeminiError(err error) error {
	if err == nil {
		return nil
	}

	if apiErr, ok := err.(*genai.APIError); ok {
		switch apiErr.Code {
		case 401, 403:
			return &provider.ProviderError{
				Code:       provider.ErrorCodeAuth,
				Message:    "authentication failed",
				Underlying: err,
			}
		case 429:
			return &provider.ProviderError{
				Code:       provider.ErrorCodeRateLimit,
				Message:    "rate limit exceeded",
				Underlying: err,
				Retryable:  true,
			}
		case 400:
			return &provider.ProviderError{
				Code:       provider.ErrorCodeInvalidRequest,
				Message:    "invalid request: " + apiErr.Message,
				Underlying: err,
			}
		case 500, 502, 503, 504:
			return &provider.ProviderError{
				Code:       provider.ErrorCodeUnavailable,
				Message:    "service unavailable",
				Underlying: err,
				Retryable:  true,
			}
		default:
			return &provider.ProviderError{
				Code:       provider.ErrorCodeNetwork,
				Message:    "API error: " + apiErr.Message,
				Underlying: err,
				Retryable:  true,
			}
		}
	}

	return &provider.ProviderError{
		Code:       provider.ErrorCodeNetwork,
		Message:    "network error",
		Underlying: err,
		Retryable:  true,
	}
}

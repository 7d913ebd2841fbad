// Package gemini implements the provider boundary on top of the official
// google.golang.org/genai SDK.
package gemini

import (
	"context"
	"io"
	"iter"
	"strings"
	"sync"

	"github.com/yomica/yomica/internal/provider"
	"google.golang.org/genai"
)

// Provider implements provider.Provider for Google Gemini.
type Provider struct {
	client Client

	mu        sync.RWMutex
	modelName string
	tools     []provider.ToolDefinition
	system    string
}

// Option configures a Provider.
type Option func(*Provider)

// WithSystemInstruction sets a system instruction sent with every request.
func WithSystemInstruction(instruction string) Option {
	return func(p *Provider) {
		p.system = instruction
	}
}

// New creates a Provider with the specified client and model.
func New(client Client, modelName string, opts ...Option) *Provider {
	p := &Provider{
		client:    client,
		modelName: modelName,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DefineTools registers tool definitions for native tool calling.
func (p *Provider) DefineTools(tools []provider.ToolDefinition) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tools = tools
}

// SetModel changes the active model at runtime.
func (p *Provider) SetModel(model string) error {
	if strings.TrimSpace(model) == "" {
		return &provider.ProviderError{
			Code:    provider.ErrorCodeInvalidRequest,
			Message: "model name must not be empty",
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modelName = model
	return nil
}

// GetModel returns the currently active model name.
func (p *Provider) GetModel() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modelName
}

// ListModels returns the names of available gemini text models.
func (p *Provider) ListModels(ctx context.Context) ([]string, error) {
	infos, err := p.client.ListModels(ctx)
	if err != nil {
		return nil, mapGeminiError(err)
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, strings.TrimPrefix(info.Name, "models/"))
	}
	return names, nil
}

// GenerateStream sends the request to the Gemini API and returns a lazy
// stream of fragments backed by the SDK's streaming iterator.
func (p *Provider) GenerateStream(ctx context.Context, req *provider.GenerateRequest) (provider.ResponseStream, error) {
	p.mu.RLock()
	model := p.modelName
	tools := p.tools
	system := p.system
	p.mu.RUnlock()

	contents := toGeminiContents(req.History, req.Prompt)

	config := &genai.GenerateContentConfig{
		SafetySettings: defaultSafetySettings(),
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if len(tools) > 0 {
		config.Tools = toGeminiTools(tools)
	}

	next, stop := iter.Pull2(p.client.GenerateContentStream(ctx, model, contents, config))
	return &responseStream{next: next, stop: stop}, nil
}

// responseStream adapts the SDK's range-over-func iterator to the pull
// shape the mediation loop consumes. Not restartable.
type responseStream struct {
	next    func() (*genai.GenerateContentResponse, error, bool)
	stop    func()
	pending []provider.StreamChunk
	done    bool
}

// Next returns the next fragment, or io.EOF when the stream ends.
func (s *responseStream) Next() (*provider.StreamChunk, error) {
	for len(s.pending) == 0 {
		if s.done {
			return nil, io.EOF
		}
		resp, err, ok := s.next()
		if !ok {
			s.done = true
			return nil, io.EOF
		}
		if err != nil {
			s.done = true
			return nil, mapGeminiError(err)
		}
		chunks, err := chunksFromResponse(resp)
		if err != nil {
			s.done = true
			return nil, err
		}
		s.pending = chunks
	}

	chunk := s.pending[0]
	s.pending = s.pending[1:]
	return &chunk, nil
}

// Close releases the underlying iterator.
func (s *responseStream) Close() error {
	s.stop()
	return nil
}

var _ provider.Provider = (*Provider)(nil)

package interview

import (
	"context"
	"fmt"

	"github.com/abhisek/interviewgen/internal/llm"
)

// Purpose labels completion logs produced by the Generator.
const Purpose = "interview-questions"

// Config controls generation requests.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// Generator issues the single completion call for a JobRequest.
type Generator struct {
	provider llm.Provider
	config   Config
}

// NewGenerator creates a Generator on top of provider.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

// Generate builds the prompt for req and calls the provider once, asking
// for a JSON object. Retries, if any, belong to the provider. The response
// is returned as-is; empty content is not treated as an error here.
func (g *Generator) Generate(ctx context.Context, req JobRequest) (*llm.Response, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	userPrompt, err := BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: SystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userPrompt},
		},
		JSONMode:    true,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("interview question generation: %w", err)
	}
	return resp, nil
}

// ModelID returns the model the generator talks to.
func (g *Generator) ModelID() string {
	return g.provider.ModelID()
}

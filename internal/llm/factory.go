package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// mockContent is what the "mock" provider answers with when it is selected
// through configuration, so the service can run without a credential.
const mockContent = `{"questions":[{"question":"Walk me through a system you designed end to end."}],"description":"A short conversation about your recent technical work."}`

// NewProvider creates a Provider from configuration, wrapped so that
// caller → retry → logging → base. Every attempt is logged.
func NewProvider(ctx context.Context, cfg Config, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini, nil)
	case "mock":
		m := NewMockProvider()
		m.SetFallback(MockResponse{Content: mockContent})
		base = m
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, logger)
	return WithRetry(logged, cfg.Retry), nil
}

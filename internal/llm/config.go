package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultOpenAIModel is used when OPENAI_MODEL is unset.
const DefaultOpenAIModel = "deepseek-chat"

// Config holds all completion client configuration.
type Config struct {
	// Provider selects the backend.
	// Values: "openai", "openrouter", "anthropic", "gemini", "mock"
	Provider string

	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig
	Anthropic  AnthropicConfig
	Gemini     GeminiConfig
	Retry      RetryConfig

	// MaxTokens and Temperature are applied to every generation request.
	// Zero leaves the provider default in place.
	MaxTokens   int
	Temperature float64
}

// OpenAIConfig configures the OpenAI-compatible backend. BaseURL points it
// at DeepSeek or any other compatible API.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenRouterConfig configures the OpenRouter backend.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// AnthropicConfig configures the Anthropic backend.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// GeminiConfig configures the Gemini backend.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts counts the first call.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with the service defaults: the
// OpenAI-compatible backend on deepseek-chat, retried up to five times.
func DefaultConfig() Config {
	return Config{
		Provider: "openai",
		OpenAI: OpenAIConfig{
			Model: DefaultOpenAIModel,
		},
		OpenRouter: OpenRouterConfig{
			Model: "deepseek/deepseek-chat",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 6,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     8 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	return configFromLookup(os.Getenv)
}

func configFromLookup(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	if p := getenv("LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	cfg.OpenAI.APIKey = getenv("OPENAI_API_KEY")
	cfg.OpenAI.BaseURL = getenv("OPENAI_BASE_URL")
	if m := getenv("OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}

	cfg.OpenRouter.APIKey = getenv("OPENROUTER_API_KEY")
	cfg.OpenRouter.BaseURL = getenv("OPENROUTER_BASE_URL")
	if m := getenv("OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}

	cfg.Anthropic.APIKey = getenv("ANTHROPIC_API_KEY")
	if m := getenv("ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	cfg.Gemini.APIKey = getenv("GEMINI_API_KEY")
	if m := getenv("GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if v := getenv("LLM_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("LLM_MAX_TOKENS must be a non-negative integer, got %q", v)
		}
		cfg.MaxTokens = n
	}
	if v := getenv("LLM_TEMPERATURE"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil || t < 0 || t > 2 {
			return Config{}, fmt.Errorf("LLM_TEMPERATURE must be a number between 0 and 2, got %q", v)
		}
		cfg.Temperature = t
	}

	return cfg, nil
}

// HasCredential reports whether the selected provider has an API key.
// The mock provider never needs one.
func (c Config) HasCredential() bool {
	switch c.Provider {
	case "openai":
		return c.OpenAI.APIKey != ""
	case "openrouter":
		return c.OpenRouter.APIKey != ""
	case "anthropic":
		return c.Anthropic.APIKey != ""
	case "gemini":
		return c.Gemini.APIKey != ""
	case "mock":
		return true
	}
	return false
}

// Model returns the configured model name for the selected provider.
func (c Config) Model() string {
	switch c.Provider {
	case "openai":
		return c.OpenAI.Model
	case "openrouter":
		return c.OpenRouter.Model
	case "anthropic":
		return resolveModel(c.Anthropic.Model, anthropicModels)
	case "gemini":
		return resolveModel(c.Gemini.Model, geminiModels)
	case "mock":
		return "mock"
	}
	return ""
}

// Validate checks that the provider is known and has its API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY is required for the openai provider", ErrNotConfigured)
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("%w: OPENROUTER_API_KEY is required for the openrouter provider", ErrNotConfigured)
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("%w: ANTHROPIC_API_KEY is required for the anthropic provider", ErrNotConfigured)
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("%w: GEMINI_API_KEY is required for the gemini provider", ErrNotConfigured)
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}

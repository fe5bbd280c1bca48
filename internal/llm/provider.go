package llm

import "context"

// Provider is the completion capability the rest of the service depends on.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Generate sends one chat completion request and returns the first
	// choice. A completion without choices yields a Response with empty
	// Content rather than an error; callers decide what empty means.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier requests are sent to.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation. Interview generation sends a single
	// user message.
	Messages []Message

	// JSONMode asks the provider for a JSON object response using its
	// native mechanism (response_format for OpenAI-compatible APIs).
	JSONMode bool

	// MaxTokens caps the response length. Zero leaves it to the provider.
	MaxTokens int

	// Temperature controls randomness. Zero leaves it to the provider.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the model output.
type Response struct {
	// Content is the first choice's message content, untouched.
	Content string

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  "test-key",
		Model:   "deepseek-chat",
		BaseURL: server.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func writeCompletion(w http.ResponseWriter, choices []map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "deepseek-chat",
		"choices": choices,
		"usage": map[string]any{
			"prompt_tokens":     40,
			"completion_tokens": 25,
			"total_tokens":      65,
		},
	})
}

func writeAPIError(w http.ResponseWriter, status int, typ string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"type":    typ,
			"message": "upstream said no",
		},
	})
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	var got map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", auth)
		}
		json.NewDecoder(r.Body).Decode(&got)
		writeCompletion(w, []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": `{"questions":["Q1"],"description":"d"}`},
			"finish_reason": "stop",
		}})
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:   "You are an interviewer.",
		Messages: []Message{{Role: RoleUser, Content: "Write questions."}},
		JSONMode: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != `{"questions":["Q1"],"description":"d"}` {
		t.Fatalf("unexpected content %q", resp.Content)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 || resp.Usage.TotalTokens != 65 {
		t.Fatalf("unexpected usage %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}

	if got["model"] != "deepseek-chat" {
		t.Fatalf("expected model deepseek-chat, got %v", got["model"])
	}
	format, _ := got["response_format"].(map[string]any)
	if format["type"] != "json_object" {
		t.Fatalf("expected json_object response_format, got %v", got["response_format"])
	}
	msgs, _ := got["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if first, _ := msgs[0].(map[string]any); first["role"] != "system" {
		t.Fatalf("expected system message first, got %v", msgs[0])
	}
}

func TestOpenAIProvider_NoJSONModeOmitsResponseFormat(t *testing.T) {
	var got map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		writeCompletion(w, []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": "plain"},
			"finish_reason": "stop",
		}})
	}

	p := newTestOpenAIProvider(t, handler)
	if _, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got["response_format"]; ok {
		t.Fatalf("expected no response_format, got %v", got["response_format"])
	}
}

func TestOpenAIProvider_NoChoicesYieldsEmptyContent(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(w, []map[string]any{})
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "" {
		t.Fatalf("expected empty content, got %q", resp.Content)
	}
}

func TestOpenAIProvider_LengthStopReason(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(w, []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": `{"questions":[`},
			"finish_reason": "length",
		}})
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StopReason != "max_tokens" {
		t.Fatalf("expected stop reason 'max_tokens', got %q", resp.StopReason)
	}
}

func TestOpenAIProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"rate limit", http.StatusTooManyRequests, func(err error) bool {
			var e *ErrRateLimit
			return errors.As(err, &e)
		}},
		{"server error", http.StatusInternalServerError, func(err error) bool {
			var e *ErrProviderUnavailable
			return errors.As(err, &e)
		}},
		{"bad gateway", http.StatusBadGateway, func(err error) bool {
			var e *ErrProviderUnavailable
			return errors.As(err, &e)
		}},
		{"unauthorized", http.StatusUnauthorized, func(err error) bool {
			var e *ErrRequestRejected
			return errors.As(err, &e) && e.StatusCode == http.StatusUnauthorized
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
				writeAPIError(w, tt.status, "error")
			})
			_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "test"}}})
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Fatalf("unexpected error type: %T (%v)", err, err)
			}
		})
	}
}

func TestOpenAIProvider_ContextCanceledPassesThrough(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(w, nil)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{Messages: []Message{{Role: RoleUser, Content: "test"}}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_UnreadableBody(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>gateway hiccup</html>"))
	})

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "test"}}})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_UnreadableBodyRetriedOnce(t *testing.T) {
	calls := 0
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"choices": "nope"}`))
	})
	retrying := WithRetry(p, RetryConfig{MaxAttempts: 6, InitialWait: time.Millisecond, MaxWait: time.Millisecond, Multiplier: 1})

	_, err := retrying.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "test"}}})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		if _, err := NewOpenAIProvider(OpenAIConfig{}); err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("default model", func(t *testing.T) {
		p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != DefaultOpenAIModel {
			t.Fatalf("expected %q, got %q", DefaultOpenAIModel, p.ModelID())
		}
	})

	t.Run("base URL override", func(t *testing.T) {
		p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: "https://api.deepseek.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "gpt-4o-mini" {
			t.Fatalf("expected 'gpt-4o-mini', got %q", p.ModelID())
		}
	})
}

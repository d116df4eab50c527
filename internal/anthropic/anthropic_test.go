package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/serenelab/serene/internal/serene"
)

func TestCompleteLiftsSystemPrompt(t *testing.T) {
	var gotReq MessagesAPIRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" {
			t.Errorf("path = %s, want /messages", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "sk-ant-test" {
			t.Errorf("x-api-key = %q", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") != AnthropicVersion {
			t.Errorf("anthropic-version = %q", r.Header.Get("anthropic-version"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(MessagesAPIResponse{
			ID:      "msg-1",
			Content: []Content{{Type: "text", Text: "You are not alone."}},
		})
	}))
	defer server.Close()

	provider := NewProviderWithToken(server.URL, "sk-ant-test")
	messages := []serene.Message{
		{Role: serene.RoleSystem, Content: "be kind"},
		{Role: serene.RoleUser, Content: "hello"},
		{Role: serene.RoleAssistant, Content: "hi"},
		{Role: serene.RoleUser, Content: "I feel low"},
	}

	reply, err := provider.Complete(context.Background(), messages, serene.Params{Model: "claude-3-5-sonnet-20241022", MaxTokens: 512, Temperature: 0.7})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if reply != "You are not alone." {
		t.Errorf("reply = %q", reply)
	}

	// The system message becomes the request's system field, never a list entry.
	if gotReq.System != "be kind" {
		t.Errorf("system = %q", gotReq.System)
	}
	if len(gotReq.Messages) != 3 {
		t.Fatalf("messages = %d, want 3 (system lifted out)", len(gotReq.Messages))
	}
	for _, m := range gotReq.Messages {
		if m.Role == "system" {
			t.Error("system role leaked into the message list")
		}
	}
	if gotReq.MaxTokens != 512 {
		t.Errorf("max_tokens = %d", gotReq.MaxTokens)
	}
}

func TestCompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]string{"type": "invalid_request_error", "message": "bad request"},
		})
	}))
	defer server.Close()

	provider := NewProviderWithToken(server.URL, "sk-ant-test")
	_, err := provider.Complete(context.Background(), nil, serene.Params{Model: "claude-3-5-sonnet-20241022", MaxTokens: 512})

	var perr *serene.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("error type = %T, want *serene.ProviderError", err)
	}
	if perr.Provider != ProviderName {
		t.Errorf("provider = %q", perr.Provider)
	}
}

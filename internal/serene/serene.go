// Package serene provides the core conversation handling for the
// supportive-chat assistant: the conversation store, the crisis keyword
// matcher, and the router that decides between the crisis short-circuit
// and a provider completion.
//
// Front ends (the web UI and the terminal REPL) only ever call
// Router.HandleTurn and render the conversation afterwards.
package serene

import (
	"context"
	"fmt"
	"strings"
)

// Provider defines the interface for chat-completion providers.
// All provider implementations (openai, anthropic, gemini) must implement
// this interface. Implementations hide provider-specific response parsing
// entirely; callers only ever see plain text or a *ProviderError.
type Provider interface {
	// Complete sends the ordered message list to the provider and returns
	// the assistant text.
	Complete(ctx context.Context, messages []Message, params Params) (string, error)
}

// Params are the sampling parameters sent with every provider call.
type Params struct {
	Model       string  // Model name without provider prefix (e.g., "gpt-4o-mini")
	MaxTokens   int     // Completion token cap
	Temperature float64 // Sampling temperature
}

// ProviderError wraps a failure from a provider adapter: a missing
// credential, a transport error, or a malformed remote response.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ParseModelString parses a model string in "provider:model" format.
// Returns (provider, model, error).
//
// Example:
//
//	provider, model, err := ParseModelString("openai:gpt-4o-mini")
//	// provider = "openai", model = "gpt-4o-mini"
func ParseModelString(modelStr string) (string, string, error) {
	parts := strings.SplitN(modelStr, ":", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid model format: %s (expected format: provider:model, e.g., openai:gpt-4o-mini)", modelStr)
	}

	provider := strings.TrimSpace(parts[0])
	model := strings.TrimSpace(parts[1])

	if provider == "" || model == "" {
		return "", "", fmt.Errorf("provider and model cannot be empty")
	}

	return provider, model, nil
}

// FormatModelString formats provider and model into "provider:model" format.
func FormatModelString(provider, model string) string {
	return fmt.Sprintf("%s:%s", provider, model)
}

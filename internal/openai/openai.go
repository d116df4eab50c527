// Package openai implements the serene.Provider interface against the
// OpenAI Chat Completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/serenelab/serene/internal/serene"
)

const (
	ProviderName   = "openai"
	DefaultBaseURL = "https://api.openai.com/v1"
)

// ChatCompletionRequest represents the request body for the Chat
// Completions endpoint.
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

// ChatMessage is the wire shape of a single message.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionResponse represents the minimal response shape returned by
// the Chat Completions endpoint.
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Index   int         `json:"index"`
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Error *APIError `json:"error,omitempty"`
}

// APIError represents an error in the API response
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Config defines the configuration interface for the OpenAI provider
type Config interface {
	GetBaseURL(provider string) (string, error)
	GetToken(provider string) (string, error)
}

// Provider implements the serene.Provider interface for OpenAI
type Provider struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewProvider creates a new OpenAI provider instance. It fails with a
// *serene.ProviderError when no token is configured.
func NewProvider(config Config) (*Provider, error) {
	baseURL, err := config.GetBaseURL(ProviderName)
	if err != nil {
		return nil, &serene.ProviderError{Provider: ProviderName, Err: err}
	}
	token, err := config.GetToken(ProviderName)
	if err != nil {
		return nil, &serene.ProviderError{Provider: ProviderName, Err: err}
	}
	return NewProviderWithToken(baseURL, token), nil
}

// NewProviderWithToken creates a provider with an explicit token, used for
// ephemeral per-session keys entered through the UI.
func NewProviderWithToken(baseURL, token string) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Provider{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Complete sends the conversation to the Chat Completions endpoint and
// returns the assistant text.
func (p *Provider) Complete(ctx context.Context, messages []serene.Message, params serene.Params) (string, error) {
	reqBody := ChatCompletionRequest{
		Model:       params.Model,
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
	}
	for _, msg := range messages {
		reqBody.Messages = append(reqBody.Messages, ChatMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", p.wrap(fmt.Errorf("error marshaling request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", p.wrap(fmt.Errorf("error creating request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", p.wrap(fmt.Errorf("error sending request: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", p.wrap(fmt.Errorf("error reading response: %v", err))
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ChatCompletionResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != nil {
			return "", p.wrap(fmt.Errorf("API error [%s]: %s (HTTP %d)", errResp.Error.Type, errResp.Error.Message, resp.StatusCode))
		}
		return "", p.wrap(fmt.Errorf("API request failed (HTTP %d): %s", resp.StatusCode, string(body)))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", p.wrap(fmt.Errorf("error parsing response: %v", err))
	}

	if len(result.Choices) == 0 {
		return "", p.wrap(fmt.Errorf("no choices in response"))
	}

	return result.Choices[0].Message.Content, nil
}

func (p *Provider) wrap(err error) error {
	return &serene.ProviderError{Provider: ProviderName, Err: err}
}

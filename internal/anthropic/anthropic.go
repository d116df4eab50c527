// Package anthropic implements the serene.Provider interface against the
// Anthropic Messages API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/serenelab/serene/internal/serene"
)

const (
	ProviderName     = "anthropic"
	DefaultBaseURL   = "https://api.anthropic.com/v1"
	AnthropicVersion = "2023-06-01"
)

// MessagesAPIRequest represents the request body for Anthropic's Messages API
type MessagesAPIRequest struct {
	Model       string         `json:"model"`
	MaxTokens   int            `json:"max_tokens"`
	Temperature float64        `json:"temperature"`
	System      string         `json:"system,omitempty"` // System prompt (optional)
	Messages    []MessageInput `json:"messages"`
}

// MessageInput represents a message in the conversation
type MessageInput struct {
	Role    string    `json:"role"`    // "user" or "assistant"
	Content []Content `json:"content"` // Array of content blocks
}

// Content represents a content block
type Content struct {
	Type string `json:"type"` // "text"
	Text string `json:"text,omitempty"`
}

// MessagesAPIResponse represents the response from Anthropic's Messages API
type MessagesAPIResponse struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Role    string    `json:"role"`
	Content []Content `json:"content"`
	Error   *APIError `json:"error,omitempty"`
}

// APIError represents an error in the API response
type APIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Config defines the configuration interface for the Anthropic provider
type Config interface {
	GetBaseURL(provider string) (string, error)
	GetToken(provider string) (string, error)
}

// Provider implements the serene.Provider interface for Anthropic
type Provider struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewProvider creates a new Anthropic provider instance
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

// Complete sends the conversation to Anthropic's Messages API and returns
// the assistant text. System messages are lifted into the request's system
// field; the Messages API does not accept a "system" role in the list.
func (p *Provider) Complete(ctx context.Context, messages []serene.Message, params serene.Params) (string, error) {
	var systemPrompt string
	inputMessages := make([]MessageInput, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == serene.RoleSystem {
			systemPrompt = msg.Content
			continue
		}
		inputMessages = append(inputMessages, MessageInput{
			Role: msg.Role,
			Content: []Content{
				{Type: "text", Text: msg.Content},
			},
		})
	}

	reqBody := MessagesAPIRequest{
		Model:       params.Model,
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
		System:      systemPrompt,
		Messages:    inputMessages,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", p.wrap(fmt.Errorf("error marshaling request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", p.wrap(fmt.Errorf("error creating request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.token)
	req.Header.Set("anthropic-version", AnthropicVersion)

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
		var errResp MessagesAPIResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != nil {
			return "", p.wrap(fmt.Errorf("API error [%s]: %s (HTTP %d)", errResp.Error.Type, errResp.Error.Message, resp.StatusCode))
		}
		return "", p.wrap(fmt.Errorf("API request failed (HTTP %d): %s", resp.StatusCode, string(body)))
	}

	var result MessagesAPIResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", p.wrap(fmt.Errorf("error parsing response: %v", err))
	}
	if result.Error != nil {
		return "", p.wrap(fmt.Errorf("API error [%s]: %s", result.Error.Type, result.Error.Message))
	}

	var textBlocks []string
	for _, content := range result.Content {
		if content.Type == "text" && content.Text != "" {
			textBlocks = append(textBlocks, content.Text)
		}
	}
	if len(textBlocks) == 0 {
		return "", p.wrap(fmt.Errorf("no text content found in API response"))
	}

	return strings.Join(textBlocks, "\n"), nil
}

func (p *Provider) wrap(err error) error {
	return &serene.ProviderError{Provider: ProviderName, Err: err}
}

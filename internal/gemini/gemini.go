// Package gemini implements the serene.Provider interface against Google's
// Gemini generateContent API.
package gemini

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
	ProviderName   = "gemini"
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

// GeminiRequest represents the request body for the generateContent API
type GeminiRequest struct {
	Contents          []GeminiContent          `json:"contents"`
	SystemInstruction *GeminiSystemInstruction `json:"system_instruction,omitempty"`
	GenerationConfig  *GeminiGenerationConfig  `json:"generationConfig,omitempty"`
}

// GeminiSystemInstruction represents the system instruction
type GeminiSystemInstruction struct {
	Parts []GeminiPart `json:"parts"`
}

// GeminiContent represents a content item in the request
type GeminiContent struct {
	Role  string       `json:"role,omitempty"` // "user" or "model"
	Parts []GeminiPart `json:"parts"`
}

// GeminiPart represents a part of the content
type GeminiPart struct {
	Text string `json:"text"`
}

// GeminiGenerationConfig carries the sampling parameters
type GeminiGenerationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	Temperature     float64 `json:"temperature"`
}

// GeminiResponse represents the response from the generateContent API
type GeminiResponse struct {
	Candidates []GeminiCandidate `json:"candidates"`
}

// GeminiCandidate represents a response candidate
type GeminiCandidate struct {
	Content GeminiResponseContent `json:"content"`
}

// GeminiResponseContent represents the content of a candidate
type GeminiResponseContent struct {
	Parts []GeminiPart `json:"parts"`
	Role  string       `json:"role"`
}

// Config defines the configuration interface for the Gemini provider
type Config interface {
	GetBaseURL(provider string) (string, error)
	GetToken(provider string) (string, error)
}

// Provider implements the serene.Provider interface for Gemini
type Provider struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewProvider creates a new Gemini provider instance
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

// Complete sends the conversation to the generateContent API and returns
// the assistant text. System messages become the system instruction;
// assistant messages map to Gemini's "model" role.
func (p *Provider) Complete(ctx context.Context, messages []serene.Message, params serene.Params) (string, error) {
	reqBody := GeminiRequest{
		GenerationConfig: &GeminiGenerationConfig{
			MaxOutputTokens: params.MaxTokens,
			Temperature:     params.Temperature,
		},
	}
	for _, msg := range messages {
		if msg.Role == serene.RoleSystem {
			reqBody.SystemInstruction = &GeminiSystemInstruction{
				Parts: []GeminiPart{{Text: msg.Content}},
			}
			continue
		}
		role := msg.Role
		if role == serene.RoleAssistant {
			role = "model"
		}
		reqBody.Contents = append(reqBody.Contents, GeminiContent{
			Role:  role,
			Parts: []GeminiPart{{Text: msg.Content}},
		})
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", p.wrap(fmt.Errorf("error marshaling request: %v", err))
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, params.Model, p.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", p.wrap(fmt.Errorf("error creating request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

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
		return "", p.wrap(fmt.Errorf("API request failed (HTTP %d): %s", resp.StatusCode, string(body)))
	}

	var result GeminiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", p.wrap(fmt.Errorf("error parsing response: %v", err))
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", p.wrap(fmt.Errorf("no content in response"))
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}

func (p *Provider) wrap(err error) error {
	return &serene.ProviderError{Provider: ProviderName, Err: err}
}

package config

import (
	"fmt"

	"github.com/serenelab/serene/internal/serene"
	"github.com/spf13/viper"
)

// Config holds every option the application reads. It is constructed once
// at process start and passed by reference into the router and the front
// ends; nothing in the core reads configuration ambiently.
type Config struct {
	AppTitle        string  `toml:"app_title" mapstructure:"app_title"`
	WarningMessage  string  `toml:"warning_message" mapstructure:"warning_message"`
	CrisisHotline   string  `toml:"crisis_hotline" mapstructure:"crisis_hotline"`
	CrisisTextLine  string  `toml:"crisis_text_line" mapstructure:"crisis_text_line"`
	Model           string  `toml:"model" mapstructure:"model"` // Format: "provider:model" (e.g., "openai:gpt-4o-mini")
	MaxTokens       int     `toml:"max_tokens" mapstructure:"max_tokens"`
	Temperature     float64 `toml:"temperature" mapstructure:"temperature"`
	BackgroundColor string  `toml:"background_color" mapstructure:"background_color"`
	MaxHistoryTurns int     `toml:"max_history_turns" mapstructure:"max_history_turns"`
	ListenAddr      string  `toml:"listen_addr" mapstructure:"listen_addr"`

	OpenAIBaseURL    string `toml:"openai_base_url" mapstructure:"openai_base_url"`
	OpenAIToken      string `toml:"openai_token" mapstructure:"openai_token"`
	AnthropicBaseURL string `toml:"anthropic_base_url" mapstructure:"anthropic_base_url"`
	AnthropicToken   string `toml:"anthropic_token" mapstructure:"anthropic_token"`
	GeminiBaseURL    string `toml:"gemini_base_url" mapstructure:"gemini_base_url"`
	GeminiToken      string `toml:"gemini_token" mapstructure:"gemini_token"`
}

// NewDefaultConfig returns a new Config with default values. These are the
// values used whenever the config file is absent or malformed.
func NewDefaultConfig() *Config {
	return &Config{
		AppTitle:        "Serene",
		WarningMessage:  "This is not a substitute for professional care.",
		CrisisHotline:   "Local crisis hotline (replace in config)",
		CrisisTextLine:  "Text HELP to 741741 (replace per country)",
		Model:           "openai:gpt-4o-mini",
		MaxTokens:       512,
		Temperature:     0.7,
		BackgroundColor: "#FFFFFF",
		MaxHistoryTurns: serene.DefaultMaxHistoryTurns,
		ListenAddr:      ":8990",

		OpenAIBaseURL:    "https://api.openai.com/v1",
		OpenAIToken:      "$OPENAI_API_KEY", // Default to env var
		AnthropicBaseURL: "https://api.anthropic.com/v1",
		AnthropicToken:   "$ANTHROPIC_API_KEY",
		GeminiBaseURL:    "https://generativelanguage.googleapis.com/v1beta",
		GeminiToken:      "$GEMINI_API_KEY",
	}
}

// LoadConfig loads configuration from viper. Malformed values fall back to
// defaults rather than failing: no configuration problem may keep the chat
// from starting.
func LoadConfig() (*Config, error) {
	config := NewDefaultConfig()
	if err := viper.Unmarshal(config); err != nil {
		return NewDefaultConfig(), fmt.Errorf("error unmarshaling config: %v", err)
	}

	// Expand $VAR / ${VAR} token references
	config.OpenAIToken = expandEnvVar(config.OpenAIToken)
	config.AnthropicToken = expandEnvVar(config.AnthropicToken)
	config.GeminiToken = expandEnvVar(config.GeminiToken)

	// Out-of-range or malformed values fall back to defaults
	defaults := NewDefaultConfig()
	if _, _, err := serene.ParseModelString(config.Model); err != nil {
		config.Model = defaults.Model
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = defaults.MaxTokens
	}
	if config.Temperature < 0 || config.Temperature > 2 {
		config.Temperature = defaults.Temperature
	}
	if config.MaxHistoryTurns <= 0 {
		config.MaxHistoryTurns = defaults.MaxHistoryTurns
	}

	return config, nil
}

// GetProvider extracts the provider name from the model string
func (c *Config) GetProvider() (string, error) {
	provider, _, err := serene.ParseModelString(c.Model)
	return provider, err
}

// GetModelName extracts the model name from the model string
func (c *Config) GetModelName() (string, error) {
	_, model, err := serene.ParseModelString(c.Model)
	return model, err
}

// Params returns the sampling parameters for provider calls.
func (c *Config) Params() (serene.Params, error) {
	model, err := c.GetModelName()
	if err != nil {
		return serene.Params{}, err
	}
	return serene.Params{
		Model:       model,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
	}, nil
}

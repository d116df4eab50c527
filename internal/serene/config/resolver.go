package config

import (
	"fmt"
	"os"
	"strings"
)

// expandEnvVar expands an environment variable reference in the given
// value. Supports both $VAR and ${VAR} syntax. If the variable is not set,
// returns an empty string; a non-reference value is returned as-is.
func expandEnvVar(value string) string {
	if !strings.HasPrefix(value, "$") {
		return value
	}

	var envVarName string
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVarName = value[2 : len(value)-1]
	} else {
		envVarName = strings.TrimPrefix(value, "$")
	}

	return os.Getenv(envVarName)
}

// GetBaseURL returns the base URL for the specified provider.
// Environment variables are already expanded during LoadConfig().
func (c *Config) GetBaseURL(provider string) (string, error) {
	var baseURLValue string
	switch provider {
	case "openai":
		baseURLValue = c.OpenAIBaseURL
	case "anthropic":
		baseURLValue = c.AnthropicBaseURL
	case "gemini":
		baseURLValue = c.GeminiBaseURL
	default:
		return "", fmt.Errorf("unsupported provider: %s", provider)
	}

	if baseURLValue == "" {
		return "", fmt.Errorf("%s base URL is not configured. Set it in config file (%s_base_url) or environment variable (SERENE_%s_BASE_URL)", provider, provider, strings.ToUpper(provider))
	}

	return baseURLValue, nil
}

// GetToken returns the API token for the specified provider.
// Environment variables are already expanded during LoadConfig().
func (c *Config) GetToken(provider string) (string, error) {
	var tokenValue string
	switch provider {
	case "openai":
		tokenValue = c.OpenAIToken
	case "anthropic":
		tokenValue = c.AnthropicToken
	case "gemini":
		tokenValue = c.GeminiToken
	default:
		return "", fmt.Errorf("unsupported provider: %s", provider)
	}

	if tokenValue == "" {
		return "", fmt.Errorf("%s token is not configured. Set it in config file (%s_token) or environment variable (SERENE_%s_TOKEN)", provider, provider, strings.ToUpper(provider))
	}

	return tokenValue, nil
}

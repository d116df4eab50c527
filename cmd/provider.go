package cmd

import (
	"fmt"

	"github.com/serenelab/serene/internal/anthropic"
	"github.com/serenelab/serene/internal/gemini"
	"github.com/serenelab/serene/internal/openai"
	"github.com/serenelab/serene/internal/serene"
	"github.com/serenelab/serene/internal/serene/config"
)

// newProvider creates a provider instance for the configured provider:model.
// An overrideToken replaces the configured credential; it is used for keys
// entered ephemerally through the UI and is never persisted.
func newProvider(cfg *config.Config, overrideToken string) (serene.Provider, error) {
	providerName, err := cfg.GetProvider()
	if err != nil {
		return nil, err
	}

	if overrideToken != "" {
		baseURL, err := cfg.GetBaseURL(providerName)
		if err != nil {
			return nil, err
		}
		switch providerName {
		case openai.ProviderName:
			return openai.NewProviderWithToken(baseURL, overrideToken), nil
		case anthropic.ProviderName:
			return anthropic.NewProviderWithToken(baseURL, overrideToken), nil
		case gemini.ProviderName:
			return gemini.NewProviderWithToken(baseURL, overrideToken), nil
		default:
			return nil, fmt.Errorf("unsupported provider: %s", providerName)
		}
	}

	switch providerName {
	case openai.ProviderName:
		return openai.NewProvider(cfg)
	case anthropic.ProviderName:
		return anthropic.NewProvider(cfg)
	case gemini.ProviderName:
		return gemini.NewProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", providerName)
	}
}

// loadConfig loads the configuration, degrading to defaults on failure.
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Warning: %v; continuing with defaults\n", err)
	}
	return cfg
}

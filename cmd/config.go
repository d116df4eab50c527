package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display current configuration",
	Long: `Display the current configuration values loaded from the config file
and environment variables. Tokens are masked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Config file:", viper.ConfigFileUsed())
		fmt.Fprintln(out, "app_title:", cfg.AppTitle)
		fmt.Fprintln(out, "warning_message:", cfg.WarningMessage)
		fmt.Fprintln(out, "crisis_hotline:", cfg.CrisisHotline)
		fmt.Fprintln(out, "crisis_text_line:", cfg.CrisisTextLine)
		fmt.Fprintln(out, "model:", cfg.Model)
		fmt.Fprintln(out, "max_tokens:", cfg.MaxTokens)
		fmt.Fprintln(out, "temperature:", cfg.Temperature)
		fmt.Fprintln(out, "max_history_turns:", cfg.MaxHistoryTurns)
		fmt.Fprintln(out, "background_color:", cfg.BackgroundColor)
		fmt.Fprintln(out, "listen_addr:", cfg.ListenAddr)
		fmt.Fprintln(out, "openai_base_url:", cfg.OpenAIBaseURL)
		fmt.Fprintln(out, "openai_token:", maskToken(cfg.OpenAIToken))
		fmt.Fprintln(out, "anthropic_base_url:", cfg.AnthropicBaseURL)
		fmt.Fprintln(out, "anthropic_token:", maskToken(cfg.AnthropicToken))
		fmt.Fprintln(out, "gemini_base_url:", cfg.GeminiBaseURL)
		fmt.Fprintln(out, "gemini_token:", maskToken(cfg.GeminiToken))
		return nil
	},
}

func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	return "(set)"
}

func init() {
	rootCmd.AddCommand(configCmd)
}

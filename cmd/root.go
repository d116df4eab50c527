package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/serenelab/serene/internal/serene/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "serene",
	Short: "A supportive-chat assistant with crisis interception",
	Long: `serene is a supportive conversational assistant that forwards messages
to a hosted LLM chat endpoint, overlays a static safety disclaimer, and
short-circuits into a fixed safety reply when the input contains a crisis
keyword.

Run 'serene serve' for the browser UI or 'serene chat' for the terminal.
It is not a substitute for professional care.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/serene/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("SERENE")
	viper.AutomaticEnv()

	home, err := os.UserHomeDir()
	cobra.CheckErr(err)
	userConfigDir := filepath.Join(home, ".config", "serene")

	// Register every option with its documented default so a missing or
	// partial config file still yields a complete configuration.
	defaultConfig := config.NewDefaultConfig()
	viper.SetDefault("app_title", defaultConfig.AppTitle)
	viper.SetDefault("warning_message", defaultConfig.WarningMessage)
	viper.SetDefault("crisis_hotline", defaultConfig.CrisisHotline)
	viper.SetDefault("crisis_text_line", defaultConfig.CrisisTextLine)
	viper.SetDefault("model", defaultConfig.Model)
	viper.SetDefault("max_tokens", defaultConfig.MaxTokens)
	viper.SetDefault("temperature", defaultConfig.Temperature)
	viper.SetDefault("background_color", defaultConfig.BackgroundColor)
	viper.SetDefault("max_history_turns", defaultConfig.MaxHistoryTurns)
	viper.SetDefault("listen_addr", defaultConfig.ListenAddr)
	viper.SetDefault("openai_base_url", defaultConfig.OpenAIBaseURL)
	viper.SetDefault("openai_token", defaultConfig.OpenAIToken)
	viper.SetDefault("anthropic_base_url", defaultConfig.AnthropicBaseURL)
	viper.SetDefault("anthropic_token", defaultConfig.AnthropicToken)
	viper.SetDefault("gemini_base_url", defaultConfig.GeminiBaseURL)
	viper.SetDefault("gemini_token", defaultConfig.GeminiToken)

	// Bind environment variables
	viper.BindEnv("model", "SERENE_MODEL")
	viper.BindEnv("listen_addr", "SERENE_LISTEN_ADDR")
	viper.BindEnv("openai_base_url", "SERENE_OPENAI_BASE_URL")
	viper.BindEnv("openai_token", "SERENE_OPENAI_TOKEN")
	viper.BindEnv("anthropic_base_url", "SERENE_ANTHROPIC_BASE_URL")
	viper.BindEnv("anthropic_token", "SERENE_ANTHROPIC_TOKEN")
	viper.BindEnv("gemini_base_url", "SERENE_GEMINI_BASE_URL")
	viper.BindEnv("gemini_token", "SERENE_GEMINI_TOKEN")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(userConfigDir)
		viper.AddConfigPath(".")
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	// A missing config file is fine; a malformed one is reported and the
	// defaults above carry the process.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		fmt.Fprintln(os.Stderr, "  model:", viper.GetString("model"))
		fmt.Fprintln(os.Stderr, "  listen_addr:", viper.GetString("listen_addr"))
	}
}
